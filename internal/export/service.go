// Package export renders the current wallet's ledger as downloadable
// CSV and JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/centavoapp/centavo/internal/ledger"
)

// Summary is the roll-up block embedded in a JSON export.
type Summary struct {
	TotalTransactions int   `json:"total_transactions"`
	TotalIncome       int64 `json:"total_income"`
	TotalExpense      int64 `json:"total_expense"`
	Balance           int64 `json:"balance"`
}

// Document is the JSON export envelope. It round-trips: ReadDocument
// parses what WriteJSON produced.
type Document struct {
	ExportedAt   time.Time             `json:"exported_at"`
	Wallet       *ledger.Wallet        `json:"wallet"`
	Summary      Summary               `json:"summary"`
	Transactions []*ledger.Transaction `json:"transactions"`
}

// Service reads the store directly; exports never mutate anything.
type Service struct {
	store *ledger.Store
	now   func() time.Time
}

func NewService(store *ledger.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// currentWalletTransactions returns the active wallet and its
// transactions. A nil wallet means nothing is exportable yet.
func (s *Service) currentWalletTransactions() (*ledger.Wallet, []*ledger.Transaction) {
	wallet := s.store.CurrentWallet()
	if wallet == nil {
		return nil, nil
	}

	var txs []*ledger.Transaction

	for _, tx := range s.store.Transactions() {
		if tx.WalletID == wallet.ID {
			txs = append(txs, tx)
		}
	}

	return wallet, txs
}

// WriteCSV writes the current wallet's transactions as CSV with the
// columns Date, Category, Type, Amount, Description. Every field is
// quoted, matching the format ReadCSV in the importer expects.
func (s *Service) WriteCSV(w io.Writer) error {
	wallet, txs := s.currentWalletTransactions()
	if wallet == nil {
		return ledger.ErrNoWallet
	}

	if err := writeCSVRow(w, "Date", "Category", "Type", "Amount", "Description"); err != nil {
		return err
	}

	for _, tx := range txs {
		name := "Unknown"
		if cat := s.store.CategoryByID(tx.CategoryID); cat != nil {
			name = cat.Name
		}

		err := writeCSVRow(w,
			tx.Date.Format(time.DateOnly),
			name,
			string(tx.Type),
			FormatAmount(tx.Amount),
			tx.Description,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// writeCSVRow emits one record with every field quoted. encoding/csv
// only quotes when forced to, and the historical export format quotes
// unconditionally, so the quoting is done by hand here.
func writeCSVRow(w io.Writer, fields ...string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}

	if _, err := io.WriteString(w, strings.Join(quoted, ",")+"\n"); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}

	return nil
}

// WriteJSON writes the full export document for the current wallet.
func (s *Service) WriteJSON(w io.Writer) error {
	doc, err := s.BuildDocument()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export document: %w", err)
	}

	return nil
}

// BuildDocument assembles the JSON export envelope without writing it.
func (s *Service) BuildDocument() (*Document, error) {
	wallet, txs := s.currentWalletTransactions()
	if wallet == nil {
		return nil, ledger.ErrNoWallet
	}

	sum := Summary{TotalTransactions: len(txs)}

	for _, tx := range txs {
		switch tx.Type {
		case ledger.TypeIncome:
			sum.TotalIncome += tx.Amount
		case ledger.TypeExpense:
			sum.TotalExpense += tx.Amount
		}
	}

	sum.Balance = sum.TotalIncome - sum.TotalExpense

	return &Document{
		ExportedAt:   s.now(),
		Wallet:       wallet,
		Summary:      sum,
		Transactions: txs,
	}, nil
}

// ReadDocument parses a JSON export produced by WriteJSON.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding export document: %w", err)
	}

	return &doc, nil
}

// FormatAmount renders cents as a plain decimal string, e.g. 1250 ->
// "12.50".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
