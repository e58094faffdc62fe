// Package importer reads transaction CSV files back into the ledger.
// The canonical input is the app's own CSV export (Date, Category,
// Type, Amount, Description), but header matching is case-insensitive
// and column order does not matter.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	enc "github.com/centavoapp/centavo/internal/encoding"
	"github.com/centavoapp/centavo/internal/ledger"
)

// Result summarizes one import run. Rows that fail to parse are
// counted and reported, never fatal; one bad row should not sink a
// whole statement.
type Result struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type Service struct {
	ledger *ledger.Service
	log    *slog.Logger
}

func NewService(svc *ledger.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{ledger: svc, log: logger}
}

// row holds the column indices found in the header.
type row struct {
	date, category, typ, amount, description int
}

// Import parses r and creates one transaction per data row on the
// given wallet (uuid.Nil targets the current wallet). Categories are
// matched by name, creating a new one when no existing category fits.
func (s *Service) Import(ctx context.Context, r io.Reader, walletID uuid.UUID) (*Result, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("normalizing encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for i, record := range records[1:] {
		lineNum := i + 2

		params, err := s.rowParams(ctx, record, cols)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", lineNum, err))

			continue
		}

		params.WalletID = walletID

		if _, err := s.ledger.CreateTransaction(ctx, params); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", lineNum, err))

			continue
		}

		result.Imported++
	}

	s.log.Info("import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
	)

	return result, nil
}

func mapHeader(header []string) (row, error) {
	cols := row{date: -1, category: -1, typ: -1, amount: -1, description: -1}

	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "date":
			cols.date = i
		case "category":
			cols.category = i
		case "type":
			cols.typ = i
		case "amount":
			cols.amount = i
		case "description":
			cols.description = i
		}
	}

	if cols.date == -1 || cols.amount == -1 {
		return cols, fmt.Errorf("header must contain at least Date and Amount columns")
	}

	return cols, nil
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	time.DateOnly,
	"02-01-2006",
	"01/02/2006",
	time.RFC3339,
}

func (s *Service) rowParams(ctx context.Context, record []string, cols row) (ledger.TransactionParams, error) {
	var params ledger.TransactionParams

	date, err := parseDate(cell(record, cols.date))
	if err != nil {
		return params, err
	}

	cents, err := parseAmount(cell(record, cols.amount))
	if err != nil {
		return params, fmt.Errorf("bad amount %q: %w", cell(record, cols.amount), err)
	}

	if cents == 0 {
		return params, fmt.Errorf("zero amount")
	}

	txType := ledger.TxType(strings.ToLower(cell(record, cols.typ)))
	if txType != ledger.TypeIncome && txType != ledger.TypeExpense {
		// No usable type column: the sign decides.
		txType = ledger.TypeIncome
		if cents < 0 {
			txType = ledger.TypeExpense
		}
	}

	if cents < 0 {
		cents = -cents
	}

	category, err := s.resolveCategory(ctx, cell(record, cols.category), txType)
	if err != nil {
		return params, err
	}

	params = ledger.TransactionParams{
		CategoryID:  category,
		Amount:      cents,
		Type:        txType,
		Description: cell(record, cols.description),
		Date:        date,
	}

	return params, nil
}

// resolveCategory finds a same-typed category by name, creating one
// when nothing matches. An empty name falls back to "Imported".
func (s *Service) resolveCategory(ctx context.Context, name string, txType ledger.TxType) (uuid.UUID, error) {
	if name == "" {
		name = "Imported"
	}

	for _, c := range s.ledger.Store().Categories() {
		if c.Type == txType && strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
	}

	created, err := s.ledger.CreateCategory(ctx, ledger.CategoryParams{
		Name: name,
		Icon: "📦",
		Type: txType,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating category %q: %w", name, err)
	}

	return created.ID, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("bad date %q", s)
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
