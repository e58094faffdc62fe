package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg returns control to the main menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

const opTimeout = 5 * time.Second

// OpCtx returns a context with the standard timeout for ledger
// mutations triggered from the TUI.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// FormatAmount renders cents as "1234.56".
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}

// FormatMoney renders cents with a currency code, e.g. "12.50 USD".
func FormatMoney(cents int64, currency string) string {
	return fmt.Sprintf("%s %s", FormatAmount(cents), currency)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
