package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount converts a money string into cents. Both "1234.56" and
// the European "1.234,56" are accepted; a leading currency symbol or
// stray spaces are ignored.
func parseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimLeft(clean, "$€£ ")
	clean = strings.ReplaceAll(clean, " ", "")

	if i := strings.LastIndex(clean, ","); i > strings.LastIndex(clean, ".") {
		// Comma is the decimal separator; dots are thousands.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
