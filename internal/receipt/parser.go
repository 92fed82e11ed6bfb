package receipt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pondo-ph/pondo/internal/transaction"
)

// Candidate is an unpersisted transaction extracted from OCR text, pending
// caller validation and storage.
type Candidate struct {
	Type        transaction.Type
	Amount      int64 // in cents
	Description string
	Source      string
}

// scanPattern tolerates noisy OCR text: an optional income/expense keyword,
// an optional peso marker, then digits with optional thousands separators and
// up to two decimal places.
var scanPattern = regexp.MustCompile(`(?i)(income|expense)?\s*(?:₱|PHP|P)?\s*([\d,]+\.?\d{0,2})`)

// Parse extracts transaction candidates from raw OCR text, in the order they
// occur. A bare number with no keyword defaults to an expense: the scan trades
// false positives for recall, since receipt text is noisy. Returns nil when
// nothing was detected.
func Parse(text string) []Candidate {
	matches := scanPattern.FindAllStringSubmatch(text, -1)

	var candidates []Candidate

	for _, m := range matches {
		amount, ok := parseAmount(m[2])
		if !ok {
			continue
		}

		txType := transaction.TypeExpense
		if strings.EqualFold(m[1], "income") {
			txType = transaction.TypeIncome
		}

		candidates = append(candidates, Candidate{
			Type:        txType,
			Amount:      amount,
			Description: "Scanned " + titleCase(txType),
			Source:      transaction.SourceOCRScan,
		})
	}

	return candidates
}

// parseAmount converts a matched numeric group to cents, stripping thousands
// separators ("1,234.56" -> 123456). Unparseable or non-positive values skip
// the match only, never the whole scan.
func parseAmount(s string) (int64, bool) {
	clean := strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, false
	}

	cents := d.Shift(2).Round(0).IntPart()
	if cents <= 0 {
		return 0, false
	}

	return cents, true
}

func titleCase(t transaction.Type) string {
	s := string(t)
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
