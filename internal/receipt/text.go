// internal/receipt/text.go
package receipt

import (
	"fmt"
	"strings"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
)

const slipWidth = 44

// PrintText renders the fixed-width slip sent to thermal printers and
// plain-text contexts.
func PrintText(d *models.ReceiptData) []byte {
	var b strings.Builder
	rule := strings.Repeat("=", slipWidth)
	thin := strings.Repeat("-", slipWidth)

	b.WriteString(rule + "\n")
	b.WriteString(centerLine("PHCITYRENT") + "\n")
	b.WriteString(centerLine("PAYMENT RECEIPT") + "\n")
	b.WriteString(rule + "\n")

	for _, r := range rows(d) {
		b.WriteString(fmt.Sprintf("%-16s %s\n", r.Label+":", r.Value))
	}

	b.WriteString(thin + "\n")
	b.WriteString(centerLine("Thank you for paying with PhCityRent.") + "\n")
	b.WriteString(rule + "\n")
	return []byte(b.String())
}

func centerLine(s string) string {
	if len(s) >= slipWidth {
		return s
	}
	pad := (slipWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
