// internal/receipt/share.go
package receipt

import (
	"fmt"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
	"github.com/RainerNsa/PhCityRent-sub000/internal/money"
)

// SharePayload is what gets handed to messaging apps and the native share
// sheet. URL is only set when the artifact was uploaded somewhere public.
type SharePayload struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
}

// Share builds the payload carrying a short human summary of the payment.
func Share(d *models.ReceiptData, uploadedURL string) SharePayload {
	amount := money.FormatMinor(d.AmountMinor, "NGN")
	return SharePayload{
		Title: "PhCityRent Payment Receipt",
		Text: fmt.Sprintf("Payment of %s for %s (ref %s) confirmed on %s.",
			amount, d.Property.Title, d.Reference, d.Date.Format("02 Jan 2006")),
		Filename: Filename(d.Reference, "pdf"),
		URL:      uploadedURL,
	}
}
