// internal/receipt/image.go
package receipt

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	cardWidth  = 640
	cardHeight = 720
)

// PNG renders the receipt as a raster card.
func PNG(d *models.ReceiptData) ([]byte, error) {
	img := drawCard(d)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &RenderError{Format: "png", Err: err}
	}
	return buf.Bytes(), nil
}

// JPEG renders the same card with JPEG encoding.
func JPEG(d *models.ReceiptData) ([]byte, error) {
	img := drawCard(d)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, &RenderError{Format: "jpeg", Err: err}
	}
	return buf.Bytes(), nil
}

func drawCard(d *models.ReceiptData) image.Image {
	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetRGB(0.10, 0.25, 0.45)
	dc.DrawRectangle(0, 0, cardWidth, 64)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawString("PhCityRent Payment Receipt", 32, 38)

	dc.SetRGB(0.15, 0.15, 0.15)
	y := 104.0
	for _, r := range rows(d) {
		dc.DrawString(r.Label, 32, y)
		dc.DrawString(r.Value, 240, y)
		y += 28
	}

	dc.SetRGB(0.5, 0.5, 0.5)
	dc.DrawString("Thank you for paying with PhCityRent.", 32, cardHeight-32)
	return dc.Image()
}
