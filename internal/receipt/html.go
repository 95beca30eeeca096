// internal/receipt/html.go
package receipt

import (
	"bytes"
	"html/template"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
)

var htmlTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Receipt {{.Reference}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; background: #f4f6f8; margin: 0; }
  .card { max-width: 560px; margin: 32px auto; background: #fff; border-radius: 8px;
          box-shadow: 0 1px 4px rgba(0,0,0,.12); overflow: hidden; }
  .head { background: #1a4073; color: #fff; padding: 20px 28px; }
  .head h1 { margin: 0; font-size: 20px; }
  .head p { margin: 4px 0 0; opacity: .85; font-size: 13px; }
  table { width: 100%; border-collapse: collapse; padding: 0; }
  td { padding: 10px 28px; font-size: 14px; border-bottom: 1px solid #eef1f4; }
  td.label { color: #6b7280; width: 40%; }
  .foot { padding: 16px 28px; color: #9ca3af; font-size: 12px; text-align: center; }
</style>
</head>
<body>
<div class="card">
  <div class="head">
    <h1>PhCityRent</h1>
    <p>Payment Receipt</p>
  </div>
  <table>
  {{range .Rows}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
  {{end}}</table>
  <div class="foot">Thank you for paying with PhCityRent.</div>
</div>
</body>
</html>
`))

// HTML renders the receipt as a self-contained document.
func HTML(d *models.ReceiptData) ([]byte, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Reference string
		Rows      []row
	}{Reference: d.Reference, Rows: rows(d)})
	if err != nil {
		return nil, &RenderError{Format: "html", Err: err}
	}
	return buf.Bytes(), nil
}
