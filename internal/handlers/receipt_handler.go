// internal/handlers/receipt_handler.go
package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/RainerNsa/PhCityRent-sub000/internal/history"
	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
	"github.com/RainerNsa/PhCityRent-sub000/internal/receipt"
	"github.com/RainerNsa/PhCityRent-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type ReceiptHandler struct {
	store    history.Store
	defaults receipt.Defaults
	uploader services.ReceiptUploader // optional
}

func NewReceiptHandler(store history.Store, defaults receipt.Defaults, uploader services.ReceiptUploader) *ReceiptHandler {
	return &ReceiptHandler{store: store, defaults: defaults, uploader: uploader}
}

// HandleDownloadReceipt serves GET /receipts/:reference/:format. Receipts
// are rebuilt from the stored record, so re-downloads never touch a gateway.
func (h *ReceiptHandler) HandleDownloadReceipt(c *gin.Context) {
	reference := c.Param("reference")
	format := c.Param("format")

	data, ok := h.loadReceipt(c, reference)
	if !ok {
		return
	}

	var (
		artifact    []byte
		contentType string
		err         error
	)
	switch format {
	case "pdf":
		artifact, err = receipt.PDF(data)
		contentType = "application/pdf"
	case "png":
		artifact, err = receipt.PNG(data)
		contentType = "image/png"
	case "jpeg":
		artifact, err = receipt.JPEG(data)
		contentType = "image/jpeg"
	case "html":
		artifact, err = receipt.HTML(data)
		contentType = "text/html; charset=utf-8"
	case "print":
		artifact = receipt.PrintText(data)
		contentType = "text/plain; charset=utf-8"
	default:
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Unsupported receipt format: %s", format))
		return
	}
	if err != nil {
		log.Printf("ERROR: Could not render %s receipt for '%s': %v", format, reference, err)
		respondError(c, http.StatusInternalServerError, "Could not render the receipt.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.Filename(reference, format)))
	c.Data(http.StatusOK, contentType, artifact)
}

// HandleShareReceipt serves POST /receipts/:reference/share. When an
// uploader is wired the PDF is pushed out and the payload carries its URL;
// otherwise the payload is text-only.
func (h *ReceiptHandler) HandleShareReceipt(c *gin.Context) {
	reference := c.Param("reference")

	data, ok := h.loadReceipt(c, reference)
	if !ok {
		return
	}

	var uploadedURL string
	if h.uploader != nil {
		artifact, err := receipt.PDF(data)
		if err != nil {
			log.Printf("ERROR: Could not render shareable PDF for '%s': %v", reference, err)
			respondError(c, http.StatusInternalServerError, "Could not render the receipt.")
			return
		}
		uploadedURL, err = h.uploader.UploadReceipt(c.Request.Context(), receipt.Filename(reference, "pdf"), artifact)
		if err != nil {
			log.Printf("WARN: Receipt upload failed for '%s'; sharing without a link: %v", reference, err)
			uploadedURL = ""
		}
	}

	c.JSON(http.StatusOK, receipt.Share(data, uploadedURL))
}

func (h *ReceiptHandler) loadReceipt(c *gin.Context, reference string) (*models.ReceiptData, bool) {
	rec, err := h.store.FindByReference(c.Request.Context(), reference)
	if err != nil {
		log.Printf("ERROR: History lookup failed for reference '%s': %v", reference, err)
		respondError(c, http.StatusInternalServerError, "Could not look up the payment.")
		return nil, false
	}
	if rec == nil {
		respondError(c, http.StatusNotFound, "No recorded payment for that reference.")
		return nil, false
	}
	return receipt.BuildFromRecord(rec, h.defaults), true
}
