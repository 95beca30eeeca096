// internal/handlers/history_handler.go
package handlers

import (
	"log"
	"net/http"

	"github.com/RainerNsa/PhCityRent-sub000/internal/history"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	store history.Store
}

func NewHistoryHandler(store history.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// HandleListHistory returns the authenticated tenant's payments, newest
// first. The tenant id comes from the JWT, never from the request.
func (h *HistoryHandler) HandleListHistory(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	if tenantID == "" {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	records, err := h.store.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		log.Printf("ERROR: Could not list payment history for tenant '%s': %v", tenantID, err)
		respondError(c, http.StatusInternalServerError, "Could not load payment history.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": records,
		"count":    len(records),
	})
}
