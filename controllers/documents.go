package controllers

import (
	"bytes"
	"net/http"
	"time"

	"caterflow-backend/models"
	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentController renders printable invoices, kitchen sheets and run of show pages.
type DocumentController struct {
	Renderer *services.DocumentRenderer
	Now      func() time.Time
}

func (d *DocumentController) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func documentKind(c *gin.Context) (services.DocumentKind, bool) {
	kind := services.DocumentKind(c.Param("kind"))
	if !kind.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Document must be invoice, kitchen or run-of-show")
		return kind, false
	}
	return kind, true
}

// GetDocument renders a saved record. ?autoprint=1 opens the print dialog on
// load; ?format=pdf is available for invoices.
func (d *DocumentController) GetDocument(c *gin.Context) {
	kind, ok := documentKind(c)
	if !ok {
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	user, ok := loadUser(c, customer.UserID)
	if !ok {
		return
	}

	d.render(c, kind, customer, user.Profile())
}

// PreviewDocument renders a record posted in the body, which need not be saved.
func (d *DocumentController) PreviewDocument(c *gin.Context) {
	kind, ok := documentKind(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var record models.Customer
	if err := c.ShouldBindJSON(&record); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	record.UserID = userID

	user, ok := loadUser(c, userID)
	if !ok {
		return
	}

	d.render(c, kind, record, user.Profile())
}

func (d *DocumentController) render(c *gin.Context, kind services.DocumentKind, record models.Customer, profile models.BusinessProfile) {
	logger := utils.Logger(c)
	var buf bytes.Buffer

	if c.Query("format") == "pdf" {
		if kind != services.DocumentInvoice {
			utils.RespondWithError(c, http.StatusBadRequest, "PDF is only available for invoices")
			return
		}
		view := services.BuildInvoice(record, profile, d.now())
		if err := services.RenderInvoicePDF(&buf, view); err != nil {
			logger.Error("render invoice pdf", zap.Error(err))
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render document")
			return
		}
		c.Header("Content-Disposition", `inline; filename="invoice-`+view.Number+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
		return
	}

	autoPrint := c.Query("autoprint") == "1"
	if err := d.Renderer.Render(&buf, kind, record, profile, d.now(), autoPrint); err != nil {
		logger.Error("render document", zap.String("kind", string(kind)), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render document")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
