package controllers

import (
	"net/http"

	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxContractBytes = 20 << 20

// ContractController uploads signed contract files and hands out signing links.
type ContractController struct {
	Storage   services.ContractStorage
	PublicURL string
}

// UploadContract stores the multipart "file" and records its public URL.
func (cc *ContractController) UploadContract(c *gin.Context) {
	if cc.Storage == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Contract storage is not configured")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "A contract file is required")
		return
	}
	if header.Size > maxContractBytes {
		utils.RespondWithError(c, http.StatusRequestEntityTooLarge, "Contract file is too large")
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read contract file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := services.ContractKey(customer.ID, header.Filename)
	url, err := cc.Storage.Upload(c.Request.Context(), key, contentType, file, header.Size)
	if err != nil {
		utils.Logger(c).Error("upload contract", zap.String("key", key), zap.Error(err))
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to upload contract")
		return
	}

	customer.ContractURL = url
	saveCustomer(c, &customer)
}

// GetContractLink returns the public signing URL for the record.
func (cc *ContractController) GetContractLink(c *gin.Context) {
	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    cc.PublicURL + "/sign/" + customer.ID.String(),
		"signed": customer.IsSigned(),
	})
}
