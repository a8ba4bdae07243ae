// controllers/catalog.go
package controllers

import (
	"errors"
	"net/http"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCatalogItemInput defines the expected JSON structure for creating a catalog item
type CreateCatalogItemInput struct {
	Type        string  `json:"type" binding:"required,oneof=storable digital service"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`

	Stock    int    `json:"stock" binding:"min=0"`
	MinStock int    `json:"minStock" binding:"min=0"`
	SKU      string `json:"sku"`
	Unit     string `json:"unit"`

	DownloadURL string `json:"downloadUrl"`
	FileSize    string `json:"fileSize"`
	Format      string `json:"format"`

	Duration int `json:"duration" binding:"min=0"` // in minutes
}

// UpdateCatalogItemInput defines the expected JSON structure for updating a catalog item
type UpdateCatalogItemInput struct {
	Type        *string  `json:"type" binding:"omitempty,oneof=storable digital service"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`

	Stock    *int    `json:"stock" binding:"omitempty,min=0"`
	MinStock *int    `json:"minStock" binding:"omitempty,min=0"`
	SKU      *string `json:"sku"`
	Unit     *string `json:"unit"`

	DownloadURL *string `json:"downloadUrl"`
	FileSize    *string `json:"fileSize"`
	Format      *string `json:"format"`

	Duration *int `json:"duration" binding:"omitempty,min=0"`

	IsActive *bool `json:"isActive"`
}

// CreateCatalogItem creates a new catalog item for the account
func CreateCatalogItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateCatalogItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.CatalogItem{
		UserID:      userID,
		Type:        input.Type,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		MinStock:    input.MinStock,
		SKU:         input.SKU,
		Unit:        input.Unit,
		DownloadURL: input.DownloadURL,
		FileSize:    input.FileSize,
		Format:      input.Format,
		Duration:    input.Duration,
		IsActive:    true,
	}

	// Fields not matching the type are pruned in BeforeSave
	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create catalog item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetCatalogItems retrieves all catalog items for the account
func GetCatalogItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var items []models.CatalogItem
	if err := config.DB.Where("user_id = ?", userID).Order("name").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve catalog items")
		return
	}

	if itemType := c.Query("type"); itemType != "" && itemType != "all" {
		items = utils.Filter(items, func(it models.CatalogItem) bool {
			return it.Type == itemType
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetLowStockItems lists storable items at or below their minimum stock
func GetLowStockItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var items []models.CatalogItem
	if err := config.DB.
		Where("user_id = ? AND type = ?", userID, models.CatalogStorable).
		Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve catalog items")
		return
	}

	items = utils.Filter(items, func(it models.CatalogItem) bool {
		return it.LowStock()
	})

	c.JSON(http.StatusOK, items)
}

// GetCatalogItem retrieves a specific catalog item by ID
func GetCatalogItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid catalog item ID format")
		return
	}

	var item models.CatalogItem
	if err := config.DB.Where("user_id = ? AND id = ?", userID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Catalog item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateCatalogItem updates an existing catalog item
func UpdateCatalogItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid catalog item ID format")
		return
	}

	var input UpdateCatalogItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.CatalogItem
	if err := config.DB.Where("user_id = ? AND id = ?", userID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Catalog item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Type != nil {
		item.Type = *input.Type
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Stock != nil {
		item.Stock = *input.Stock
	}
	if input.MinStock != nil {
		item.MinStock = *input.MinStock
	}
	if input.SKU != nil {
		item.SKU = *input.SKU
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.DownloadURL != nil {
		item.DownloadURL = *input.DownloadURL
	}
	if input.FileSize != nil {
		item.FileSize = *input.FileSize
	}
	if input.Format != nil {
		item.Format = *input.Format
	}
	if input.Duration != nil {
		item.Duration = *input.Duration
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update catalog item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteCatalogItem soft deletes a catalog item
func DeleteCatalogItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid catalog item ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, itemUUID).
		Delete(&models.CatalogItem{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete catalog item")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Catalog item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catalog item deleted successfully"})
}
