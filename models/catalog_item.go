package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CatalogStorable = "storable"
	CatalogDigital  = "digital"
	CatalogService  = "service"
)

var CatalogTypes = []string{CatalogStorable, CatalogDigital, CatalogService}

type CatalogItem struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Type        string `gorm:"type:varchar(10);not null"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64 `gorm:"type:decimal(10,2);default:0.0"`

	// storable
	Stock    int `gorm:"default:0"`
	MinStock int `gorm:"default:0"`
	SKU      string
	Unit     string

	// digital
	DownloadURL string
	FileSize    string
	Format      string

	// service
	Duration int // in minutes

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

// PruneForType zeroes the fields that do not belong to the item's type, so
// a save after a type change does not drag stale fields along.
func (ci *CatalogItem) PruneForType() {
	if ci.Type != CatalogStorable {
		ci.Stock = 0
		ci.MinStock = 0
		ci.SKU = ""
		ci.Unit = ""
	}
	if ci.Type != CatalogDigital {
		ci.DownloadURL = ""
		ci.FileSize = ""
		ci.Format = ""
	}
	if ci.Type != CatalogService {
		ci.Duration = 0
	}
}

// LowStock reports the restock condition for storable items.
func (ci *CatalogItem) LowStock() bool {
	return ci.Type == CatalogStorable && ci.Stock <= ci.MinStock
}

func (ci *CatalogItem) BeforeSave(tx *gorm.DB) (err error) {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	ci.PruneForType()
	return
}
