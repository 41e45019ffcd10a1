package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	Brand            string          `gorm:"type:varchar(255)" json:"brand"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category         string          `gorm:"type:varchar(255)" json:"category"`
	ReleaseDate      *time.Time      `json:"releaseDate"`
	ProductAvailable bool            `gorm:"not null;default:false" json:"productAvailable"`
	StockQuantity    int64           `gorm:"not null;default:0" json:"stockQuantity"`
	ImageName        string          `gorm:"type:varchar(255)" json:"imageName"`
	ImageType        string          `gorm:"type:varchar(100)" json:"imageType"`
	ImageData        []byte          `gorm:"type:bytea" json:"-"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime" json:"-"`
}

// HasImage は画像が保存済みかどうか
func (p *Product) HasImage() bool {
	return len(p.ImageData) > 0
}
