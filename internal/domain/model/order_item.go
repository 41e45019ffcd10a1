package model

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID    int64           `gorm:"not null;index" json:"-"`
	ProductID  int64           `gorm:"not null;index" json:"productId"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	// 参照のみ。明細から商品は消させない（FKはデフォルトのRESTRICT相当）。
	Product Product `gorm:"foreignKey:ProductID;references:ID" json:"-"`
}
