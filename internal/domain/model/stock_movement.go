package model

import "time"

//在庫変動の履歴（注文と同じトランザクションで書く）

type StockMovement struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
