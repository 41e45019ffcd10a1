package model

import "time"

type OrderStatus string

const (
	// 注文は作成した時点で確定。以後のステータス遷移は今のところ無い。
	OrderStatusPlaced OrderStatus = "PLACED"
)

type Order struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID      string      `gorm:"type:varchar(16);not null;uniqueIndex" json:"orderId"`
	CustomerName string      `gorm:"type:varchar(255);not null" json:"customerName"`
	Email        string      `gorm:"type:varchar(255);not null" json:"email"`
	Status       OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	OrderDate    time.Time   `gorm:"not null" json:"orderDate"`
	// OrderItem.OrderID は内部ID（orders.id）への外部キー。外部向けorderIdとは別物。
	Items        []OrderItem `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time   `gorm:"not null;autoCreateTime" json:"-"`
}
