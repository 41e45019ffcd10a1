package repository

import (
	"context"
	"errors"

	"ecom/internal/domain/model"
)

// orders.order_id の一意制約に衝突
var ErrDuplicateOrderID = errors.New("duplicate order id")

type OrderRepository interface {
	// 注文と明細をまとめて保存
	Create(ctx context.Context, order model.Order) (model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	// 外部向けorderId（ORDxxxxxxxx）で検索
	FindByOrderID(ctx context.Context, orderID string) (model.Order, error)
}
