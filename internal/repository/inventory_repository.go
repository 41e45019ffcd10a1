package repository

import (
	"context"

	"ecom/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫が足りるときだけ減算。product_available も同じ文で更新する。
	DecrementStock(ctx context.Context, productID int64, qty int64) (bool, error)

	// 変動履歴作成
	CreateMovement(ctx context.Context, m model.StockMovement) error
}
