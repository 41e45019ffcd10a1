package repository

import (
	"context"
	"errors"

	"ecom/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 注文明細から参照されている行は消せない
var ErrRowsReferenced = errors.New("rows referenced")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// name/description/category/brand の部分一致（大文字小文字は区別しない）
	Search(ctx context.Context, keyword string) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// withImage=false のとき画像3カラムは更新しない
	Update(ctx context.Context, p model.Product, withImage bool) error
	Delete(ctx context.Context, id int64) error
}
