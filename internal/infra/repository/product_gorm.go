package repository

import (
	"context"
	"errors"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 全商品をID順で返す
func (r *ProductGormRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// name/description/category/brandを対象に部分一致
func (r *ProductGormRepository) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	like := "%" + keyword + "%"

	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR description ILIKE ? OR category ILIKE ? OR brand ILIKE ?", like, like, like, like).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新。withImage=falseなら既存の画像カラムをそのまま残す。
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product, withImage bool) error {
	values := map[string]interface{}{
		"name":              p.Name,
		"description":       p.Description,
		"brand":             p.Brand,
		"price":             p.Price,
		"category":          p.Category,
		"release_date":      p.ReleaseDate,
		"product_available": p.ProductAvailable,
		"stock_quantity":    p.StockQuantity,
	}
	if withImage {
		values["image_name"] = p.ImageName
		values["image_type"] = p.ImageType
		values["image_data"] = p.ImageData
	}

	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除。注文明細から参照されている行は消せない。
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return repo.ErrRowsReferenced
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// PostgreSQLの外部キー違反（23503）かどうか
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
