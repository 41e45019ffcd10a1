package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	tx          repo.TransactionManager
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, tx repo.TransactionManager) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		tx:          tx,
	}
}

// 画像はmultipartで来るのでJSONとは別に持つ
type ProductImageInput struct {
	Name string
	Type string
	Data []byte
}

type ProductInput struct {
	Name             string
	Description      string
	Brand            string
	Price            decimal.Decimal
	Category         string
	ReleaseDate      *time.Time
	ProductAvailable bool
	StockQuantity    int64

	// nilなら画像は変更しない
	Image *ProductImageInput
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 画像（バイナリ＋MIME）を返す。商品が無い場合も画像が無い場合も404。
func (u *ProductUsecase) GetProductImage(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.GetProduct(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}
	if !p.HasImage() {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "image not found")
	}
	return p, nil
}

// 空キーワードは全件にマッチする（%%）
func (u *ProductUsecase) SearchProducts(ctx context.Context, keyword string) ([]model.Product, error) {
	items, err := u.productRepo.Search(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, buildProduct(0, in))
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 更新して、更新後の行を返す。
// 画像が添付されていないときは保存済みの画像を残す。
// 読み直しまで同じトランザクション。返る行に他の書き込みは挟まらない。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	var updated model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Products().Update(ctx, buildProduct(productID, in), in.Image != nil)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		updated = p
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return updated, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err == repo.ErrRowsReferenced {
		return NewHTTPError(http.StatusConflict, "product referenced by orders")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	return nil
}

func buildProduct(id int64, in ProductInput) model.Product {
	p := model.Product{
		ID:               id,
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		Brand:            in.Brand,
		Price:            in.Price,
		Category:         in.Category,
		ReleaseDate:      in.ReleaseDate,
		ProductAvailable: in.ProductAvailable,
		StockQuantity:    in.StockQuantity,
	}

	//在庫ゼロの商品を「販売可」とは言わせない
	if p.StockQuantity <= 0 {
		p.ProductAvailable = false
	}

	if in.Image != nil {
		p.ImageName = in.Image.Name
		p.ImageType = in.Image.Type
		p.ImageData = in.Image.Data
	}
	return p
}
