package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"ecom/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /api 配下の商品API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 商品ルートを登録
func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.GET("/products/search", h.search)
	g.GET("/product/:id", h.detail)
	g.GET("/product/:id/image", h.image)
	g.POST("/product", h.create)
	g.PUT("/product/:id", h.update)
	g.DELETE("/product/:id", h.remove)
}

// multipartの"product"パートに入るJSON
type ProductRequest struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Brand            string          `json:"brand"`
	Price            decimal.Decimal `json:"price"`
	Category         string          `json:"category"`
	ReleaseDate      *time.Time      `json:"releaseDate"`
	ProductAvailable bool            `json:"productAvailable"`
	StockQuantity    int64           `json:"stockQuantity"`
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) search(c echo.Context) error {
	out, err := h.uc.SearchProducts(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// 画像は保存時のMIMEで返す
func (h *ProductHandler) image(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetProductImage(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	mime := p.ImageType
	if mime == "" {
		mime = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, mime, p.ImageData)
}

func (h *ProductHandler) create(c echo.Context) error {
	in, err := bindProductForm(c)
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, err := bindProductForm(c)
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// multipartから商品入力を組み立てる。
// "product"パート: JSON（必須）。"imageFile"パート: 画像（任意）。
func bindProductForm(c echo.Context) (usecase.ProductInput, error) {
	raw := c.FormValue("product")
	if raw == "" {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "product part required")
	}

	var req ProductRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid product part")
	}

	in := usecase.ProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Brand:            req.Brand,
		Price:            req.Price,
		Category:         req.Category,
		ReleaseDate:      req.ReleaseDate,
		ProductAvailable: req.ProductAvailable,
		StockQuantity:    req.StockQuantity,
	}

	fh, err := c.FormFile("imageFile")
	if errors.Is(err, http.ErrMissingFile) {
		//画像なし。更新なら保存済みの画像を残す。
		return in, nil
	}
	if err != nil {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid image file")
	}

	f, err := fh.Open()
	if err != nil {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid image file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid image file")
	}

	in.Image = &usecase.ProductImageInput{
		Name: fh.Filename,
		Type: fh.Header.Get("Content-Type"),
		Data: data,
	}
	return in, nil
}
