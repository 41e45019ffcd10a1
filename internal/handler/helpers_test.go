package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"ecom/internal/domain/model"
	"ecom/internal/handler"
	repo "ecom/internal/repository"
	"ecom/internal/server"
	"ecom/internal/usecase"
	"ecom/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type HProductRepoMock struct{ mock.Mock }

func (m *HProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *HProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *HProductRepoMock) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	args := m.Called(ctx, keyword)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *HProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *HProductRepoMock) Update(ctx context.Context, p model.Product, withImage bool) error {
	args := m.Called(ctx, p, withImage)
	return args.Error(0)
}

func (m *HProductRepoMock) Delete(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type HOrderRepoMock struct{ mock.Mock }

func (m *HOrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *HOrderRepoMock) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *HOrderRepoMock) FindByOrderID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

type HInventoryRepoMock struct{ mock.Mock }

func (m *HInventoryRepoMock) DecrementStock(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *HInventoryRepoMock) CreateMovement(ctx context.Context, mv model.StockMovement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

// HTTPレイヤのテストなのでTxは素通しのスタブでよい
type hTxRepos struct {
	products  repo.ProductRepository
	orders    repo.OrderRepository
	inventory repo.InventoryRepository
}

func (r *hTxRepos) Products() repo.ProductRepository    { return r.products }
func (r *hTxRepos) Orders() repo.OrderRepository        { return r.orders }
func (r *hTxRepos) Inventory() repo.InventoryRepository { return r.inventory }

type hTxManagerStub struct{ repos repo.TxRepos }

func (s *hTxManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}

type hFixedIDGen struct{ id string }

func (g hFixedIDGen) NewOrderID() string { return g.id }

type hFixedClock struct{ at time.Time }

func (c hFixedClock) Now() time.Time { return c.at }

// =====================
// Fixture
// =====================

type testServer struct {
	e       *echo.Echo
	pRepo   *HProductRepoMock
	oRepo   *HOrderRepoMock
	invRepo *HInventoryRepoMock
}

// 実物のルーティング＋Usecaseをモックリポジトリの上に組む
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	pRepo := new(HProductRepoMock)
	oRepo := new(HOrderRepoMock)
	invRepo := new(HInventoryRepoMock)

	tx := &hTxManagerStub{repos: &hTxRepos{products: pRepo, orders: oRepo, inventory: invRepo}}

	productUC := usecase.NewProductUsecase(pRepo, tx)
	orderUC := usecase.NewOrderUsecase(
		tx,
		validator.NewOrderValidator(),
		hFixedIDGen{id: "ORDTEST0001"},
		hFixedClock{at: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)},
	)

	e := echo.New()
	server.RegisterRoutes(e, handler.NewProductHandler(productUC), handler.NewOrderHandler(orderUC))

	return &testServer{e: e, pRepo: pRepo, oRepo: oRepo, invRepo: invRepo}
}

func (s *testServer) doJSON(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doMultipart(t *testing.T, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, contentType)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

type imagePart struct {
	filename    string
	contentType string
	data        []byte
}

// "product"パート（JSON）と任意の"imageFile"パートを持つmultipartを組む
func buildProductForm(t *testing.T, productJSON string, img *imagePart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if productJSON != "" {
		if err := w.WriteField("product", productJSON); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}

	if img != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="imageFile"; filename="`+img.filename+`"`)
		h.Set("Content-Type", img.contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart failed: %v", err)
		}
		if _, err := part.Write(img.data); err != nil {
			t.Fatalf("part.Write failed: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("multipart Close failed: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func mustDecodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()

	var v handler.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, rec.Body.String())
	}
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status=%d want=%d body=%s", rec.Code, want, rec.Body.String())
	}
}
