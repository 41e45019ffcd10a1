package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ecom/internal/domain/model"
	repo "ecom/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文番号（ORD + 英数8桁）を作る約束
type OrderIDGenerator interface {
	NewOrderID() string
}

// 現在時刻
type Clock interface {
	Now() time.Time
}

// 注文リクエストの入力検証の約束。実装はvalidatorパッケージ。
type OrderValidator interface {
	ValidatePlaceOrder(ctx context.Context, in PlaceOrderInput) error
}

// orderIdが一意制約に衝突したときの作り直し回数
const maxOrderIDAttempts = 3

type OrderUsecase struct {
	tx        repo.TransactionManager
	validator OrderValidator
	idGen     OrderIDGenerator
	clock     Clock
}

func NewOrderUsecase(tx repo.TransactionManager, validator OrderValidator, idGen OrderIDGenerator, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, validator: validator, idGen: idGen, clock: clock}
}

type OrderItemInput struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	CustomerName string
	Email        string
	Items        []OrderItemInput
}

type OrderItemOutput struct {
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type OrderOutput struct {
	OrderID      string            `json:"orderId"`
	CustomerName string            `json:"customerName"`
	Email        string            `json:"email"`
	Status       string            `json:"status"`
	OrderDate    string            `json:"orderDate"`
	Items        []OrderItemOutput `json:"items"`
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if err := u.validator.ValidatePlaceOrder(ctx, in); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//orderIdが衝突したらトランザクションごと作り直す
	//（失敗したtx内でのリトライはPostgresでは続行できないため）
	var out OrderOutput
	var err error
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		out, err = u.placeOrderOnce(ctx, in)
		if !errors.Is(err, repo.ErrDuplicateOrderID) {
			break
		}
	}
	if errors.Is(err, repo.ErrDuplicateOrderID) {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) placeOrderOnce(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	var out OrderOutput

	//検証〜在庫減算〜注文保存まで1トランザクション。
	//途中で失敗したら減らした在庫も全部戻る。
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items := make([]model.OrderItem, 0, len(in.Items))
		names := make([]string, 0, len(in.Items))

		for _, req := range in.Items {
			//商品取得
			p, err := r.Products().FindByID(ctx, req.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りないなら409）
			ok, err := r.Inventory().DecrementStock(ctx, req.ProductID, req.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "insufficient stock")
			}

			//明細。totalPrice = 単価 × 数量
			items = append(items, model.OrderItem{
				ProductID:  p.ID,
				Quantity:   req.Quantity,
				TotalPrice: p.Price.Mul(decimal.NewFromInt(req.Quantity)),
			})
			names = append(names, p.Name)
		}

		//注文と明細をまとめて保存
		created, err := r.Orders().Create(ctx, model.Order{
			OrderID:      u.idGen.NewOrderID(),
			CustomerName: in.CustomerName,
			Email:        in.Email,
			Status:       model.OrderStatusPlaced,
			OrderDate:    u.clock.Now(),
			Items:        items,
		})
		if err == repo.ErrDuplicateOrderID {
			//そのまま返してPlaceOrder側で作り直させる
			return err
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫変動の履歴
		for _, it := range created.Items {
			m := model.StockMovement{
				ProductID: it.ProductID,
				OrderID:   created.ID,
				Delta:     -it.Quantity,
			}
			if err := r.Inventory().CreateMovement(ctx, m); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = toOrderOutput(created, names)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o, preloadedNames(o.Items)))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 外部向けorderId（ORDxxxxxxxx）で1件取得
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID string) (OrderOutput, error) {
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, preloadedNames(o.Items))
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func preloadedNames(items []model.OrderItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Product.Name)
	}
	return names
}

// namesはitemsと同じ並び
func toOrderOutput(o model.Order, names []string) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(o.Items))
	for i, it := range o.Items {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		outItems = append(outItems, OrderItemOutput{
			ProductName: name,
			Quantity:    it.Quantity,
			TotalPrice:  it.TotalPrice,
		})
	}

	return OrderOutput{
		OrderID:      o.OrderID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Status:       string(o.Status),
		//日付だけ返す（時刻は持たない）
		OrderDate: o.OrderDate.Format(time.DateOnly),
		Items:     outItems,
	}
}
