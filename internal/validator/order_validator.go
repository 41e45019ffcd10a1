package validator

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"ecom/internal/usecase"
)

var (
	// 氏名が空
	ErrCustomerNameRequired = errors.New("customer name required")

	// emailの形式が不正
	ErrInvalidEmail = errors.New("invalid email")

	// 明細が空
	ErrItemsRequired = errors.New("items required")

	// productIdが不正
	ErrInvalidProductID = errors.New("invalid product id")

	// 数量が不正
	ErrInvalidQuantity = errors.New("quantity must be > 0")
)

type orderValidator struct{}

// Usecaseは interface を依存注入
func NewOrderValidator() usecase.OrderValidator {
	return &orderValidator{}
}

// 注文リクエストの入力を検証
func (v *orderValidator) ValidatePlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) error {
	// 必須チェック
	if strings.TrimSpace(in.CustomerName) == "" {
		return ErrCustomerNameRequired
	}

	// email形式
	if !isEmailLike(in.Email) {
		return ErrInvalidEmail
	}

	// 明細チェック
	if len(in.Items) == 0 {
		return ErrItemsRequired
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if it.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}
