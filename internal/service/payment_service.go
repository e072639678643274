package service

import (
	"fmt"
	"math"

	"social-system/config"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// PaymentService 支付服务，仅做金额换算并委托Stripe创建支付意向
type PaymentService struct {
	cfg config.StripeConfig
}

// NewPaymentService 创建PaymentService实例并配置Stripe密钥
func NewPaymentService(cfg config.StripeConfig) *PaymentService {
	stripe.Key = cfg.SecretKey
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &PaymentService{cfg: cfg}
}

// MinorUnits 金额换算：浮点主单位 -> 整数最小货币单位（四舍五入）
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent 创建支付意向
func (s *PaymentService) CreateIntent(amount float64) (*stripe.PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(MinorUnits(amount)),
		Currency: stripe.String(s.cfg.Currency),
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("创建支付意向失败: %w", err)
	}
	return pi, nil
}
