package service

import (
	"errors"
	"testing"

	"social-system/config"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{10, 1000},
		{19.99, 1999},
		{0.1, 10},
		{10.555, 1056}, // 四舍五入
		{10.554, 1055},
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.amount); got != tc.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestCreateIntentValidation(t *testing.T) {
	svc := NewPaymentService(config.StripeConfig{SecretKey: "sk_test_dummy", Currency: "usd"})

	if _, err := svc.CreateIntent(0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero amount: expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateIntent(-5); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative amount: expected ErrValidation, got %v", err)
	}
}
