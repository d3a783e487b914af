package payment

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-commodity-market/basket"
	"go-commodity-market/domain"
	"go-commodity-market/exchange"
	"go-commodity-market/factory"
)

var widget = domain.NewCommodity("Widget", decimal.NewFromInt(10))

func newService() Service {
	return NewService(exchange.NewService(), factory.NewCatalog(widget))
}

func TestService_BuildPaymentBasket(t *testing.T) {
	tests := []struct {
		name      string
		commodity string
		quantity  string
		wantErr   error
	}{
		{"valid", "Widget", "5", nil},
		{"fractional", "Widget", "0.5", nil},
		{"empty name", "", "5", domain.ErrInvalidInput},
		{"negative quantity", "Widget", "-1", domain.ErrOutOfRange},
		{"zero quantity", "Widget", "0", domain.ErrOutOfRange},
		{"unknown commodity", "Gadget", "5", factory.ErrUnknownCommodity},
	}
	s := newService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.BuildPaymentBasket(context.Background(), tt.commodity, decimal.RequireFromString(tt.quantity))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			store, err := b.FetchCommodity(tt.commodity)
			require.NoError(t, err)
			assert.Equal(t, tt.quantity, store.Quantity.String())
			assert.Equal(t, 1, b.Len())
		})
	}
}

func TestService_BuildPaymentBasketFactoryErrorIsUnchanged(t *testing.T) {
	broken := errors.New("catalog unavailable")
	s := NewService(exchange.NewService(), factory.Func(func(context.Context, string) (domain.Commodity, error) {
		return domain.Commodity{}, broken
	}))

	_, err := s.BuildPaymentBasket(context.Background(), "Widget", decimal.NewFromInt(1))

	assert.Equal(t, broken, err)
}

func TestService_BuildLoanBasket(t *testing.T) {
	s := newService()

	b, err := s.BuildLoanBasket(context.Background(), "Widget", decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "30", b.TotalValuation().String())

	_, err = s.BuildLoanBasket(context.Background(), "Widget", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestService_HandlePaymentTransaction(t *testing.T) {
	s := newService()
	ctx := context.Background()
	payment, err := s.BuildPaymentBasket(ctx, "Widget", decimal.NewFromInt(5))
	require.NoError(t, err)
	loan, err := s.BuildLoanBasket(ctx, "Widget", decimal.NewFromInt(3))
	require.NoError(t, err)

	remaining, err := s.HandlePaymentTransaction(ctx, payment, loan, decimal.NewFromInt(50))

	require.NoError(t, err)
	assert.Equal(t, 0, loan.Len(), "the loan entry is taken from the caller's basket")
	assert.Equal(t, 1, payment.Len())

	store, err := remaining.FetchCommodity("Widget")
	require.NoError(t, err)
	assert.Equal(t, "20", store.Quantity.String())
	assert.Equal(t, []string{"Widget"}, remaining.Names())
}

func TestService_HandlePaymentTransactionInsufficientFunds(t *testing.T) {
	s := newService()
	ctx := context.Background()
	payment, err := s.BuildPaymentBasket(ctx, "Widget", decimal.NewFromInt(5))
	require.NoError(t, err)
	loan, err := s.BuildLoanBasket(ctx, "Widget", decimal.NewFromInt(7))
	require.NoError(t, err)

	remaining, err := s.HandlePaymentTransaction(ctx, payment, loan, decimal.NewFromInt(50))

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Nil(t, remaining)
	assert.Equal(t, 1, loan.Len(), "no partial payment is applied")
}

func TestService_HandlePaymentTransactionAmountOutOfRange(t *testing.T) {
	s := newService()
	loan := basket.New()
	require.NoError(t, loan.Add(widget, decimal.NewFromInt(1)))

	for _, amount := range []string{"0", "-5"} {
		_, err := s.HandlePaymentTransaction(context.Background(), basket.New(), loan, decimal.RequireFromString(amount))
		assert.ErrorIs(t, err, domain.ErrOutOfRange, amount)
	}
	assert.Equal(t, 1, loan.Len())
}

func TestService_HandlePaymentTransactionEmptyLoan(t *testing.T) {
	s := newService()
	payment := basket.New()
	require.NoError(t, payment.Add(widget, decimal.NewFromInt(1)))

	_, err := s.HandlePaymentTransaction(context.Background(), payment, basket.New(), decimal.NewFromInt(10))

	assert.ErrorIs(t, err, domain.ErrEmptyBasket)
}

func TestService_HandlePaymentTransactionFactoryErrorKeepsLoan(t *testing.T) {
	broken := errors.New("catalog unavailable")
	s := NewService(exchange.NewService(), factory.Func(func(context.Context, string) (domain.Commodity, error) {
		return domain.Commodity{}, broken
	}))
	payment, loan := basket.New(), basket.New()
	require.NoError(t, payment.Add(widget, decimal.NewFromInt(5)))
	require.NoError(t, loan.Add(widget, decimal.NewFromInt(3)))

	remaining, err := s.HandlePaymentTransaction(context.Background(), payment, loan, decimal.NewFromInt(50))

	assert.ErrorIs(t, err, broken)
	assert.Nil(t, remaining)
	require.Equal(t, 1, loan.Len())
	store, err := loan.FetchCommodity("Widget")
	require.NoError(t, err)
	assert.Equal(t, "3", store.Quantity.String())
}

func TestService_Settle(t *testing.T) {
	s := newService()
	ctx := context.Background()
	payment, err := s.BuildPaymentBasket(ctx, "Widget", decimal.NewFromInt(5))
	require.NoError(t, err)
	loan, err := s.BuildLoanBasket(ctx, "Widget", decimal.NewFromInt(3))
	require.NoError(t, err)

	settlement, err := s.Settle(ctx, payment, loan, decimal.NewFromInt(50))

	require.NoError(t, err)
	assert.Equal(t, domain.FederalReserveNote, settlement.Change.Commodity.Name)
	assert.Equal(t, "20", settlement.Change.Quantity.String())
	assert.Equal(t, "200", settlement.Remaining.TotalValuation().String())
	assert.Equal(t, 0, loan.Len())
}

func TestService_SettleInsufficientFunds(t *testing.T) {
	s := newService()
	payment, loan := basket.New(), basket.New()
	require.NoError(t, payment.Add(widget, decimal.NewFromInt(1)))
	require.NoError(t, loan.Add(widget, decimal.NewFromInt(2)))

	settlement, err := s.Settle(context.Background(), payment, loan, decimal.NewFromInt(10))

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Nil(t, settlement.Remaining)
	assert.Equal(t, 1, loan.Len())
}

func TestLoggingService_HandlePaymentTransaction(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), newService())
	ctx := context.Background()
	payment, err := s.BuildPaymentBasket(ctx, "Widget", decimal.NewFromInt(5))
	require.NoError(t, err)
	loan, err := s.BuildLoanBasket(ctx, "Widget", decimal.NewFromInt(3))
	require.NoError(t, err)

	_, err = s.HandlePaymentTransaction(ctx, payment, loan, decimal.NewFromInt(50))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "method=build_payment_basket")
	assert.Contains(t, buf.String(), "method=handle_payment_transaction amount=50 paid=50 owed=30 remaining=200")
}

func TestLoggingService_Settle(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), newService())
	payment, loan := basket.New(), basket.New()
	require.NoError(t, payment.Add(widget, decimal.NewFromInt(5)))
	require.NoError(t, loan.Add(widget, decimal.NewFromInt(3)))

	_, err := s.Settle(context.Background(), payment, loan, decimal.NewFromInt(50))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "method=settle amount=50 paid=50 owed=30 change=20 remaining=200")
}
