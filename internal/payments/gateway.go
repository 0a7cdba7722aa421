package payments

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

// ChargeInput describes one card charge.
type ChargeInput struct {
	Amount      float64
	Description string
	PayerEmail  string
	CardToken   string
	MethodID    string
}

// ChargeResult is the gateway outcome; Approved mirrors the provider
// status so callers decide how to persist it.
type ChargeResult struct {
	ProviderID string
	Status     string
	Approved   bool
}

// Gateway charges cards. Bookings paid at the salon never reach it.
type Gateway interface {
	Charge(ctx context.Context, in ChargeInput) (*ChargeResult, error)
}

// --------------------------------------------------
// Mercado Pago
// --------------------------------------------------

type MercadoPagoGateway struct {
	client payment.Client
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

func (g *MercadoPagoGateway) Charge(
	ctx context.Context,
	in ChargeInput,
) (*ChargeResult, error) {

	req := payment.Request{
		TransactionAmount: in.Amount,
		Description:       in.Description,
		PaymentMethodID:   in.MethodID,
		Token:             in.CardToken,
		Installments:      1,
		Payer: &payment.PayerRequest{
			Email: in.PayerEmail,
		},
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &ChargeResult{
		ProviderID: fmt.Sprintf("%d", resp.ID),
		Status:     resp.Status,
		Approved:   resp.Status == "approved",
	}, nil
}

// Compile-time check
var _ Gateway = (*MercadoPagoGateway)(nil)

// DisabledGateway rejects every charge. Used when no access token is
// configured.
type DisabledGateway struct{}

func (DisabledGateway) Charge(ctx context.Context, in ChargeInput) (*ChargeResult, error) {
	return nil, errors.New("payment gateway not configured")
}

// --------------------------------------------------
// Transaction ids
// --------------------------------------------------

const txnAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTransactionID builds the internal reference stored alongside the
// provider id, e.g. TXN-1735689600000-4KX9QPA.
func NewTransactionID() string {
	var sb strings.Builder
	for i := 0; i < 7; i++ {
		sb.WriteByte(txnAlphabet[rand.Intn(len(txnAlphabet))])
	}
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), sb.String())
}
