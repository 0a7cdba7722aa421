package models

import "time"

const (
	PaymentTypeBooking      = "booking"
	PaymentTypeSubscription = "subscription"
	PaymentTypeCredits      = "credits"
)

const (
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodLankaQR      = "lankaqr"
	PaymentMethodCash         = "cash"
)

const (
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentCompleted  = "completed"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
	PaymentCancelled  = "cancelled"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type string `gorm:"size:20;not null" json:"type"`

	BookingID *uint    `json:"booking_id"`
	Booking   *Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:10;default:'LKR'" json:"currency"`

	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`
	Status        string `gorm:"size:20;default:'pending'" json:"status"`

	TransactionID         string `gorm:"size:255;uniqueIndex;not null" json:"transaction_id"`
	ExternalTransactionID string `gorm:"size:255" json:"external_transaction_id"`
	PaymentGateway        string `gorm:"size:255" json:"payment_gateway"`

	Description string `gorm:"type:text" json:"description"`
	ReceiptURL  string `gorm:"size:500" json:"receipt_url"`

	PaidAt *time.Time `json:"paid_at"`

	RefundReason   string     `gorm:"size:255" json:"refund_reason"`
	RefundedAt     *time.Time `json:"refunded_at"`
	RefundedAmount *float64   `json:"refunded_amount"`

	Metadata map[string]any `gorm:"serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
