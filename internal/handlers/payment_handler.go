package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/payments"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

// creditPackages maps purchasable credit bundles to their LKR price.
var creditPackages = map[int]float64{
	10: 990,
	25: 1990,
	60: 3990,
}

type PaymentHandler struct {
	db      *gorm.DB
	gateway payments.Gateway
}

func NewPaymentHandler(db *gorm.DB, gateway payments.Gateway) *PaymentHandler {
	return &PaymentHandler{db: db, gateway: gateway}
}

// ======================================================
// REQUESTS
// ======================================================

type PayBookingRequest struct {
	BookingID     uint   `json:"booking_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	CardToken     string `json:"card_token"`
	MethodID      string `json:"method_id"`
}

type PurchaseCreditsRequest struct {
	Credits   int    `json:"credits" binding:"required"`
	CardToken string `json:"card_token" binding:"required"`
	MethodID  string `json:"method_id"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *PaymentHandler) PayBooking(c *gin.Context) {
	userID := currentUserID(c)

	var req PayBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var booking models.Booking
	if err := h.db.Preload("Customer").First(&booking, req.BookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}
	if booking.CustomerID != userID {
		httperr.Forbidden(c, "not_booking_owner", "Only the booking's customer can pay for it.")
		return
	}
	if booking.PaymentStatus == models.BookingPaymentPaid {
		httperr.BadRequest(c, "already_paid", "This booking is already paid.")
		return
	}

	payment := models.Payment{
		UserID:        userID,
		Type:          models.PaymentTypeBooking,
		BookingID:     &booking.ID,
		Amount:        booking.FinalPrice,
		Currency:      "LKR",
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentPending,
		TransactionID: payments.NewTransactionID(),
		Description:   fmt.Sprintf("Booking %s", booking.BookingReference),
	}

	if req.PaymentMethod == models.PaymentMethodCard {
		result, err := h.gateway.Charge(c.Request.Context(), payments.ChargeInput{
			Amount:      booking.FinalPrice,
			Description: payment.Description,
			PayerEmail:  booking.Customer.Email,
			CardToken:   req.CardToken,
			MethodID:    req.MethodID,
		})
		if err != nil {
			payment.Status = models.PaymentFailed
			h.db.Create(&payment)
			httperr.BadRequest(c, "payment_failed", "The card payment was declined.")
			return
		}

		payment.ExternalTransactionID = result.ProviderID
		payment.PaymentGateway = "mercadopago"
		if !result.Approved {
			payment.Status = models.PaymentFailed
			h.db.Create(&payment)
			h.db.Model(&booking).Update("payment_status", models.BookingPaymentFailed)
			httperr.BadRequest(c, "payment_failed", "The card payment was declined.")
			return
		}

		now := timezone.Now()
		payment.Status = models.PaymentCompleted
		payment.PaidAt = &now
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_store_payment", "Could not record payment.")
		return
	}

	if payment.Status == models.PaymentCompleted {
		h.db.Model(&booking).Updates(map[string]any{
			"payment_status":         models.BookingPaymentPaid,
			"payment_method":         req.PaymentMethod,
			"payment_transaction_id": payment.TransactionID,
		})
	}

	httpresp.Created(c, payment)
}

// PurchaseCredits charges a credit bundle and tops up the profile balance.
func (h *PaymentHandler) PurchaseCredits(c *gin.Context) {
	userID := currentUserID(c)

	var req PurchaseCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	price, ok := creditPackages[req.Credits]
	if !ok {
		httperr.BadRequest(c, "invalid_credit_package", "Unknown credit package.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Account not found.")
		return
	}

	var profile models.CustomerProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Customer profile not found.")
		return
	}

	payment := models.Payment{
		UserID:        userID,
		Type:          models.PaymentTypeCredits,
		Amount:        price,
		Currency:      "LKR",
		PaymentMethod: models.PaymentMethodCard,
		Status:        models.PaymentPending,
		TransactionID: payments.NewTransactionID(),
		Description:   fmt.Sprintf("%d try-on credits", req.Credits),
		Metadata:      map[string]any{"credits": req.Credits},
	}

	result, err := h.gateway.Charge(c.Request.Context(), payments.ChargeInput{
		Amount:      price,
		Description: payment.Description,
		PayerEmail:  user.Email,
		CardToken:   req.CardToken,
		MethodID:    req.MethodID,
	})
	if err != nil || !result.Approved {
		payment.Status = models.PaymentFailed
		if result != nil {
			payment.ExternalTransactionID = result.ProviderID
		}
		h.db.Create(&payment)
		httperr.BadRequest(c, "payment_failed", "The card payment was declined.")
		return
	}

	now := timezone.Now()
	payment.Status = models.PaymentCompleted
	payment.PaidAt = &now
	payment.ExternalTransactionID = result.ProviderID
	payment.PaymentGateway = "mercadopago"

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_store_payment", "Could not record payment.")
		return
	}

	h.db.Model(&profile).
		UpdateColumn("try_on_credits", gorm.Expr("try_on_credits + ?", req.Credits))

	httpresp.Created(c, gin.H{
		"payment":       payment,
		"credits_added": req.Credits,
	})
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var paymentStatuses = map[string]bool{
	models.PaymentPending:    true,
	models.PaymentProcessing: true,
	models.PaymentCompleted:  true,
	models.PaymentFailed:     true,
	models.PaymentRefunded:   true,
	models.PaymentCancelled:  true,
}

// UpdateStatus is the admin reconciliation endpoint, keyed by our internal
// transaction id rather than the row id.
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !paymentStatuses[req.Status] {
		httperr.BadRequest(c, "invalid_status", "Unknown payment status.")
		return
	}

	var payment models.Payment
	if err := h.db.
		Where("transaction_id = ?", c.Param("transaction_id")).
		First(&payment).Error; err != nil {
		httperr.NotFound(c, "payment_not_found", "Payment not found.")
		return
	}

	payment.Status = req.Status
	if req.Status == models.PaymentCompleted && payment.PaidAt == nil {
		now := timezone.Now()
		payment.PaidAt = &now
	}

	if err := h.db.Save(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_update_payment", "Could not update payment.")
		return
	}

	if payment.Type == models.PaymentTypeBooking && payment.BookingID != nil &&
		req.Status == models.PaymentCompleted {
		h.db.Model(&models.Booking{}).
			Where("id = ?", *payment.BookingID).
			Updates(map[string]any{
				"payment_status":         models.BookingPaymentPaid,
				"payment_transaction_id": payment.TransactionID,
			})
	}

	httpresp.OK(c, payment)
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	var list []models.Payment
	if err := h.db.
		Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Could not list payments.")
		return
	}

	httpresp.List(c, list)
}
