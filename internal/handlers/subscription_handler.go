package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/payments"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

// subscriptionPlan fixes price and what the plan grants.
type subscriptionPlan struct {
	MonthlyPrice   float64
	CustomerTier   string
	SalonTier      string
	MonthlyCredits int
}

var subscriptionPlans = map[string]subscriptionPlan{
	models.SubscriptionCustomerPlus: {MonthlyPrice: 790, CustomerTier: models.TierPlus, MonthlyCredits: 30},
	models.SubscriptionCustomerPro:  {MonthlyPrice: 1490, CustomerTier: models.TierPro, MonthlyCredits: 100},
	models.SubscriptionSalonGrowth:  {MonthlyPrice: 2990, SalonTier: models.SalonTierGrowth},
	models.SubscriptionSalonPro:     {MonthlyPrice: 5990, SalonTier: models.SalonTierPro},
}

type SubscriptionHandler struct {
	db      *gorm.DB
	gateway payments.Gateway
}

func NewSubscriptionHandler(db *gorm.DB, gateway payments.Gateway) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, gateway: gateway}
}

type SubscribeRequest struct {
	Type         string `json:"type" binding:"required"`
	BillingCycle string `json:"billing_cycle"`
	CardToken    string `json:"card_token" binding:"required"`
	MethodID     string `json:"method_id"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason"`
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID := currentUserID(c)
	role := currentUserRole(c)

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	plan, ok := subscriptionPlans[req.Type]
	if !ok {
		httperr.BadRequest(c, "invalid_plan", "Unknown subscription plan.")
		return
	}
	if plan.CustomerTier != "" && role != models.RoleCustomer {
		httperr.Forbidden(c, "plan_not_available", "Customer plans require a customer account.")
		return
	}
	if plan.SalonTier != "" && role != models.RoleSalonOwner {
		httperr.Forbidden(c, "plan_not_available", "Salon plans require a salon owner account.")
		return
	}

	var active int64
	h.db.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		Count(&active)
	if active > 0 {
		httperr.Conflict(c, "subscription_exists", "An active subscription already exists.")
		return
	}

	cycle := req.BillingCycle
	months := 1
	price := plan.MonthlyPrice
	if cycle == "yearly" {
		months = 12
		price = plan.MonthlyPrice * 10
	} else {
		cycle = "monthly"
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Account not found.")
		return
	}

	result, err := h.gateway.Charge(c.Request.Context(), payments.ChargeInput{
		Amount:      price,
		Description: "Subscription " + req.Type,
		PayerEmail:  user.Email,
		CardToken:   req.CardToken,
		MethodID:    req.MethodID,
	})
	if err != nil || !result.Approved {
		httperr.BadRequest(c, "payment_failed", "The card payment was declined.")
		return
	}

	now := timezone.Now()
	end := now.AddDate(0, months, 0)

	subscription := models.Subscription{
		UserID:          userID,
		Type:            req.Type,
		Status:          models.SubscriptionActive,
		Price:           price,
		Currency:        "LKR",
		BillingCycle:    cycle,
		StartDate:       now,
		EndDate:         end,
		NextBillingDate: &end,
		AutoRenew:       true,
	}

	if err := h.db.Create(&subscription).Error; err != nil {
		httperr.Internal(c, "failed_to_create_subscription", "Could not create subscription.")
		return
	}

	payment := models.Payment{
		UserID:                userID,
		Type:                  models.PaymentTypeSubscription,
		Amount:                price,
		Currency:              "LKR",
		PaymentMethod:         models.PaymentMethodCard,
		Status:                models.PaymentCompleted,
		TransactionID:         payments.NewTransactionID(),
		ExternalTransactionID: result.ProviderID,
		PaymentGateway:        "mercadopago",
		Description:           "Subscription " + req.Type,
		PaidAt:                &now,
		Metadata:              map[string]any{"subscription_id": subscription.ID},
	}
	h.db.Create(&payment)

	if plan.CustomerTier != "" {
		h.db.Model(&models.CustomerProfile{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"subscription_tier":       plan.CustomerTier,
				"try_on_credits":          gorm.Expr("try_on_credits + ?", plan.MonthlyCredits*months),
				"subscription_start_date": &now,
				"subscription_end_date":   &end,
			})
	}
	if plan.SalonTier != "" {
		h.db.Model(&models.Salon{}).
			Where("owner_id = ?", userID).
			Updates(map[string]any{
				"subscription_tier":       plan.SalonTier,
				"subscription_start_date": &now,
				"subscription_end_date":   &end,
			})
	}

	httpresp.Created(c, subscription)
}

// Cancel keeps the perks until the paid period ends; the expiry sweep
// downgrades the tier afterwards.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Subscription id must be numeric.")
		return
	}

	var req CancelSubscriptionRequest
	_ = c.ShouldBindJSON(&req)

	var subscription models.Subscription
	if err := h.db.
		Where("id = ? AND user_id = ?", uint(id), userID).
		First(&subscription).Error; err != nil {
		httperr.NotFound(c, "subscription_not_found", "Subscription not found.")
		return
	}
	if subscription.Status != models.SubscriptionActive {
		httperr.BadRequest(c, "subscription_not_active", "Only active subscriptions can be cancelled.")
		return
	}

	now := timezone.Now()
	updates := map[string]any{
		"status":              models.SubscriptionCancelled,
		"auto_renew":          false,
		"cancelled_at":        &now,
		"cancellation_reason": req.Reason,
	}
	if err := h.db.Model(&subscription).Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_cancel_subscription", "Could not cancel subscription.")
		return
	}

	httpresp.OK(c, subscription)
}

func (h *SubscriptionHandler) GetMine(c *gin.Context) {
	var subscription models.Subscription
	err := h.db.
		Where("user_id = ? AND status = ?", currentUserID(c), models.SubscriptionActive).
		Order("created_at DESC").
		First(&subscription).Error
	if err != nil {
		httperr.NotFound(c, "subscription_not_found", "No active subscription.")
		return
	}

	httpresp.OK(c, subscription)
}
