package booking

import (
	"context"
	"fmt"

	"github.com/ceylonstyle/salon-backend/internal/audit"
	domain "github.com/ceylonstyle/salon-backend/internal/domain/booking"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint
	SalonID    uint
	ServiceID  uint
	StaffID    *uint

	Date string
	Time string

	SelectedAddOns []string
	PromotionCode  string
	PaymentMethod  string
	CustomerNotes  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Salon
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found")
	}
	if !salon.IsActive || !salon.AcceptsOnlineBookings {
		return nil, httperr.ErrBusiness("salon_not_accepting_bookings")
	}

	// --------------------------------------------------
	// 2. Date / time
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	startMin, err := domain.TimeToMinutes(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3. Service
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || service.SalonID != in.SalonID {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	if !service.IsActive {
		return nil, httperr.ErrBusiness("service_not_available")
	}

	// --------------------------------------------------
	// 4. Staff (optional)
	// --------------------------------------------------
	if in.StaffID != nil {
		staff, err := uc.repo.GetStaff(ctx, *in.StaffID, in.SalonID)
		if err != nil {
			return nil, httperr.ErrNotFound("staff_not_found")
		}
		if !staff.IsActive || !staff.AcceptsBookings {
			return nil, httperr.ErrBusiness("staff_not_accepting_bookings")
		}
	}

	// --------------------------------------------------
	// 5. Working hours
	// --------------------------------------------------
	windowStart, windowEnd, open := workingWindow(ctx, uc.repo, in.SalonID, date)
	if !open {
		return nil, httperr.ErrBusiness("salon_closed")
	}
	if !domain.FitsWindow(startMin, service.DurationMinutes, windowStart, windowEnd) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 6. Pricing
	// --------------------------------------------------
	total := effectivePrice(service)
	for _, addOn := range in.SelectedAddOns {
		if p, ok := service.AddOnPrices[addOn]; ok {
			total += p
		}
	}

	var promo *models.Promotion
	discount := 0.0
	if in.PromotionCode != "" {
		promo, err = uc.repo.GetPromotionByCode(ctx, in.PromotionCode)
		if err != nil || promo.SalonID != in.SalonID {
			return nil, httperr.ErrBusiness("invalid_promotion")
		}
		discount, err = promotionDiscount(promo, in.ServiceID, total)
		if err != nil {
			return nil, err
		}

		if promo.PerCustomerLimit != nil {
			uses, err := uc.repo.CountCustomerPromotionUses(ctx, in.CustomerID, promo.Code)
			if err != nil {
				return nil, err
			}
			if uses >= int64(*promo.PerCustomerLimit) {
				return nil, httperr.ErrBusiness("promotion_usage_limit_reached")
			}
		}
	}

	// --------------------------------------------------
	// 7. Create with conflict check
	// --------------------------------------------------
	b := &models.Booking{
		CustomerID:      in.CustomerID,
		SalonID:         in.SalonID,
		ServiceID:       in.ServiceID,
		StaffID:         in.StaffID,
		AppointmentDate: date,
		AppointmentTime: in.Time,
		DurationMinutes: service.DurationMinutes,
		Status:          models.BookingPending,
		TotalPrice:      total,
		DiscountAmount:  discount,
		FinalPrice:      total - discount,
		PaymentStatus:   models.BookingPaymentPending,
		PaymentMethod:   in.PaymentMethod,
		PromotionCode:   in.PromotionCode,
		SelectedAddOns:  in.SelectedAddOns,
		CustomerNotes:   in.CustomerNotes,
		BookingReference: domain.NewReference(),
	}

	if err := uc.repo.CreateBookingChecked(ctx, b); err != nil {
		return nil, err
	}

	if promo != nil {
		if err := uc.repo.IncrementPromotionUsage(ctx, promo.ID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 8. Audit + notification
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  &in.SalonID,
		UserID:   &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Enqueue(
		in.CustomerID,
		models.NotifyBookingConfirmation,
		models.ChannelInApp,
		"Booking received",
		fmt.Sprintf(
			"Your booking %s at %s on %s %s is awaiting confirmation.",
			b.BookingReference, salon.BusinessName, in.Date, in.Time,
		),
		map[string]any{"booking_id": b.ID, "booking_reference": b.BookingReference},
	)

	return b, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func effectivePrice(service *models.Service) float64 {
	if service.DiscountedPrice != nil {
		return *service.DiscountedPrice
	}
	return service.Price
}

func promotionDiscount(
	promo *models.Promotion,
	serviceID uint,
	total float64,
) (float64, error) {

	now := timezone.Now()

	if promo.Status != models.PromotionActive {
		return 0, httperr.ErrBusiness("promotion_not_active")
	}
	if now.Before(promo.StartDate) || now.After(promo.EndDate) {
		return 0, httperr.ErrBusiness("promotion_not_active")
	}
	if promo.UsageLimit != nil && promo.UsageCount >= *promo.UsageLimit {
		return 0, httperr.ErrBusiness("promotion_usage_limit_reached")
	}
	if promo.MinPurchaseAmount != nil && total < *promo.MinPurchaseAmount {
		return 0, httperr.ErrBusiness("promotion_minimum_not_met")
	}

	for _, excluded := range promo.ExcludedServiceIDs {
		if excluded == serviceID {
			return 0, httperr.ErrBusiness("promotion_not_applicable")
		}
	}
	if len(promo.ApplicableServiceIDs) > 0 {
		applicable := false
		for _, id := range promo.ApplicableServiceIDs {
			if id == serviceID {
				applicable = true
				break
			}
		}
		if !applicable {
			return 0, httperr.ErrBusiness("promotion_not_applicable")
		}
	}

	var discount float64
	switch promo.Type {
	case models.PromotionFixed:
		discount = promo.DiscountValue
	default:
		discount = total * promo.DiscountValue / 100
	}

	if promo.MaxDiscountAmount != nil && discount > *promo.MaxDiscountAmount {
		discount = *promo.MaxDiscountAmount
	}
	if discount > total {
		discount = total
	}

	return discount, nil
}
