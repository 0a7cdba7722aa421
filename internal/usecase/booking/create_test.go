package booking_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
	uc "github.com/ceylonstyle/salon-backend/internal/usecase/booking"
)

const testDate = "2026-09-07" // a Monday

func seedCatalog(r *fakeRepo) {
	r.salons[1] = &models.Salon{
		ID:                    1,
		OwnerID:               10,
		BusinessName:          "Ceylon Cuts",
		IsActive:              true,
		AcceptsOnlineBookings: true,
	}
	r.services[1] = &models.Service{
		ID:              1,
		SalonID:         1,
		Name:            "Haircut",
		Price:           3000,
		DurationMinutes: 60,
		IsActive:        true,
		AddOnPrices:     map[string]float64{"beard_trim": 500},
	}
	r.staff[1] = &models.Staff{
		ID:              1,
		SalonID:         1,
		Name:            "Nimal",
		IsActive:        true,
		AcceptsBookings: true,
	}
}

func newCreate(r *fakeRepo, n *fakeNotifier) *uc.CreateBooking {
	return uc.NewCreateBooking(r, nil, n)
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	seedCatalog(repo)

	b, err := newCreate(repo, notifier).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID:     7,
		SalonID:        1,
		ServiceID:      1,
		Date:           testDate,
		Time:           "10:00",
		SelectedAddOns: []string{"beard_trim"},
		PaymentMethod:  "cash",
	})

	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.True(t, strings.HasPrefix(b.BookingReference, "BK-"))
	assert.Equal(t, 3500.0, b.TotalPrice)
	assert.Equal(t, 3500.0, b.FinalPrice)
	assert.Equal(t, 60, b.DurationMinutes)
	assert.Equal(t, models.BookingPaymentPending, b.PaymentStatus)

	stored, err := repo.GetBookingByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.BookingReference, stored.BookingReference)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, uint(7), notifier.sent[0].userID)
	assert.Equal(t, models.NotifyBookingConfirmation, notifier.sent[0].notifType)
}

func TestCreateBookingDiscountedPrice(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	discounted := 2500.0
	repo.services[1].DiscountedPrice = &discounted

	b, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  1,
		Date:       testDate,
		Time:       "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, 2500.0, b.TotalPrice)
}

func TestCreateBookingPercentagePromotion(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.promotions["WELCOME10"] = &models.Promotion{
		ID:            5,
		SalonID:       1,
		Code:          "WELCOME10",
		Type:          models.PromotionPercentage,
		DiscountValue: 10,
		Status:        models.PromotionActive,
		StartDate:     timezone.Now().Add(-time.Hour),
		EndDate:       timezone.Now().Add(24 * time.Hour),
	}

	b, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID:    7,
		SalonID:       1,
		ServiceID:     1,
		Date:          testDate,
		Time:          "10:00",
		PromotionCode: "WELCOME10",
	})

	require.NoError(t, err)
	assert.Equal(t, 3000.0, b.TotalPrice)
	assert.Equal(t, 300.0, b.DiscountAmount)
	assert.Equal(t, 2700.0, b.FinalPrice)
	assert.Equal(t, 1, repo.promotionUsage[5])
}

func TestCreateBookingExpiredPromotion(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.promotions["OLD"] = &models.Promotion{
		ID:            6,
		SalonID:       1,
		Code:          "OLD",
		Type:          models.PromotionPercentage,
		DiscountValue: 10,
		Status:        models.PromotionActive,
		StartDate:     timezone.Now().Add(-48 * time.Hour),
		EndDate:       timezone.Now().Add(-24 * time.Hour),
	}

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID:    7,
		SalonID:       1,
		ServiceID:     1,
		Date:          testDate,
		Time:          "10:00",
		PromotionCode: "OLD",
	})

	assert.True(t, httperr.IsBusiness(err, "promotion_not_active"))
}

func TestCreateBookingPerCustomerPromotionLimit(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	one := 1
	repo.promotions["ONCE"] = &models.Promotion{
		ID:               8,
		SalonID:          1,
		Code:             "ONCE",
		Type:             models.PromotionPercentage,
		DiscountValue:    10,
		Status:           models.PromotionActive,
		StartDate:        timezone.Now().Add(-time.Hour),
		EndDate:          timezone.Now().Add(24 * time.Hour),
		PerCustomerLimit: &one,
	}
	create := newCreate(repo, &fakeNotifier{})

	_, err := create.Execute(context.Background(), uc.CreateBookingInput{
		CustomerID:    7,
		SalonID:       1,
		ServiceID:     1,
		Date:          testDate,
		Time:          "10:00",
		PromotionCode: "ONCE",
	})
	require.NoError(t, err)

	_, err = create.Execute(context.Background(), uc.CreateBookingInput{
		CustomerID:    7,
		SalonID:       1,
		ServiceID:     1,
		Date:          testDate,
		Time:          "14:00",
		PromotionCode: "ONCE",
	})
	assert.True(t, httperr.IsBusiness(err, "promotion_usage_limit_reached"))
}

func TestCreateBookingPromotionFromOtherSalon(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.promotions["OTHER"] = &models.Promotion{
		ID:      7,
		SalonID: 99,
		Code:    "OTHER",
		Status:  models.PromotionActive,
	}

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID:    7,
		SalonID:       1,
		ServiceID:     1,
		Date:          testDate,
		Time:          "10:00",
		PromotionCode: "OTHER",
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_promotion"))
}

func TestCreateBookingSalonNotFound(t *testing.T) {
	repo := newFakeRepo()

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    42,
		ServiceID:  1,
		Date:       testDate,
		Time:       "10:00",
	})

	assert.True(t, httperr.IsBusiness(err, "salon_not_found"))
}

func TestCreateBookingSalonNotAccepting(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.salons[1].AcceptsOnlineBookings = false

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  1,
		Date:       testDate,
		Time:       "10:00",
	})

	assert.True(t, httperr.IsBusiness(err, "salon_not_accepting_bookings"))
}

func TestCreateBookingInvalidTime(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  1,
		Date:       testDate,
		Time:       "25:99",
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateBookingServiceFromOtherSalon(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.services[2] = &models.Service{ID: 2, SalonID: 99, DurationMinutes: 30, IsActive: true}

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  2,
		Date:       testDate,
		Time:       "10:00",
	})

	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBookingInactiveService(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.services[1].IsActive = false

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  1,
		Date:       testDate,
		Time:       "10:00",
	})

	assert.True(t, httperr.IsBusiness(err, "service_not_available"))
}

func TestCreateBookingStaffNotAccepting(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.staff[1].AcceptsBookings = false
	staffID := uint(1)

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  1,
		StaffID:    &staffID,
		Date:       testDate,
		Time:       "10:00",
	})

	assert.True(t, httperr.IsBusiness(err, "staff_not_accepting_bookings"))
}

func TestCreateBookingSalonClosed(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.hours[1] = &models.SalonHours{SalonID: 1, Weekday: 1, Closed: true}

	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  1,
		Date:       testDate,
		Time:       "10:00",
	})

	assert.True(t, httperr.IsBusiness(err, "salon_closed"))
}

func TestCreateBookingOutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	// 60 min service starting 17:30 runs past the default 18:00 close.
	_, err := newCreate(repo, &fakeNotifier{}).Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  1,
		Date:       testDate,
		Time:       "17:30",
	})

	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBookingSlotTaken(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	seedCatalog(repo)
	create := newCreate(repo, notifier)

	_, err := create.Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 7,
		SalonID:    1,
		ServiceID:  1,
		Date:       testDate,
		Time:       "10:00",
	})
	require.NoError(t, err)

	_, err = create.Execute(context.Background(), uc.CreateBookingInput{
		CustomerID: 8,
		SalonID:    1,
		ServiceID:  1,
		Date:       testDate,
		Time:       "10:30",
	})

	assert.True(t, httperr.IsBusiness(err, "slot_not_available"))
	assert.Len(t, notifier.sent, 1)
}
