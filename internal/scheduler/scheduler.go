package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/notify"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

// Scheduler owns the recurring maintenance jobs: appointment reminders,
// promotion expiry and subscription expiry.
type Scheduler struct {
	db       *gorm.DB
	notifier *notify.Notifier
	cron     *cron.Cron
}

func New(db *gorm.DB, notifier *notify.Notifier) *Scheduler {
	return &Scheduler{
		db:       db,
		notifier: notifier,
		cron:     cron.New(cron.WithLocation(timezone.Location(timezone.DefaultTimezone))),
	}
}

func (s *Scheduler) Start() {
	s.cron.AddFunc("0 9 * * *", s.SendBookingReminders)
	s.cron.AddFunc("30 0 * * *", s.ExpireSubscriptions)
	s.cron.AddFunc("0 * * * *", s.ExpirePromotions)

	s.cron.Start()
	log.Println("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// SendBookingReminders notifies customers with an appointment tomorrow.
// Each booking is reminded once.
func (s *Scheduler) SendBookingReminders() {
	log.Println("scheduler: sending booking reminders")

	now := timezone.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, 1)
	dayEnd := dayStart.Add(24 * time.Hour)

	var bookings []models.Booking
	err := s.db.
		Preload("Customer").
		Preload("Salon").
		Where(
			"appointment_date >= ? AND appointment_date < ? AND status IN ? AND is_reminder_sent = ?",
			dayStart, dayEnd,
			[]string{models.BookingPending, models.BookingConfirmed, models.BookingRescheduled},
			false,
		).
		Find(&bookings).Error
	if err != nil {
		log.Println("scheduler: reminder query failed:", err)
		return
	}

	for i := range bookings {
		b := &bookings[i]

		channel := models.ChannelInApp
		if b.Customer.Phone != "" {
			channel = models.ChannelSMS
		}

		s.notifier.Enqueue(
			b.CustomerID,
			models.NotifyBookingReminder,
			channel,
			"Appointment reminder",
			fmt.Sprintf(
				"Reminder: your appointment at %s is tomorrow at %s (ref %s).",
				b.Salon.BusinessName, b.AppointmentTime, b.BookingReference,
			),
			map[string]any{"booking_id": b.ID},
		)

		sentAt := timezone.Now()
		s.db.Model(b).Updates(map[string]any{
			"is_reminder_sent": true,
			"reminder_sent_at": &sentAt,
		})
	}

	log.Printf("scheduler: %d booking reminders queued", len(bookings))
}

// ExpirePromotions flips active promotions past their end date.
func (s *Scheduler) ExpirePromotions() {
	res := s.db.
		Model(&models.Promotion{}).
		Where("status = ? AND end_date < ?", models.PromotionActive, timezone.Now()).
		Update("status", models.PromotionExpired)
	if res.Error != nil {
		log.Println("scheduler: promotion sweep failed:", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("scheduler: expired %d promotions", res.RowsAffected)
	}
}

// ExpireSubscriptions marks lapsed subscriptions and drops the linked
// tier, customer profiles back to free and salons back to starter.
// Cancelled subscriptions keep their perks until the period end, so the
// sweep covers them too.
func (s *Scheduler) ExpireSubscriptions() {
	now := timezone.Now()

	var lapsed []models.Subscription
	err := s.db.
		Where(
			"status IN ? AND end_date < ?",
			[]string{models.SubscriptionActive, models.SubscriptionCancelled},
			now,
		).
		Find(&lapsed).Error
	if err != nil {
		log.Println("scheduler: subscription sweep failed:", err)
		return
	}

	for i := range lapsed {
		sub := &lapsed[i]

		if err := s.db.Model(sub).
			Update("status", models.SubscriptionExpired).Error; err != nil {
			log.Println("scheduler: failed to expire subscription:", err)
			continue
		}

		switch sub.Type {
		case models.SubscriptionSalonGrowth, models.SubscriptionSalonPro:
			s.db.Model(&models.Salon{}).
				Where("owner_id = ?", sub.UserID).
				Update("subscription_tier", models.SalonTierStarter)
		default:
			s.db.Model(&models.CustomerProfile{}).
				Where("user_id = ?", sub.UserID).
				Update("subscription_tier", models.TierFree)
		}

		s.notifier.Enqueue(
			sub.UserID,
			models.NotifySubscriptionExpiring,
			models.ChannelInApp,
			"Subscription expired",
			"Your subscription has expired. Renew to keep your try-on credits and perks.",
			map[string]any{"subscription_id": sub.ID},
		)
	}

	if len(lapsed) > 0 {
		log.Printf("scheduler: expired %d subscriptions", len(lapsed))
	}
}
