package notify

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/config"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

// Notifier persists notification rows and delivers them off the request
// path. The row is written first; delivery is best effort and records its
// outcome on the row.
type Notifier struct {
	db     *gorm.DB
	cfg    *config.Config
	twilio *twilio.RestClient
	queue  chan uint
}

func New(db *gorm.DB, cfg *config.Config) *Notifier {
	n := &Notifier{
		db:  db,
		cfg: cfg,
		twilio: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		queue: make(chan uint, 200),
	}

	go n.worker()
	return n
}

// Enqueue stores the notification and schedules delivery. Never blocks;
// a full queue leaves the row pending for the daily sweep to retry.
func (n *Notifier) Enqueue(
	userID uint,
	notifType, channel, title, message string,
	data map[string]any,
) {

	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Channel: channel,
		Title:   title,
		Message: message,
		Status:  models.NotificationPending,
		Data:    data,
	}

	if err := n.db.Create(&notification).Error; err != nil {
		log.Println("failed to store notification:", err)
		return
	}

	select {
	case n.queue <- notification.ID:
	default:
		log.Println("notification queue full, leaving pending:", notification.ID)
	}
}

func (n *Notifier) worker() {
	for id := range n.queue {
		n.Deliver(id)
	}
}

// Deliver sends one stored notification and records the result.
func (n *Notifier) Deliver(id uint) {
	var notification models.Notification
	if err := n.db.Preload("User").First(&notification, id).Error; err != nil {
		log.Println("notification not found:", err)
		return
	}
	if notification.Status != models.NotificationPending {
		return
	}

	var user models.User
	if err := n.db.First(&user, notification.UserID).Error; err != nil {
		log.Println("notification user not found:", err)
		return
	}

	externalID, err := n.send(&notification, &user)

	now := time.Now()
	if err != nil {
		n.db.Model(&notification).Updates(map[string]any{
			"status":        models.NotificationFailed,
			"error_message": err.Error(),
			"retry_count":   gorm.Expr("retry_count + 1"),
		})
		log.Printf("notification %d delivery failed: %v", id, err)
		return
	}

	n.db.Model(&notification).Updates(map[string]any{
		"status":      models.NotificationSent,
		"sent_at":     &now,
		"external_id": externalID,
	})
}

func (n *Notifier) send(notification *models.Notification, user *models.User) (string, error) {
	switch notification.Channel {
	case models.ChannelInApp, models.ChannelPush:
		// Stored rows are the in-app feed; push has no provider wired.
		return "", nil
	case models.ChannelSMS, models.ChannelWhatsApp:
		return n.sendTwilio(notification, user)
	case models.ChannelEmail:
		return n.sendEmail(notification, user)
	default:
		return "", fmt.Errorf("unknown channel %q", notification.Channel)
	}
}

func (n *Notifier) sendTwilio(notification *models.Notification, user *models.User) (string, error) {
	if n.cfg.TwilioAccountSID == "" || user.Phone == "" {
		return "", fmt.Errorf("sms channel not configured")
	}

	to := user.Phone
	from := n.cfg.TwilioPhoneNumber
	if notification.Channel == models.ChannelWhatsApp && strings.HasPrefix(user.Phone, "+") {
		to = "whatsapp:" + user.Phone
		from = "whatsapp:" + n.cfg.TwilioWhatsAppNumber
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(notification.Message)

	resp, err := n.twilio.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}

func (n *Notifier) sendEmail(notification *models.Notification, user *models.User) (string, error) {
	if n.cfg.SendgridAPIKey == "" || user.Email == "" {
		return "", fmt.Errorf("email channel not configured")
	}

	from := mail.NewEmail("CeylonStyle", n.cfg.SendgridFromEmail)
	to := mail.NewEmail(user.Name, user.Email)
	message := mail.NewSingleEmail(from, notification.Title, to, notification.Message, notification.Message)

	client := sendgrid.NewSendClient(n.cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return messageID(resp.Headers), nil
}

// messageID extracts the provider message id from the response headers.
// Sendgrid sends it as X-Message-Id; absent or empty headers yield "".
func messageID(headers map[string][]string) string {
	if ids := headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0]
	}
	return ""
}
