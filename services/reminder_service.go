// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"caterflow-backend/config"
	"caterflow-backend/models"
	"caterflow-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
	ChannelLog      = "log"
)

// Notifier delivers a text message and reports the channel it used.
type Notifier interface {
	Send(ctx context.Context, phone, body string) (string, error)
}

// TwilioNotifier sends over WhatsApp when the phone is in E.164 form and a
// WhatsApp sender is configured, otherwise SMS.
type TwilioNotifier struct {
	client       *twilio.RestClient
	from         string
	whatsAppFrom string
	logger       *zap.Logger
}

func NewTwilioNotifier(cfg config.TwilioConfig, logger *zap.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from:         cfg.PhoneNumber,
		whatsAppFrom: cfg.WhatsAppNumber,
		logger:       logger,
	}
}

func (n *TwilioNotifier) Send(_ context.Context, phone, body string) (string, error) {
	channel := ChannelSMS
	to, from := phone, n.from
	if strings.HasPrefix(phone, "+") && n.whatsAppFrom != "" {
		channel = ChannelWhatsApp
		to, from = "whatsapp:"+phone, "whatsapp:"+n.whatsAppFrom
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return channel, fmt.Errorf("twilio %s to %s: %w", channel, phone, err)
	}
	if resp.Sid != nil {
		n.logger.Debug("Message sent", zap.String("channel", channel), zap.String("sid", *resp.Sid))
	}
	return channel, nil
}

// LogNotifier writes messages to the log when no SMS provider is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, phone, body string) (string, error) {
	n.logger.Info("Message not sent, no provider configured", zap.String("to", phone), zap.String("body", body))
	return ChannelLog, nil
}

// DueInstallment is an unpaid installment falling due inside the reminder window.
type DueInstallment struct {
	Customer    models.Customer
	Index       int
	Installment models.PaymentInstallment
	Due         time.Time
}

// DueInstallments selects unpaid installments due between today and today+windowDays,
// ordered by due date. Installments without a parseable date are skipped.
func DueInstallments(customers []models.Customer, now time.Time, windowDays int) []DueInstallment {
	today := utils.BeginningOfDay(now)
	var due []DueInstallment
	for _, c := range customers {
		for i, inst := range c.Data().PaymentPlan {
			if inst.Paid {
				continue
			}
			date, ok := utils.ParseDate(inst.Date, now.Location())
			if !ok {
				continue
			}
			days := utils.DaysBetween(today, date)
			if days < 0 || days > windowDays {
				continue
			}
			due = append(due, DueInstallment{Customer: c, Index: i, Installment: inst, Due: date})
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].Due.Before(due[j].Due) })
	return due
}

// RenderReminder fills the template placeholders for one installment.
func RenderReminder(template string, d DueInstallment) string {
	eventDate := d.Customer.Data().EventDate
	if eventDate == "" {
		eventDate = placeholderTBD
	}
	return strings.NewReplacer(
		"[CustomerName]", d.Customer.FullName,
		"[Amount]", d.Installment.Amount.Decimal().StringFixed(2),
		"[EventDate]", eventDate,
		"[DueDate]", d.Due.Format("Jan 2, 2006"),
	).Replace(template)
}

type ReminderService struct {
	db         *gorm.DB
	notifier   Notifier
	schedule   string
	windowDays int
	logger     *zap.Logger
	cron       *cron.Cron
	now        func() time.Time
}

func NewReminderService(db *gorm.DB, notifier Notifier, cfg config.ReminderConfig, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		db:         db,
		notifier:   notifier,
		schedule:   cfg.Schedule,
		windowDays: cfg.WindowDays,
		logger:     logger,
		now:        time.Now,
	}
}

// StartScheduler runs SendDailyReminders on the configured cron schedule.
func (s *ReminderService) StartScheduler() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.SendDailyReminders(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Reminder scheduler started", zap.String("schedule", s.schedule), zap.Int("window_days", s.windowDays))
	return nil
}

// Stop waits for a running job to finish.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *ReminderService) SendDailyReminders(ctx context.Context) {
	s.logger.Info("Starting daily reminder processing")

	var userIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		s.logger.Error("Failed to fetch users", zap.Error(err))
		return
	}

	total := 0
	for _, userID := range userIDs {
		sent, err := s.ProcessUserReminders(ctx, userID)
		if err != nil {
			s.logger.Error("Reminder processing failed", zap.String("user_id", userID.String()), zap.Error(err))
			continue
		}
		total += sent
	}

	s.logger.Info("Daily reminder processing completed", zap.Int("users", len(userIDs)), zap.Int("sent", total))
}

// ProcessUserReminders sends one reminder per due installment of the user's
// clients, skipping installments already reminded for the same due date.
func (s *ReminderService) ProcessUserReminders(ctx context.Context, userID uuid.UUID) (int, error) {
	db := s.db.WithContext(ctx)

	message := models.DefaultReminderMessage
	var template models.ReminderTemplate
	err := db.Where("user_id = ?", userID).First(&template).Error
	switch {
	case err == nil:
		if !template.IsActive {
			return 0, nil
		}
		message = template.Message
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return 0, fmt.Errorf("load reminder template: %w", err)
	}

	var customers []models.Customer
	if err := db.Where("user_id = ? AND phone <> ''", userID).Find(&customers).Error; err != nil {
		return 0, fmt.Errorf("load customers: %w", err)
	}

	sent := 0
	for _, due := range DueInstallments(customers, s.now(), s.windowDays) {
		dueDate := due.Due.Format(utils.DateLayout)

		var count int64
		if err := db.Model(&models.PaymentReminderLog{}).
			Where("customer_id = ? AND installment_index = ? AND due_date = ? AND status = ?",
				due.Customer.ID, due.Index, dueDate, "sent").
			Count(&count).Error; err != nil {
			return sent, fmt.Errorf("check reminder log: %w", err)
		}
		if count > 0 {
			continue
		}

		body := RenderReminder(message, due)
		channel, sendErr := s.notifier.Send(ctx, due.Customer.Phone, body)

		entry := models.PaymentReminderLog{
			UserID:           userID,
			CustomerID:       due.Customer.ID,
			InstallmentIndex: due.Index,
			DueDate:          dueDate,
			Message:          body,
			Status:           "sent",
			Channel:          channel,
			SentAt:           s.now(),
		}
		if sendErr != nil {
			s.logger.Warn("Failed to send reminder",
				zap.String("customer_id", due.Customer.ID.String()), zap.Error(sendErr))
			entry.Status = "failed"
			entry.ErrorMessage = sendErr.Error()
		} else {
			sent++
		}

		if err := db.Create(&entry).Error; err != nil {
			s.logger.Error("Failed to log reminder",
				zap.String("customer_id", due.Customer.ID.String()), zap.Error(err))
		}
	}
	return sent, nil
}
