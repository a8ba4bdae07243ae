// services/reminder_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const defaultReminderMessage = "Hola [ClientName], te recordamos tu cita de [Service] mañana a las [Time]."

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("Failed to schedule reminders: %v", err)
		return
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var accounts []models.User
	if err := s.db.Find(&accounts, "is_active = ? AND appointment_reminders = ?", true, true).Error; err != nil {
		log.Printf("Failed to fetch accounts: %v", err)
		return
	}

	for _, account := range accounts {
		s.ProcessAccountReminders(account)
	}

	log.Println("Daily reminder processing completed")
}

// ProcessAccountReminders messages every client with a pending or confirmed
// appointment tomorrow, once per appointment.
func (s *ReminderService) ProcessAccountReminders(account models.User) {
	tomorrow := utils.CanonicalDate(time.Now().AddDate(0, 0, 1))

	var appointments []models.Appointment
	if err := s.db.
		Where("user_id = ? AND date = ? AND status IN ?",
			account.ID, tomorrow,
			[]string{models.AppointmentPending, models.AppointmentConfirmed}).
		Find(&appointments).Error; err != nil {
		log.Printf("Account %s: Failed to get appointments: %v", account.ID, err)
		return
	}

	template := s.messageTemplate(account)
	for _, appt := range appointments {
		var sent int64
		s.db.Model(&models.ReminderLog{}).
			Where("appointment_id = ? AND status = ?", appt.ID, "sent").
			Count(&sent)
		if sent > 0 {
			continue
		}

		phone := s.clientPhone(appt)
		if phone == "" {
			continue
		}

		message := strings.ReplaceAll(template, "[ClientName]", appt.ClientName)
		message = strings.ReplaceAll(message, "[Service]", appt.ServiceName)
		message = strings.ReplaceAll(message, "[Time]", appt.Time)

		s.send(account, appt, phone, message)
	}
}

func (s *ReminderService) messageTemplate(account models.User) string {
	var template models.ReminderTemplate
	if err := s.db.Where("user_id = ? AND is_active = true", account.ID).
		First(&template).Error; err != nil {
		return defaultReminderMessage
	}
	return template.Message
}

func (s *ReminderService) clientPhone(appt models.Appointment) string {
	if appt.ClientID == nil {
		return ""
	}
	var client models.Client
	if err := s.db.First(&client, "id = ?", *appt.ClientID).Error; err != nil {
		return ""
	}
	return client.Phone
}

func (s *ReminderService) send(account models.User, appt models.Appointment, phone, message string) {
	// WhatsApp needs an E.164 number; otherwise fall back to SMS.
	channel := "sms"
	to := phone
	if account.WhatsAppNotifications && strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", phone)
	}

	reminderLog := models.ReminderLog{
		UserID:        account.ID,
		AppointmentID: appt.ID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for appointment %s: %v", appt.ID, err)
	}
}
