// services/sms_service.go
package services

import (
	"log"
	"os"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"mahber-backend/models"
)

// SMSService texts the member code to freshly registered members. It is a
// best-effort extra next to the email confirmation: a failure is logged and
// never fails the registration.
type SMSService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

// NewSMSService returns nil when Twilio is not configured.
func NewSMSService(db *gorm.DB) *SMSService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")

	if accountSid == "" || authToken == "" || from == "" {
		return nil
	}

	return &SMSService{
		db:   db,
		from: from,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *SMSService) SendConfirmation(member *models.Member) {
	if member.Phone == nil {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(*member.Phone)
	params.SetFrom(s.from)
	params.SetBody("Welkom bij Mahber. Uw lidnummer is " + member.MemberCode + ".")

	_, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", *member.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	}

	entry := models.NotificationLog{
		MemberID:     member.ID,
		MemberCode:   member.MemberCode,
		Recipient:    *member.Phone,
		Channel:      "sms",
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log SMS for member %s: %v", member.MemberCode, err)
	}
}
