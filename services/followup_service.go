// services/followup_service.go
package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"mahber-backend/models"
)

// FollowupService mails the organization a daily digest of confirmations
// that could not be delivered, so an operator can contact those members
// manually. It never retries the original sends.
type FollowupService struct {
	db     *gorm.DB
	mailer Mailer
	org    string
}

func NewFollowupService(db *gorm.DB, mailer Mailer, orgEmail string) *FollowupService {
	return &FollowupService{
		db:     db,
		mailer: mailer,
		org:    orgEmail,
	}
}

func (s *FollowupService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyDigest)

	c.Start()
	log.Println("Follow-up scheduler started")
}

// SendDailyDigest collects the failed notifications of the past day and
// mails them to the organization in one message.
func (s *FollowupService) SendDailyDigest() {
	since := time.Now().AddDate(0, 0, -1)

	var failures []models.NotificationLog
	if err := s.db.Where("status = ? AND sent_at >= ?", "failed", since).
		Order("sent_at").Find(&failures).Error; err != nil {
		log.Printf("Failed to fetch failed notifications: %v", err)
		return
	}
	if len(failures) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("De volgende bevestigingen konden niet worden verzonden:\n\n")
	for _, f := range failures {
		fmt.Fprintf(&b, "- %s (%s via %s): %s\n", f.MemberCode, f.Recipient, f.Channel, f.ErrorMessage)
	}
	b.WriteString("\nGelieve deze leden handmatig opnieuw te contacteren.\n")

	msg := Mail{
		To:      s.org,
		Subject: fmt.Sprintf("Mahber: %d niet-afgeleverde bevestigingen", len(failures)),
		Body:    b.String(),
	}
	if err := s.mailer.Send(msg); err != nil {
		log.Printf("Failed to send follow-up digest: %v", err)
	}
}
