// services/registration_service.go
package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"mahber-backend/models"
	"mahber-backend/utils"
)

const confirmationSubject = "Welkom bij Mahber – Uw lidnummer"

// InvoiceRenderer produces the membership invoice as a byte stream.
type InvoiceRenderer interface {
	Render(inv InvoiceData) ([]byte, error)
}

// Mailer delivers a single transactional email with an optional attachment.
type Mailer interface {
	Send(msg Mail) error
}

// SpouseData carries the partner fields of a married submission.
type SpouseData struct {
	FirstName  string
	LastName   string
	Gender     string
	BirthDate  *time.Time
	BirthPlace *string
}

type ChildData struct {
	FirstName  string
	LastName   string
	Gender     string
	BirthDate  *time.Time
	BirthPlace *string
}

// RegistrationData is the validated submission: a required member core plus
// an optional spouse, an ordered (possibly empty) list of children, and the
// emergency contact fields. The emergency fields stay pointers on purpose:
// a missing contact is inserted as-is and rejected by the storage layer.
type RegistrationData struct {
	FirstName  string
	LastName   string
	Gender     string
	BirthDate  time.Time
	BirthPlace *string
	Email      string
	Phone      *string

	Street       *string
	PostalCode   *string
	City         *string
	AddressExtra *string

	IsMarried bool
	Spouse    *SpouseData

	HasChildren bool
	Children    []ChildData

	EmergencyFirstName *string
	EmergencyLastName  *string
	EmergencyPhone     *string
}

type RegistrationService struct {
	db       *gorm.DB
	invoices InvoiceRenderer
	mailer   Mailer
	sms      *SMSService
}

// NewRegistrationService wires the storage handle and the outbound
// collaborators. sms may be nil when Twilio is not configured.
func NewRegistrationService(db *gorm.DB, invoices InvoiceRenderer, mailer Mailer, sms *SMSService) *RegistrationService {
	return &RegistrationService{
		db:       db,
		invoices: invoices,
		mailer:   mailer,
		sms:      sms,
	}
}

// Register runs the full registration workflow: one atomic transaction that
// allocates the sequence number and writes the household, then, only after
// commit, invoice rendering and the confirmation email. A render or mail
// failure is surfaced to the caller but never undoes the committed rows.
func (s *RegistrationService) Register(data RegistrationData) (*models.Member, error) {
	now := time.Now()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, &StorageError{tx.Error}
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// The sequence is allocated inside the transaction so a rolled-back
	// registration never leaves a member code pointing at nothing. Skipped
	// integers on rollback are fine; uniqueness is the invariant.
	var sequence int64
	if err := tx.Raw("SELECT nextval('member_seq')").Scan(&sequence).Error; err != nil {
		tx.Rollback()
		return nil, &StorageError{err}
	}

	member := models.Member{
		Sequence:     sequence,
		MemberCode:   utils.MemberCode(sequence, now.Year()),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Gender:       data.Gender,
		BirthDate:    data.BirthDate,
		BirthPlace:   data.BirthPlace,
		Email:        data.Email,
		Phone:        data.Phone,
		Street:       data.Street,
		PostalCode:   data.PostalCode,
		City:         data.City,
		AddressExtra: data.AddressExtra,
		IsMarried:    data.IsMarried,
		HasChildren:  data.HasChildren,
	}

	if err := tx.Create(&member).Error; err != nil {
		tx.Rollback()
		return nil, &StorageError{err}
	}

	if data.IsMarried && data.Spouse != nil {
		spouse := models.Spouse{
			MemberID:   member.ID,
			FirstName:  data.Spouse.FirstName,
			LastName:   data.Spouse.LastName,
			Gender:     data.Spouse.Gender,
			BirthDate:  data.Spouse.BirthDate,
			BirthPlace: data.Spouse.BirthPlace,
		}
		if err := tx.Create(&spouse).Error; err != nil {
			tx.Rollback()
			return nil, &StorageError{err}
		}
		member.Spouse = &spouse
	}

	for _, cd := range data.Children {
		child := models.Child{
			MemberID:   member.ID,
			FirstName:  cd.FirstName,
			LastName:   cd.LastName,
			Gender:     cd.Gender,
			BirthDate:  cd.BirthDate,
			BirthPlace: cd.BirthPlace,
		}
		if err := tx.Create(&child).Error; err != nil {
			tx.Rollback()
			return nil, &StorageError{err}
		}
		member.Children = append(member.Children, child)
	}

	// Always attempted, even with missing fields: a submission without an
	// emergency contact is a data-quality error the NOT NULL constraints
	// report, not a branch in the workflow.
	contact := models.EmergencyContact{
		MemberID:  member.ID,
		FirstName: data.EmergencyFirstName,
		LastName:  data.EmergencyLastName,
		Phone:     data.EmergencyPhone,
	}
	if err := tx.Create(&contact).Error; err != nil {
		tx.Rollback()
		return nil, &StorageError{err}
	}
	member.EmergencyContact = &contact

	if err := tx.Commit().Error; err != nil {
		return nil, &StorageError{err}
	}

	// Commit-before-email: from here on the registration stands, whatever
	// happens to the invoice or the mail call.
	pdf, err := s.invoices.Render(invoiceFor(&member, now))
	if err != nil {
		s.logOutcome(&member, "email", member.Email, "failed", err)
		return &member, &RenderError{err}
	}

	msg := Mail{
		To:      member.Email,
		ToName:  member.FirstName + " " + member.LastName,
		Subject: confirmationSubject,
		Body:    confirmationBody(&member),
		Attachment: &Attachment{
			Name:    "factuur-" + member.MemberCode + ".pdf",
			Content: pdf,
		},
	}
	if err := s.mailer.Send(msg); err != nil {
		s.logOutcome(&member, "email", member.Email, "failed", err)
		return &member, &NotificationError{err}
	}
	s.logOutcome(&member, "email", member.Email, "sent", nil)

	if s.sms != nil {
		s.sms.SendConfirmation(&member)
	}

	return &member, nil
}

func invoiceFor(member *models.Member, issuedAt time.Time) InvoiceData {
	return InvoiceData{
		MemberCode:   member.MemberCode,
		FirstName:    member.FirstName,
		LastName:     member.LastName,
		Email:        member.Email,
		Phone:        member.Phone,
		Street:       member.Street,
		PostalCode:   member.PostalCode,
		City:         member.City,
		AddressExtra: member.AddressExtra,
		IssuedAt:     issuedAt,
	}
}

// confirmationBody summarizes the registered household: member code, spouse
// or absence marker, children or absence marker, emergency contact.
func confirmationBody(member *models.Member) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Beste %s,\n\n", member.FirstName)
	b.WriteString("Dank voor uw registratie bij Mahber.\n\n")
	fmt.Fprintf(&b, "Uw lidnummer is:\n%s\n\n", member.MemberCode)

	if member.Spouse != nil {
		fmt.Fprintf(&b, "Partner: %s %s\n", member.Spouse.FirstName, member.Spouse.LastName)
	} else {
		b.WriteString("Partner: geen\n")
	}

	if len(member.Children) == 0 {
		b.WriteString("Kinderen: geen\n")
	} else {
		b.WriteString("Kinderen:\n")
		for _, child := range member.Children {
			if child.BirthDate != nil {
				fmt.Fprintf(&b, "  - %s %s (%s)\n", child.FirstName, child.LastName,
					child.BirthDate.Format("02-01-2006"))
			} else {
				fmt.Fprintf(&b, "  - %s %s\n", child.FirstName, child.LastName)
			}
		}
	}

	if contact := member.EmergencyContact; contact != nil {
		fmt.Fprintf(&b, "Noodcontact: %s %s (%s)\n",
			deref(contact.FirstName), deref(contact.LastName), deref(contact.Phone))
	}

	b.WriteString("\nDe factuur voor uw lidmaatschap vindt u in bijlage.\n")
	b.WriteString("\nMet respect,\nTeam Mahber\n")

	return b.String()
}

func (s *RegistrationService) logOutcome(member *models.Member, channel, recipient, status string, cause error) {
	entry := models.NotificationLog{
		MemberID:   member.ID,
		MemberCode: member.MemberCode,
		Recipient:  recipient,
		Channel:    channel,
		Status:     status,
		SentAt:     time.Now(),
	}
	if cause != nil {
		entry.ErrorMessage = cause.Error()
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log %s notification for member %s: %v", channel, member.MemberCode, err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
