// controllers/registration.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mahber-backend/models"
	"mahber-backend/services"
	"mahber-backend/utils"
)

const dateLayout = "2006-01-02"

// ChildInput is one declared child of the registering member.
type ChildInput struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birth_date"`
	BirthPlace string `json:"birth_place"`
}

// RegisterInput defines the expected JSON structure for a registration
// submission. The emergency contact fields carry no binding tags on purpose:
// their absence must reach the storage layer, not short-circuit here.
type RegisterInput struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birth_date"`
	BirthPlace string `json:"birth_place"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`

	Street       string `json:"street"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city"`
	AddressExtra string `json:"address_extra"`

	IsMarried         bool   `json:"is_married"`
	PartnerFirstName  string `json:"partner_first_name"`
	PartnerLastName   string `json:"partner_last_name"`
	PartnerGender     string `json:"partner_gender"`
	PartnerBirthDate  string `json:"partner_birth_date"`
	PartnerBirthPlace string `json:"partner_birth_place"`

	HasChildren bool         `json:"has_children"`
	Children    []ChildInput `json:"children"`

	EmergencyFirstName string `json:"emergency_first_name"`
	EmergencyLastName  string `json:"emergency_last_name"`
	EmergencyPhone     string `json:"emergency_phone"`
}

// Registrar runs the registration workflow for a validated submission.
type Registrar interface {
	Register(data services.RegistrationData) (*models.Member, error)
}

type RegistrationController struct {
	service Registrar
}

func NewRegistrationController(service Registrar) *RegistrationController {
	return &RegistrationController{service: service}
}

// Register handles POST /register: validate the submission once at the
// boundary, delegate to the registration service, map the outcome.
func (rc *RegistrationController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Ongeldige invoer: "+err.Error())
		return
	}

	if input.BirthDate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Geboortedatum is verplicht.")
		return
	}
	birthDate, err := time.Parse(dateLayout, input.BirthDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Ongeldige geboortedatum, verwacht formaat JJJJ-MM-DD.")
		return
	}

	if utils.Age(birthDate, time.Now()) >= 65 {
		utils.RespondWithError(c, http.StatusBadRequest, "Inschrijving niet toegestaan: leeftijdsgrens 65 jaar bereikt.")
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Ongeldig telefoonnummer.")
		return
	}

	if input.IsMarried && (input.PartnerFirstName == "" || input.PartnerLastName == "") {
		utils.RespondWithError(c, http.StatusBadRequest, "Partnergegevens zijn verplicht voor gehuwde leden.")
		return
	}

	data, err := buildRegistrationData(input, birthDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	member, err := rc.service.Register(data)
	if err != nil {
		log.Printf("Registration failed for %s: %v", input.Email, err)

		var storageErr *services.StorageError
		if errors.As(err, &storageErr) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Serverfout bij opslaan van de registratie.")
			return
		}
		// Render or mail failure after commit: the membership stands but
		// the confirmation did not go out.
		utils.RespondWithError(c, http.StatusInternalServerError, "Serverfout bij verzending e-mail.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Registratie succesvol! Controleer uw e-mail.",
		"memberId": member.MemberCode,
	})
}

// buildRegistrationData converts the bound input into the service's tagged
// shape: optional fields become nil instead of empty strings, secondary
// birth dates are parsed here so nothing half-validated reaches a write.
func buildRegistrationData(input RegisterInput, birthDate time.Time) (services.RegistrationData, error) {
	data := services.RegistrationData{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		BirthDate:    birthDate,
		BirthPlace:   optional(input.BirthPlace),
		Email:        input.Email,
		Phone:        optional(input.Phone),
		Street:       optional(input.Street),
		PostalCode:   optional(input.PostalCode),
		City:         optional(input.City),
		AddressExtra: optional(input.AddressExtra),
		IsMarried:    input.IsMarried,
		HasChildren:  input.HasChildren,

		EmergencyFirstName: optional(input.EmergencyFirstName),
		EmergencyLastName:  optional(input.EmergencyLastName),
		EmergencyPhone:     optional(input.EmergencyPhone),
	}

	if input.IsMarried {
		partnerBirth, err := optionalDate(input.PartnerBirthDate)
		if err != nil {
			return data, errors.New("Ongeldige geboortedatum van partner, verwacht formaat JJJJ-MM-DD.")
		}
		data.Spouse = &services.SpouseData{
			FirstName:  input.PartnerFirstName,
			LastName:   input.PartnerLastName,
			Gender:     input.PartnerGender,
			BirthDate:  partnerBirth,
			BirthPlace: optional(input.PartnerBirthPlace),
		}
	}

	for _, child := range input.Children {
		childBirth, err := optionalDate(child.BirthDate)
		if err != nil {
			return data, errors.New("Ongeldige geboortedatum van kind, verwacht formaat JJJJ-MM-DD.")
		}
		data.Children = append(data.Children, services.ChildData{
			FirstName:  child.FirstName,
			LastName:   child.LastName,
			Gender:     child.Gender,
			BirthDate:  childBirth,
			BirthPlace: optional(child.BirthPlace),
		})
	}

	return data, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
