package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahber-backend/models"
	"mahber-backend/services"
)

type fakeRegistrar struct {
	member *models.Member
	err    error
	got    *services.RegistrationData
}

func (f *fakeRegistrar) Register(data services.RegistrationData) (*models.Member, error) {
	f.got = &data
	return f.member, f.err
}

func performRegister(t *testing.T, registrar Registrar, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/register", NewRegistrationController(registrar).Register)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validInput() map[string]any {
	return map[string]any{
		"first_name":           "Awet",
		"last_name":            "Tesfay",
		"gender":               "m",
		"birth_date":           "1996-04-12",
		"birth_place":          "Asmara",
		"email":                "awet@example.com",
		"phone":                "+32470123456",
		"street":               "Kerkstraat 12",
		"postal_code":          "2000",
		"city":                 "Antwerpen",
		"is_married":           false,
		"has_children":         false,
		"emergency_first_name": "Jan",
		"emergency_last_name":  "Janssens",
		"emergency_phone":      "+32470654321",
	}
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterSuccess(t *testing.T) {
	fake := &fakeRegistrar{member: &models.Member{ID: 1, MemberCode: "M1001-2026"}}

	w := performRegister(t, fake, validInput())

	require.Equal(t, http.StatusOK, w.Code)
	body := responseMessage(t, w)
	assert.Equal(t, "M1001-2026", body["memberId"])
	assert.Equal(t, "Registratie succesvol! Controleer uw e-mail.", body["message"])

	require.NotNil(t, fake.got)
	assert.Nil(t, fake.got.Spouse)
	assert.Empty(t, fake.got.Children)
	require.NotNil(t, fake.got.EmergencyFirstName)
	assert.Equal(t, "Jan", *fake.got.EmergencyFirstName)
	require.NotNil(t, fake.got.Street)
	assert.Equal(t, "Kerkstraat 12", *fake.got.Street)
	assert.Nil(t, fake.got.AddressExtra, "omitted optional fields stay nil")
}

func TestRegisterMissingBirthDate(t *testing.T) {
	fake := &fakeRegistrar{}
	input := validInput()
	delete(input, "birth_date")

	w := performRegister(t, fake, input)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Geboortedatum is verplicht.", responseMessage(t, w)["message"])
	assert.Nil(t, fake.got, "no registration attempted")
}

func TestRegisterMalformedBirthDate(t *testing.T) {
	input := validInput()
	input["birth_date"] = "12/04/1996"

	w := performRegister(t, &fakeRegistrar{}, input)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterAgeLimit(t *testing.T) {
	fake := &fakeRegistrar{}
	input := validInput()
	// 65th birthday is today, which counts as reached.
	input["birth_date"] = time.Now().AddDate(-65, 0, 0).Format("2006-01-02")

	w := performRegister(t, fake, input)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Inschrijving niet toegestaan: leeftijdsgrens 65 jaar bereikt.",
		responseMessage(t, w)["message"])
	assert.Nil(t, fake.got)
}

func TestRegisterJustUnderAgeLimit(t *testing.T) {
	fake := &fakeRegistrar{member: &models.Member{MemberCode: "M1003-2026"}}
	input := validInput()
	// 65th birthday is tomorrow, so the member is still 64 today.
	input["birth_date"] = time.Now().AddDate(-65, 0, 1).Format("2006-01-02")

	w := performRegister(t, fake, input)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterMarriedRequiresPartner(t *testing.T) {
	fake := &fakeRegistrar{}
	input := validInput()
	input["is_married"] = true

	w := performRegister(t, fake, input)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, fake.got)
}

func TestRegisterMarriedWithChildren(t *testing.T) {
	fake := &fakeRegistrar{member: &models.Member{MemberCode: "M1004-2026"}}
	input := validInput()
	input["is_married"] = true
	input["partner_first_name"] = "Senait"
	input["partner_last_name"] = "Tesfay"
	input["partner_birth_date"] = "1998-02-20"
	input["has_children"] = true
	input["children"] = []map[string]any{
		{"first_name": "Daniel", "last_name": "Tesfay", "birth_date": "2020-06-01"},
		{"first_name": "Lidya", "last_name": "Tesfay", "birth_date": "2022-11-15"},
	}

	w := performRegister(t, fake, input)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fake.got)
	require.NotNil(t, fake.got.Spouse)
	assert.Equal(t, "Senait", fake.got.Spouse.FirstName)
	require.Len(t, fake.got.Children, 2)
	assert.Equal(t, "Daniel", fake.got.Children[0].FirstName)
	assert.Equal(t, "Lidya", fake.got.Children[1].FirstName)
}

func TestRegisterStorageError(t *testing.T) {
	fake := &fakeRegistrar{err: &services.StorageError{Err: errors.New("constraint violation")}}

	w := performRegister(t, fake, validInput())

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Serverfout bij opslaan van de registratie.", responseMessage(t, w)["message"])
}

func TestRegisterNotificationError(t *testing.T) {
	// Under commit-before-email the member exists even though the mail
	// failed; the caller still gets a server error.
	fake := &fakeRegistrar{
		member: &models.Member{MemberCode: "M1005-2026"},
		err:    &services.NotificationError{Err: errors.New("provider rejected")},
	}

	w := performRegister(t, fake, validInput())

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Serverfout bij verzending e-mail.", responseMessage(t, w)["message"])
}

func TestRegisterMissingRequiredFields(t *testing.T) {
	input := validInput()
	delete(input, "email")

	w := performRegister(t, &fakeRegistrar{}, input)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
