package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mayday-app/mayday/server/models"
	"github.com/mayday-app/mayday/server/sos"
	"github.com/mayday-app/mayday/server/twilio"
	"github.com/mayday-app/mayday/shared"
	"github.com/stretchr/testify/assert"
)

func setupTestServer() *httptest.Server {
	models.InitializeTestDb()
	sosService = sos.NewService(models.Store{}, twilio.NewClient(shared.TwilioConfig{}, true))

	return httptest.NewServer(newRouter())
}

func TestSaveAndListContacts(t *testing.T) {
	testServer := setupTestServer()
	defer testServer.Close()

	body := `{"contacts": [{"name": "Alex", "phone": "+15551234567"}, {"name": "Sam", "phone": "+15557654321"}]}`
	resp, err := http.Post(testServer.URL+"/api/contacts", "application/json", strings.NewReader(body))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	savedPayload := contactsResponsePayload{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&savedPayload))
	assert.Equal(t, "Contacts saved successfully", savedPayload.Message)
	assert.Len(t, savedPayload.Contacts, 2)
	assert.Equal(t, "Alex", savedPayload.Contacts[0].Name, "Saved contacts should come back in input order")

	resp, err = http.Get(testServer.URL + "/api/contacts")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	contacts := []models.Contact{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&contacts))
	assert.Len(t, contacts, 2)
}

func TestSaveContactsWithInvalidBody(t *testing.T) {
	testServer := setupTestServer()
	defer testServer.Close()

	for _, body := range []string{`{}`, `{"contacts": "nope"}`, `{"contacts": [{"name": "No Phone"}]}`} {
		resp, err := http.Post(testServer.URL+"/api/contacts", "application/json", strings.NewReader(body))
		assert.Nil(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Body %v should be rejected", body)
	}

	contacts, err := models.AllContacts()
	assert.Nil(t, err)
	assert.Empty(t, contacts)
}

func TestSendSOS(t *testing.T) {
	testServer := setupTestServer()
	defer testServer.Close()

	body := `{"lat": 40.0, "lng": -74.0, "contacts": [{"name": "Alex", "phone": "+15551234567"}]}`
	resp, err := http.Post(testServer.URL+"/api/sos", "application/json", strings.NewReader(body))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload := sosResponsePayload{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, "SOS processed successfully", payload.Message)
	assert.Equal(t, 40.0, payload.Sos.Lat)
	assert.Equal(t, -74.0, payload.Sos.Lng)
	assert.False(t, payload.Sos.Time.IsZero())
	assert.Equal(t, "https://maps.google.com/?q=40,-74", payload.GoogleMapsLink)

	// No twilio credentials in tests, so every outcome is simulated
	assert.Len(t, payload.SmsResults, 1)
	assert.Equal(t, "+15551234567", payload.SmsResults[0].Phone)
	assert.Equal(t, "Alex", payload.SmsResults[0].Name)
	assert.Equal(t, sos.SIMULATED_STATUS, payload.SmsResults[0].Status)
	assert.Empty(t, payload.SmsResults[0].Sid)

	count, err := models.CountSOSEvents()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSendSOSFallsBackToStoredContacts(t *testing.T) {
	testServer := setupTestServer()
	defer testServer.Close()

	_, err := models.UpsertContacts([]models.ContactParams{
		{Name: "Alex", Phone: "+15551230001"},
		{Name: "Sam", Phone: "+15551230002"},
	})
	assert.Nil(t, err)

	body := `{"lat": "40.5", "lng": "-74.25", "contacts": []}`
	resp, err := http.Post(testServer.URL+"/api/sos", "application/json", strings.NewReader(body))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload := sosResponsePayload{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Len(t, payload.SmsResults, 2, "Empty contact list should fan out to every stored contact")
}

func TestSendSOSWithMissingCoordinates(t *testing.T) {
	testServer := setupTestServer()
	defer testServer.Close()

	resp, err := http.Post(testServer.URL+"/api/sos", "application/json", strings.NewReader(`{"lng": -74.0}`))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	count, err := models.CountSOSEvents()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), count, "No event should be persisted when validation fails")
}

func TestHealthCheck(t *testing.T) {
	testServer := setupTestServer()
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/health")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	payload := healthCheckPayload{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, "connected", payload.Sqlite)
	assert.NotEmpty(t, payload.Timestamp)
}
