package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mayday-app/mayday/server/models"
	"github.com/mayday-app/mayday/server/sos"
	"github.com/pkg/errors"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type contactsRequestPayload struct {
	Contacts []models.ContactParams `json:"contacts"`
}

type contactsResponsePayload struct {
	Message  string           `json:"message"`
	Contacts []models.Contact `json:"contacts"`
}

type sosRequestPayload struct {
	Lat      interface{}     `json:"lat"`
	Lng      interface{}     `json:"lng"`
	Contacts []sos.Recipient `json:"contacts"`
}

type sosEventPayload struct {
	Lat  float64   `json:"lat"`
	Lng  float64   `json:"lng"`
	Time time.Time `json:"time"`
}

type sosResponsePayload struct {
	Message        string          `json:"message"`
	Sos            sosEventPayload `json:"sos"`
	SmsResults     []sos.Outcome   `json:"smsResults"`
	GoogleMapsLink string          `json:"googleMapsLink"`
}

type healthCheckPayload struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Sqlite    string `json:"sqlite"`
}

// saveContactsHandler upserts the submitted contact list keyed on phone number
func saveContactsHandler(rw http.ResponseWriter, r *http.Request) {
	payload := contactsRequestPayload{}

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil || payload.Contacts == nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"invalid contacts data"}}, http.StatusBadRequest)
		return
	}

	for _, param := range payload.Contacts {
		if errs := validate.Struct(param); errs != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{"each contact requires a phone number"}}, http.StatusBadRequest)
			return
		}
	}

	contacts, err := models.UpsertContacts(payload.Contacts)
	if errors.Is(err, models.ErrPhoneNumberRequired) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"failed to save contacts"}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(contactsResponsePayload{
		Message:  "Contacts saved successfully",
		Contacts: contacts,
	})
}

func listContactsHandler(rw http.ResponseWriter, r *http.Request) {
	contacts, err := models.AllContacts()
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"failed to fetch contacts"}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(contacts)
}

// sendSOSHandler persists the SOS event & fans the alert out to the
// emergency contacts. Per-recipient SMS failures show up in 'smsResults',
// never as a request failure.
func sendSOSHandler(rw http.ResponseWriter, r *http.Request) {
	payload := sosRequestPayload{}

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	logg.Infof("SOS received! location: %v,%v", payload.Lat, payload.Lng)

	result, err := sosService.HandleSOS(payload.Lat, payload.Lng, payload.Contacts)
	if errors.Is(err, sos.ErrCoordinatesRequired) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"failed to process SOS"}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(sosResponsePayload{
		Message: "SOS processed successfully",
		Sos: sosEventPayload{
			Lat:  result.Event.Lat,
			Lng:  result.Event.Lng,
			Time: result.Event.CreatedAt,
		},
		SmsResults:     result.Outcomes,
		GoogleMapsLink: result.MapsLink,
	})
}

func healthCheckHandler(rw http.ResponseWriter, r *http.Request) {
	sqliteStatus := "connected"
	if err := models.Ping(); err != nil {
		sqliteStatus = "disconnected"
	}

	json.NewEncoder(rw).Encode(healthCheckPayload{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Sqlite:    sqliteStatus,
	})
}
