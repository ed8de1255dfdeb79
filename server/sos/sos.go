package sos

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/mayday-app/mayday/server/logger"
	"github.com/mayday-app/mayday/server/models"
	"github.com/pkg/errors"
)

const (
	SENT_STATUS      = "sent"
	SIMULATED_STATUS = "simulated"
	FAILED_STATUS    = "failed"

	// Fallback display name for recipients submitted without one
	DEFAULT_RECIPIENT_NAME = "Emergency Contact"
)

var (
	ErrCoordinatesRequired = errors.New("location coordinates required")

	logg = logger.NewLogger()
)

// Recipient is one emergency contact within a single SOS dispatch, either
// supplied inline with the request or resolved from the contact store.
type Recipient struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Outcome is the per-recipient result of one dispatch. Sid is set when the
// transport accepted the message, Message holds the composed body in
// simulated mode & Error carries the transport failure text.
type Outcome struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Sid     string `json:"sid,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Messenger is the SMS transport collaborator. A disabled messenger puts
// the dispatcher in simulated mode for every recipient.
type Messenger interface {
	IsEnabled() bool
	SendMessage(to, msg string) (string, error)
}

type Store interface {
	CreateSOSEvent(lat, lng float64) (*models.SOSEvent, error)
	AllContacts() ([]models.Contact, error)
}

// ---------------------------------------------------------------------------------//
// Notification fan-out
// --------------------------------------------------------------------------------//

type Dispatcher struct {
	messenger Messenger
}

func NewDispatcher(messenger Messenger) *Dispatcher {
	return &Dispatcher{messenger: messenger}
}

// Notify texts the SOS message to every recipient & collects one outcome per
// recipient, in input order. A transport failure for one recipient is captured
// in that recipient's outcome & never aborts delivery to the others.
func (d *Dispatcher) Notify(lat, lng float64, recipients []Recipient) []Outcome {
	msg := ComposeMessage(lat, lng)
	outcomes := make([]Outcome, 0, len(recipients))

	for _, recipient := range recipients {
		name := recipient.Name
		if name == "" {
			name = DEFAULT_RECIPIENT_NAME
		}

		if d.messenger == nil || !d.messenger.IsEnabled() {
			logg.Infof("[SIMULATED] SMS to %v (%v): %v", name, recipient.Phone, msg)
			outcomes = append(outcomes, Outcome{
				Phone:   recipient.Phone,
				Name:    name,
				Status:  SIMULATED_STATUS,
				Message: msg,
			})
			continue
		}

		sid, err := d.messenger.SendMessage(recipient.Phone, msg)
		if err != nil {
			logg.Errorf("Failed to send SMS to %v (%v): %v", name, recipient.Phone, err)
			outcomes = append(outcomes, Outcome{
				Phone:  recipient.Phone,
				Name:   name,
				Status: FAILED_STATUS,
				Error:  err.Error(),
			})
			continue
		}

		logg.Infof("SMS sent to %v (%v): %v", name, recipient.Phone, sid)
		outcomes = append(outcomes, Outcome{
			Phone:  recipient.Phone,
			Name:   name,
			Status: SENT_STATUS,
			Sid:    sid,
		})
	}

	return outcomes
}

// ---------------------------------------------------------------------------------//
// SOS orchestrator
// --------------------------------------------------------------------------------//

type Service struct {
	store      Store
	dispatcher *Dispatcher
}

type Result struct {
	Event    *models.SOSEvent
	Outcomes []Outcome
	MapsLink string
}

func NewService(store Store, messenger Messenger) *Service {
	return &Service{store: store, dispatcher: NewDispatcher(messenger)}
}

// HandleSOS runs one SOS submission end to end: validate the coordinates,
// persist the event, resolve the recipient list (explicit list when given,
// otherwise the full contact store), fan out & assemble the result. Individual
// notification failures are reported in the outcomes, never as an error here.
func (s *Service) HandleSOS(latArg, lngArg interface{}, recipients []Recipient) (*Result, error) {
	lat, err := ParseCoordinate(latArg)
	if err != nil {
		return nil, err
	}

	lng, err := ParseCoordinate(lngArg)
	if err != nil {
		return nil, err
	}

	event, err := s.store.CreateSOSEvent(lat, lng)
	if err != nil {
		return nil, err
	}

	if len(recipients) == 0 {
		contacts, err := s.store.AllContacts()
		if err != nil {
			return nil, err
		}

		for _, contact := range contacts {
			recipients = append(recipients, Recipient{Name: contact.Name, Phone: contact.PhoneNumber})
		}
	}

	logg.Infof("Sending SOS for event %v to %v contact(s)", event.ID, len(recipients))
	outcomes := s.dispatcher.Notify(event.Lat, event.Lng, recipients)

	return &Result{
		Event:    event,
		Outcomes: outcomes,
		MapsLink: MapsLink(event.Lat, event.Lng),
	}, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// ParseCoordinate coerces a decoded JSON value into a finite float64.
// Zero is a legal coordinate; only absent, non-numeric & non-finite
// values are rejected.
func ParseCoordinate(val interface{}) (float64, error) {
	var coord float64

	switch v := val.(type) {
	case nil:
		return 0, ErrCoordinatesRequired
	case float64:
		coord = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, ErrCoordinatesRequired
		}
		coord = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, ErrCoordinatesRequired
		}
		coord = parsed
	default:
		return 0, ErrCoordinatesRequired
	}

	if math.IsNaN(coord) || math.IsInf(coord, 0) {
		return 0, ErrCoordinatesRequired
	}

	return coord, nil
}

// MapsLink builds the google maps link for a coordinate pair
func MapsLink(lat, lng float64) string {
	return fmt.Sprintf("https://maps.google.com/?q=%v,%v", formatCoordinate(lat), formatCoordinate(lng))
}

// ComposeMessage builds the SMS body sent to every recipient of an SOS
func ComposeMessage(lat, lng float64) string {
	return fmt.Sprintf("🚨 EMERGENCY SOS! Location: %v", MapsLink(lat, lng))
}

func formatCoordinate(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
