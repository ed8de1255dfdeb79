package models

import (
	"math"

	"github.com/pkg/errors"
)

var ErrCoordinatesRequired = errors.New("sos event requires finite lat & lng coordinates")

// SOSEvent is an append-only record of one SOS submission. There is
// deliberately no update or delete - events are immutable once written,
// and CreatedAt is the event time (stamped server-side on insert).
type SOSEvent struct {
	BaseModel
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func CreateSOSEvent(lat, lng float64) (*SOSEvent, error) {
	if !isFinite(lat) || !isFinite(lng) {
		return nil, ErrCoordinatesRequired
	}

	event := SOSEvent{Lat: lat, Lng: lng}
	if err := db.Create(&event).Error; err != nil {
		return nil, errors.Wrap(err, "failed to persist sos event")
	}

	return &event, nil
}

func CountSOSEvents() (int64, error) {
	var count int64

	err := db.Model(&SOSEvent{}).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count sos events")
	}

	return count, nil
}

func LastSOSEvent() (*SOSEvent, error) {
	event := SOSEvent{}

	err := db.Last(&event).Error
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func isFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
