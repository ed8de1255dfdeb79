package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateSOSEvent(t *testing.T) {
	InitializeTestDb()

	before := time.Now()
	event, err := CreateSOSEvent(40.0, -74.0)
	assert.Nil(t, err)
	assert.Equal(t, 40.0, event.Lat)
	assert.Equal(t, -74.0, event.Lng)

	// Event time is stamped server-side on insert
	assert.False(t, event.CreatedAt.Before(before), "Event time should be the persistence time")

	count, err := CountSOSEvents()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), count, "Exactly one event should be persisted per submission")
}

func TestCreateSOSEventAcceptsZeroCoordinates(t *testing.T) {
	InitializeTestDb()

	// 0,0 is a legal location (gulf of guinea), not a missing one
	event, err := CreateSOSEvent(0, 0)
	assert.Nil(t, err)
	assert.Equal(t, 0.0, event.Lat)
	assert.Equal(t, 0.0, event.Lng)
}

func TestCreateSOSEventRejectsNonFiniteCoordinates(t *testing.T) {
	InitializeTestDb()

	_, err := CreateSOSEvent(math.NaN(), -74.0)
	assert.ErrorIs(t, err, ErrCoordinatesRequired)

	_, err = CreateSOSEvent(40.0, math.Inf(1))
	assert.ErrorIs(t, err, ErrCoordinatesRequired)

	count, err := CountSOSEvents()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), count)
}
