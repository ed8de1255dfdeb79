package models

// Store adapts the package-level db functions to the interfaces the
// sos package expects, so the orchestrator never touches gorm directly
// and tests can swap in fakes.
type Store struct{}

func (Store) CreateSOSEvent(lat, lng float64) (*SOSEvent, error) {
	return CreateSOSEvent(lat, lng)
}

func (Store) AllContacts() ([]Contact, error) {
	return AllContacts()
}
