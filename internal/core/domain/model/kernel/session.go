package kernel

import (
	"errors"

	"orderboard/internal/pkg/errs"
)

// ErrSessionIsNotConstructed is returned when a Session instance was not created
// through the NewSession factory method.
var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

// Session is the restaurant/location context a board instance operates in.
// It replaces ambient global selection state: a Session is constructed once at
// session start, injected into every component that needs it, and discarded at
// logout. All snapshot reads, event subscriptions and authoritative writes are
// scoped by it.
//
// Session is immutable; its identifiers are opaque strings owned by the order
// backend.
type Session struct {
	restaurantID   string
	restaurantName string
	locationID     string
	locationName   string

	guard ConstructorGuard
}

// NewSession creates a Session for the given restaurant and location.
// The ids are required; the display names are optional and only used in
// side-effect payloads (e.g. print jobs).
func NewSession(restaurantID, restaurantName, locationID, locationName string) (Session, error) {
	if restaurantID == "" {
		return Session{}, errs.NewValueIsRequiredError("restaurantId")
	}
	if locationID == "" {
		return Session{}, errs.NewValueIsRequiredError("locationId")
	}

	return Session{
		restaurantID:   restaurantID,
		restaurantName: restaurantName,
		locationID:     locationID,
		locationName:   locationName,
		guard:          NewConstructorGuard(),
	}, nil
}

// Validate ensures the session was created through the constructor.
func (s Session) Validate() error {
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// RestaurantID returns the opaque restaurant identifier.
func (s Session) RestaurantID() string {
	return s.restaurantID
}

// RestaurantName returns the restaurant display name, possibly empty.
func (s Session) RestaurantName() string {
	return s.restaurantName
}

// LocationID returns the opaque location identifier.
func (s Session) LocationID() string {
	return s.locationID
}

// LocationName returns the location display name, possibly empty.
func (s Session) LocationName() string {
	return s.locationName
}
