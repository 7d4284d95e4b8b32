package model

import "time"

// RegistrationStatus tracks where a registration sits in the review flow.
// Submissions always start out Pending; later statuses are set out-of-band
// by whoever maintains the registration sheet.
type RegistrationStatus string

const (
	StatusPending RegistrationStatus = "Pending"
)

// Registration is one submitted event registration. Records are append-only:
// there is no edit or delete path, and identity is row position in the store.
type Registration struct {
	SubmittedAt time.Time
	Name        string
	Class       string
	Section     string
	Item        string
	Contact     string // 10-digit phone, pre-filled from the session
	Address     string
	Bus         string // "Yes" / "No"
	Status      RegistrationStatus
}
