package models

import "time"

// SlotStatus matches the slot status values stored in the database.
type SlotStatus string

const (
	SlotEmpty     SlotStatus = "empty"
	SlotReserved  SlotStatus = "reserved"
	SlotConfirmed SlotStatus = "confirmed"
)

// Slot is one reservable team-sized unit of a tournament's capacity.
// Occupant name columns P1..P4 are all NULL exactly when Status is empty;
// otherwise exactly teamSize of them are set.
type Slot struct {
	ID           int        `json:"-" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	SlotNumber   int        `json:"slot_number" db:"slot_number"`
	Status       SlotStatus `json:"status" db:"status"`
	P1           *string    `json:"p1" db:"p1"`
	P2           *string    `json:"p2" db:"p2"`
	P3           *string    `json:"p3" db:"p3"`
	P4           *string    `json:"p4" db:"p4"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Occupants returns the non-empty occupant names in order.
func (s *Slot) Occupants() []string {
	names := make([]string, 0, 4)
	for _, p := range []*string{s.P1, s.P2, s.P3, s.P4} {
		if p != nil && *p != "" {
			names = append(names, *p)
		}
	}
	return names
}
