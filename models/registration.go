package models

import "time"

// Participant is one roster entry: the in-game name plus the numeric
// in-game UID supplied by the registrant.
type Participant struct {
	Name string `json:"name"`
	UID  string `json:"uid"`
}

// Registration is one team's entry into one tournament. A user may hold at
// most one registration per tournament; SlotNumber is set in the same
// transaction that reserves the slot. UTR is the payment-transaction
// reference and is unique across registrations when non-empty.
type Registration struct {
	ID           int           `json:"id" db:"id"`
	UserID       int           `json:"user_id" db:"user_id"`
	TournamentID int           `json:"tournament_id" db:"tournament_id"`
	SlotNumber   *int          `json:"slot_number" db:"slot_number"`
	TeamSize     int           `json:"team_size" db:"team_size"`
	Roster       []Participant `json:"roster" db:"-"`
	Phone        *string       `json:"phone,omitempty" db:"phone"`
	UTR          *string       `json:"utr,omitempty" db:"utr"`
	Paid         bool          `json:"paid" db:"paid"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`

	// Optional nested entities populated by joined queries.
	User       *User       `json:"user,omitempty" db:"-"`
	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
