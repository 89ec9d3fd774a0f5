package models

import "time"

// GameMode determines the team size per slot.
type GameMode string

const (
	ModeSolo  GameMode = "Solo"
	ModeDuo   GameMode = "Duo"
	ModeSquad GameMode = "Squad"
)

const (
	GamePUBG     = "PUBG"
	GameFreeFire = "Free Fire"
)

// Tournament is a scheduled match event. Its slots are seeded in bulk
// (1..TotalSlots) in the same transaction that creates the tournament.
type Tournament struct {
	ID           int       `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Game         string    `json:"game" db:"game"`
	Map          *string   `json:"map,omitempty" db:"map"`
	Mode         GameMode  `json:"mode" db:"mode"`
	TotalSlots   int       `json:"total_slots" db:"total_slots"`
	Fee          int       `json:"fee" db:"fee"`
	PrizePool    int       `json:"prize_pool" db:"prize_pool"`
	Prize1       int       `json:"prize1" db:"prize1"`
	Prize2       int       `json:"prize2" db:"prize2"`
	Prize3       int       `json:"prize3" db:"prize3"`
	Winner1ID    *int      `json:"winner1_id,omitempty" db:"winner1_id"`
	Winner2ID    *int      `json:"winner2_id,omitempty" db:"winner2_id"`
	Winner3ID    *int      `json:"winner3_id,omitempty" db:"winner3_id"`
	RoomID       *string   `json:"-" db:"room_id"`
	RoomPassword *string   `json:"-" db:"room_password"`
	BannerKey    *string   `json:"-" db:"banner_key"`
	QRKey        *string   `json:"-" db:"qr_key"`
	BannerURL    *string   `json:"banner_url,omitempty" db:"-"`
	QRURL        *string   `json:"qr_url,omitempty" db:"-"`
	StartTime    time.Time `json:"start_time" db:"start_time"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RegistrationOpen reports whether the tournament still accepts new
// registrations. Registration closes exactly at the start time.
func (t *Tournament) RegistrationOpen(now time.Time) bool {
	return now.Before(t.StartTime)
}
