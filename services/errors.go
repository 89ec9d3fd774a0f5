package services

import "errors"

// Errors shared across services and mapped to HTTP statuses in one place.
var (
	// Missing entities
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrSlotNotFound         = errors.New("slot not found")

	// Validation and business rules
	ErrValidationFailed     = errors.New("validation failed")
	ErrTeamSizeMismatch     = errors.New("participants count does not match the tournament mode")
	ErrInvalidParticipant   = errors.New("each participant requires a name and a numeric uid of at least 4 digits")
	ErrRegistrationClosed   = errors.New("tournament has already started, registration closed")
	ErrNoSlotToConfirm      = errors.New("registration has no reserved slot to confirm")
	ErrInvalidWinnerRank    = errors.New("winner rank must be 1, 2 or 3")
	ErrWinnerNotRegistered  = errors.New("user is not registered for this tournament")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters")
	ErrTournamentInvalidFee = errors.New("tournament fee must not be negative")

	// Conflicts: a client should retry or change its input
	ErrAlreadyRegistered = errors.New("already registered for this tournament")
	ErrSlotJustTaken     = errors.New("slot just got taken, please retry")
	ErrPaymentRefInUse   = errors.New("payment reference already used")
	ErrWinnerRankTaken   = errors.New("winner rank already assigned to another user")
	ErrEmailTaken        = errors.New("email address is already in use")

	// Capacity: the tournament genuinely cannot take the entry
	ErrTournamentFull   = errors.New("tournament is full")
	ErrNoSlotsAvailable = errors.New("no available slots")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")
)
