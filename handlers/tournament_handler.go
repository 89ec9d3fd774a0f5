package handlers

import (
	"net/http"

	"github.com/m-kaif07/esport-tournament-website/middleware"
	"github.com/m-kaif07/esport-tournament-website/services"
)

type TournamentHandler struct {
	tournamentService   *services.TournamentService
	registrationService *services.RegistrationService
}

func NewTournamentHandler(
	tournamentService *services.TournamentService,
	registrationService *services.RegistrationService,
) *TournamentHandler {
	return &TournamentHandler{
		tournamentService:   tournamentService,
		registrationService: registrationService,
	}
}

// List returns all tournaments with fill statistics. Supports an optional
// ?game= filter.
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	var game *string
	if g := r.URL.Query().Get("game"); g != "" {
		game = &g
	}

	tournaments, err := h.tournamentService.List(r.Context(), game)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get returns the detailed view of one tournament. Room credentials appear
// only for registered users close to the start time.
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	detail, err := h.tournamentService.GetByID(r.Context(), id, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": detail}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Slots returns the slot board of a tournament.
func (h *TournamentHandler) Slots(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	slots, err := h.tournamentService.Slots(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"slots": slots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Register books a slot for the authenticated user's team.
func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.registrationService.Register(r.Context(), userID, tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MyRegistrations returns the authenticated user's registrations with
// tournament details.
func (h *TournamentHandler) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	registrations, err := h.registrationService.ListByUser(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registrations": registrations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
