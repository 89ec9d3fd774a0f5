package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m-kaif07/esport-tournament-website/models"
	"github.com/m-kaif07/esport-tournament-website/services"
)

type AdminHandler struct {
	tournamentService   *services.TournamentService
	registrationService *services.RegistrationService
}

func NewAdminHandler(
	tournamentService *services.TournamentService,
	registrationService *services.RegistrationService,
) *AdminHandler {
	return &AdminHandler{
		tournamentService:   tournamentService,
		registrationService: registrationService,
	}
}

// CreateTournament creates a tournament from a multipart form so banner and
// payment QR images can be uploaded in the same request.
func (h *AdminHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	startTime, err := parseStartTime(r.FormValue("start_time"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.CreateTournamentInput{
		Title:     r.FormValue("title"),
		Game:      r.FormValue("game"),
		Mode:      models.GameMode(r.FormValue("mode")),
		Fee:       formInt(r, "fee"),
		PrizePool: formInt(r, "prize_pool"),
		Prize1:    formInt(r, "prize1"),
		Prize2:    formInt(r, "prize2"),
		Prize3:    formInt(r, "prize3"),
		StartTime: startTime,
	}
	if m := r.FormValue("map"); m != "" {
		input.Map = &m
	}

	banner, bannerClose, err := formUpload(r, "banner")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer bannerClose()
	input.Banner = banner

	qr, qrClose, err := formUpload(r, "qr")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer qrClose()
	input.QR = qr

	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateTournament applies a partial update from a multipart form. Absent
// fields keep their current values.
func (h *AdminHandler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	var input services.UpdateTournamentInput
	if v := r.FormValue("title"); v != "" {
		input.Title = &v
	}
	if v := r.FormValue("game"); v != "" {
		input.Game = &v
	}
	if v := r.FormValue("map"); v != "" {
		input.Map = &v
	}
	if v := r.FormValue("mode"); v != "" {
		mode := models.GameMode(v)
		input.Mode = &mode
	}
	if v := r.FormValue("room_id"); v != "" {
		input.RoomID = &v
	}
	if v := r.FormValue("room_password"); v != "" {
		input.RoomPassword = &v
	}
	for field, dst := range map[string]**int{
		"fee":        &input.Fee,
		"prize_pool": &input.PrizePool,
		"prize1":     &input.Prize1,
		"prize2":     &input.Prize2,
		"prize3":     &input.Prize3,
	} {
		if v := r.FormValue(field); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				badRequestResponse(w, r, fmt.Errorf("invalid %s value", field))
				return
			}
			*dst = &n
		}
	}
	if v := r.FormValue("start_time"); v != "" {
		startTime, err := parseStartTime(v)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		input.StartTime = &startTime
	}

	banner, bannerClose, err := formUpload(r, "banner")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer bannerClose()
	input.Banner = banner

	qr, qrClose, err := formUpload(r, "qr")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer qrClose()
	input.QR = qr

	tournament, err := h.tournamentService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRegistrations returns a tournament's registrations for the admin
// review screen.
func (h *AdminHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registrations, err := h.registrationService.ListByTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registrations": registrations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ApproveRegistration confirms a registration's payment and its slot.
func (h *AdminHandler) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.Approve(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "registration approved"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RejectRegistration frees the registration's slot and removes the entry.
func (h *AdminHandler) RejectRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.Reject(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "registration rejected"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// OverwriteSlot forces a slot's status and occupant names.
func (h *AdminHandler) OverwriteSlot(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	slotNumber, err := getIDFromURL(r, "slotNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status       models.SlotStatus `json:"status"`
		Participants []string          `json:"participants"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	slot, err := h.tournamentService.OverwriteSlot(r.Context(), tournamentID, slotNumber, input.Status, input.Participants)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"slot": slot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AssignWinner records a rank 1-3 winner and credits the prize.
func (h *AdminHandler) AssignWinner(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		UserID int `json:"user_id"`
		Rank   int `json:"rank"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID <= 0 {
		badRequestResponse(w, r, errors.New("user_id is required"))
		return
	}

	result, err := h.tournamentService.AssignWinner(r.Context(), tournamentID, input.UserID, input.Rank)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"winner": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseStartTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("start_time is required")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("start_time must be RFC3339: %w", err)
	}
	return t, nil
}

func formInt(r *http.Request, field string) int {
	n, _ := strconv.Atoi(r.FormValue(field))
	return n
}

// formUpload extracts an optional file field. The returned close func is
// always safe to defer.
func formUpload(r *http.Request, field string) (*services.UploadFile, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, fmt.Errorf("failed to get %s file from form: %w", field, err)
	}
	return &services.UploadFile{
		Reader:      file,
		ContentType: header.Header.Get("Content-Type"),
	}, func() { file.Close() }, nil
}
