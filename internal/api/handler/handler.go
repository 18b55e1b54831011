package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"punchclock.service/internal/core"
	"punchclock.service/internal/core/model"
)

// TimesheetAPI is the slice of the application service the HTTP layer
// needs.
type TimesheetAPI interface {
	RegisterPunch(ctx context.Context, req core.PunchRequest) (*model.TimeEntry, error)
	DayStatus(ctx context.Context, employeeID, day string) (*core.DaySnapshot, error)
}

type TimesheetHandler struct {
	Service TimesheetAPI
}

type punchRequestBody struct {
	EmployeeID string          `json:"employeeId"`
	Type       model.EventType `json:"type"`
	Latitude   *float64        `json:"latitude,omitempty"`
	Longitude  *float64        `json:"longitude,omitempty"`
	SelfieURL  *string         `json:"selfieUrl,omitempty"`
}

// RegisterPunch records one punch. The two policy gates surface as
// distinct statuses so the client can tell a missing location apart
// from an out-of-order action.
func (h *TimesheetHandler) RegisterPunch(w http.ResponseWriter, r *http.Request) {
	var req punchRequestBody

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.EmployeeID == "" {
		http.Error(w, "EmployeeID is required", http.StatusBadRequest)
		return
	}

	punch := core.PunchRequest{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		SelfieURL:  req.SelfieURL,
	}
	if req.Latitude != nil && req.Longitude != nil {
		punch.Coordinates = &core.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	entry, err := h.Service.RegisterPunch(r.Context(), punch)
	if err != nil {
		writePunchError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// DayStatus returns the derived work status for an employee day.
// ?date=YYYY-MM-DD selects a day other than today.
func (h *TimesheetHandler) DayStatus(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]
	day := r.URL.Query().Get("date")

	snapshot, err := h.Service.DayStatus(r.Context(), employeeID, day)
	if err != nil {
		http.Error(w, "Service error deriving status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// ListPunches returns the raw entries for an employee day.
func (h *TimesheetHandler) ListPunches(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]
	day := r.URL.Query().Get("date")

	snapshot, err := h.Service.DayStatus(r.Context(), employeeID, day)
	if err != nil {
		http.Error(w, "Service error loading punches", http.StatusInternalServerError)
		return
	}

	entries := snapshot.Entries
	if entries == nil {
		entries = []model.TimeEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"day":     snapshot.Day,
		"entries": entries,
	})
}

func writePunchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnknownEventType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrLocationRequired):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrActionNotAllowed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "Service error recording punch", http.StatusInternalServerError)
	}
}
