package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"punchclock.service/internal/api/handler"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(service handler.TimesheetAPI) *mux.Router {

	timesheetHandler := handler.TimesheetHandler{
		Service: service,
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/punches", timesheetHandler.RegisterPunch).Methods(http.MethodPost)
	api.HandleFunc("/employees/{employeeId}/status", timesheetHandler.DayStatus).Methods(http.MethodGet)
	api.HandleFunc("/employees/{employeeId}/punches", timesheetHandler.ListPunches).Methods(http.MethodGet)
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	return r
}
