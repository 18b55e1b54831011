package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// A simple struct to capture the incoming event data
type PayrollEvent struct {
	EntryID       int64     `json:"entryId"`
	EmployeeID    string    `json:"employeeId"`
	Day           string    `json:"day"`
	WorkedMinutes int       `json:"workedMinutes"`
	BreakMinutes  int       `json:"breakMinutes"`
	ClockOutTime  time.Time `json:"clockOutTime"`
}

func payrollHandler(w http.ResponseWriter, r *http.Request) {
	var event PayrollEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	log.Printf("Received closed day for EmployeeID: %s, Worked: %d min, Break: %d min",
		event.EmployeeID, event.WorkedMinutes, event.BreakMinutes)
	w.WriteHeader(http.StatusOK)
}

func main() {
	http.HandleFunc("/", payrollHandler)
	log.Println("Payroll API mock server starting on port 8081...")
	log.Fatal(http.ListenAndServe(":8081", nil))
}
