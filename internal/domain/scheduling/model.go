package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. scheduled is the only non-terminal state.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// DefaultDurationMinutes is applied when a booking omits the duration.
const DefaultDurationMinutes = 30

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true,
	StatusCancelled: true, StatusNoShow: true,
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool { return validStatuses[s] }

// transitions is the lifecycle table. Terminal states have no successors,
// so completed/cancelled/no_show appointments are immutable.
var transitions = map[string][]string{
	StatusScheduled: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment is a patient's booking with a doctor at a hospital.
// Appointments are never physically deleted; cancellation is a status change.
type Appointment struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	HospitalID      uuid.UUID `json:"hospital_id"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Reason          *string   `json:"reason,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Populated on detail fetches only.
	PatientName  string `json:"patient_name,omitempty"`
	DoctorName   string `json:"doctor_name,omitempty"`
	HospitalName string `json:"hospital_name,omitempty"`
}

// End returns the appointment's end time.
func (a *Appointment) End() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Active reports whether the appointment still occupies its time window.
// Cancelled and no-show appointments free their slot.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}
