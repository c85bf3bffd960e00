package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is an immutable 1-5 rating of either a doctor or a hospital.
// Exactly one of DoctorID/HospitalID is set.
type Review struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	DoctorID   *uuid.UUID `json:"doctor_id,omitempty"`
	HospitalID *uuid.UUID `json:"hospital_id,omitempty"`
	Rating     int        `json:"rating"`
	Comment    *string    `json:"comment,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// Populated on list fetches only.
	UserName string `json:"user_name,omitempty"`
}
