package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Appointment, int, error)

	// ListActiveByDoctorBetween returns the doctor's non-cancelled,
	// non-no-show appointments with a start time in [from, to).
	ListActiveByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*Appointment, error)

	// LockDoctor takes a row lock on the doctor for the duration of the
	// surrounding transaction, serializing concurrent bookings. NotFound
	// when the doctor does not exist.
	LockDoctor(ctx context.Context, doctorID uuid.UUID) error

	// DoctorHospital returns the hospital the doctor practices at.
	DoctorHospital(ctx context.Context, doctorID uuid.UUID) (uuid.UUID, error)

	// HospitalForAdmin returns the id of the hospital administered by the
	// given user, or nil when they administer none.
	HospitalForAdmin(ctx context.Context, adminID uuid.UUID) (*uuid.UUID, error)
}
