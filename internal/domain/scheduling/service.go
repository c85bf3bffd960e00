package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medirate/medirate/internal/platform/apperr"
	"github.com/medirate/medirate/internal/platform/auth"
)

// TxFunc runs fn atomically. The server wires it to db.WithTx; tests pass the
// function through.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo Repository
	tx   TxFunc

	workStart time.Duration
	workEnd   time.Duration
	slotLen   time.Duration
}

func NewService(repo Repository, tx TxFunc, workStart, workEnd, slotLen time.Duration) *Service {
	return &Service{repo: repo, tx: tx, workStart: workStart, workEnd: workEnd, slotLen: slotLen}
}

// BookRequest is the input to Book.
type BookRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id"`
	HospitalID      uuid.UUID `json:"hospital_id"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Reason          *string   `json:"reason"`
	Notes           *string   `json:"notes"`
}

func dayWindow(t time.Time) (time.Time, time.Time) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight, midnight.AddDate(0, 0, 1)
}

// Book creates a scheduled appointment for the patient. The conflict check
// and the insert run in one transaction holding a row lock on the doctor, so
// of two concurrent overlapping bookings at most one succeeds.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req BookRequest) (*Appointment, error) {
	if req.DoctorID == uuid.Nil {
		return nil, apperr.Validation("doctor_id is required")
	}
	if req.HospitalID == uuid.Nil {
		return nil, apperr.Validation("hospital_id is required")
	}
	if req.StartTime.IsZero() {
		return nil, apperr.Validation("start_time is required")
	}
	if req.DurationMinutes < 0 {
		return nil, apperr.Validation("duration_minutes must be positive")
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = DefaultDurationMinutes
	}

	hospitalID, err := s.repo.DoctorHospital(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if req.HospitalID != hospitalID {
		return nil, apperr.NotFound("no doctor %s at hospital %s", req.DoctorID, req.HospitalID)
	}

	appt := &Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		HospitalID:      hospitalID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          StatusScheduled,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockDoctor(ctx, req.DoctorID); err != nil {
			return err
		}
		from, to := dayWindow(req.StartTime)
		existing, err := s.repo.ListActiveByDoctorBetween(ctx, req.DoctorID, from, to)
		if err != nil {
			return err
		}
		if HasConflict(req.StartTime, time.Duration(req.DurationMinutes)*time.Minute, existing) {
			return apperr.Conflict("doctor is not available at the requested time")
		}
		return s.repo.Create(ctx, appt)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, appt.ID)
}

// canAccess reports whether the requester may see or manage the appointment:
// admins always, patients their own, hospital admins those of the hospital
// they administer.
func (s *Service) canAccess(ctx context.Context, requester auth.Identity, a *Appointment) (bool, error) {
	switch requester.Role {
	case auth.RoleAdmin:
		return true, nil
	case auth.RoleHospitalAdmin:
		hospitalID, err := s.repo.HospitalForAdmin(ctx, requester.UserID)
		if err != nil {
			return false, err
		}
		if hospitalID != nil && *hospitalID == a.HospitalID {
			return true, nil
		}
	}
	return a.PatientID == requester.UserID, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID, requester auth.Identity) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canAccess(ctx, requester, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("not allowed to view this appointment")
	}
	return a, nil
}

// UpdateStatus moves an appointment through its lifecycle. Only transitions
// out of scheduled are allowed; terminal states are immutable.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, requester auth.Identity, newStatus string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canAccess(ctx, requester, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("not allowed to modify this appointment")
	}
	// Existence and authorization are settled before the payload is judged,
	// so a bad status never leaks whether the appointment exists.
	if !ValidStatus(newStatus) {
		return nil, apperr.Validation("invalid status: %s", newStatus)
	}
	if !CanTransition(a.Status, newStatus) {
		return nil, apperr.Validation("cannot transition appointment from %s to %s", a.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// List returns the appointments visible to the requester: users see their
// own, admins see all, hospital admins see their hospital's. A hospital
// admin who administers no hospital sees an empty list.
func (s *Service) List(ctx context.Context, requester auth.Identity, limit, offset int) ([]*Appointment, int, error) {
	switch requester.Role {
	case auth.RoleAdmin:
		return s.repo.List(ctx, limit, offset)
	case auth.RoleHospitalAdmin:
		hospitalID, err := s.repo.HospitalForAdmin(ctx, requester.UserID)
		if err != nil {
			return nil, 0, err
		}
		if hospitalID == nil {
			return []*Appointment{}, 0, nil
		}
		return s.repo.ListByHospital(ctx, *hospitalID, limit, offset)
	default:
		return s.repo.ListByPatient(ctx, requester.UserID, limit, offset)
	}
}

// AvailableSlots returns the free slot starts for the doctor on the given
// day, per the configured working window.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]time.Time, error) {
	if _, err := s.repo.DoctorHospital(ctx, doctorID); err != nil {
		return nil, err
	}
	from, to := dayWindow(day)
	existing, err := s.repo.ListActiveByDoctorBetween(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	return ComputeAvailableSlots(existing, day, s.workStart, s.workEnd, s.slotLen), nil
}
