package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/medirate/medirate/internal/platform/apperr"
)

// TxFunc runs fn atomically. The server wires it to db.WithTx; tests pass the
// function through.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo Repository
	tx   TxFunc
}

func NewService(repo Repository, tx TxFunc) *Service {
	return &Service{repo: repo, tx: tx}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}
	return nil
}

// CreateDoctorReview inserts a review and recomputes the doctor's
// average_rating in the same transaction, so readers never observe a review
// without its aggregate.
func (s *Service) CreateDoctorReview(ctx context.Context, userID, doctorID uuid.UUID, rating int, comment *string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	exists, err := s.repo.DoctorExists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("doctor not found")
	}

	rv := &Review{UserID: userID, DoctorID: &doctorID, Rating: rating, Comment: comment}
	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, rv); err != nil {
			return err
		}
		return s.repo.RecomputeDoctorRating(ctx, doctorID)
	})
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// CreateHospitalReview is the hospital counterpart of CreateDoctorReview.
func (s *Service) CreateHospitalReview(ctx context.Context, userID, hospitalID uuid.UUID, rating int, comment *string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	exists, err := s.repo.HospitalExists(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("hospital not found")
	}

	rv := &Review{UserID: userID, HospitalID: &hospitalID, Rating: rating, Comment: comment}
	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, rv); err != nil {
			return err
		}
		return s.repo.RecomputeHospitalRating(ctx, hospitalID)
	})
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	return s.repo.ListByDoctor(ctx, doctorID, limit, offset)
}

func (s *Service) ListForHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	return s.repo.ListByHospital(ctx, hospitalID, limit, offset)
}

// ReconcileRatings is the nightly job body.
func (s *Service) ReconcileRatings(ctx context.Context) error {
	return s.repo.RecomputeAllRatings(ctx)
}
