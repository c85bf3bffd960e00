package review

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Review, int, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Review, int, error)

	DoctorExists(ctx context.Context, id uuid.UUID) (bool, error)
	HospitalExists(ctx context.Context, id uuid.UUID) (bool, error)

	// Aggregate maintenance: recompute average_rating from the review rows.
	RecomputeDoctorRating(ctx context.Context, doctorID uuid.UUID) error
	RecomputeHospitalRating(ctx context.Context, hospitalID uuid.UUID) error
	RecomputeAllRatings(ctx context.Context) error
}
