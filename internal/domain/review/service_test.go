package review

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medirate/medirate/internal/platform/apperr"
)

type mockRepo struct {
	reviews   []*Review
	doctors   map[uuid.UUID]float64
	hospitals map[uuid.UUID]float64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		doctors:   make(map[uuid.UUID]float64),
		hospitals: make(map[uuid.UUID]float64),
	}
}

func (m *mockRepo) Create(_ context.Context, rv *Review) error {
	rv.ID = uuid.New()
	rv.CreatedAt = time.Now()
	m.reviews = append(m.reviews, rv)
	return nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	var items []*Review
	for _, rv := range m.reviews {
		if rv.DoctorID != nil && *rv.DoctorID == doctorID {
			items = append(items, rv)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) ListByHospital(_ context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	var items []*Review
	for _, rv := range m.reviews {
		if rv.HospitalID != nil && *rv.HospitalID == hospitalID {
			items = append(items, rv)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) DoctorExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.doctors[id]
	return ok, nil
}

func (m *mockRepo) HospitalExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.hospitals[id]
	return ok, nil
}

func (m *mockRepo) RecomputeDoctorRating(_ context.Context, doctorID uuid.UUID) error {
	var sum, n int
	for _, rv := range m.reviews {
		if rv.DoctorID != nil && *rv.DoctorID == doctorID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		m.doctors[doctorID] = 0
		return nil
	}
	m.doctors[doctorID] = float64(sum) / float64(n)
	return nil
}

func (m *mockRepo) RecomputeHospitalRating(_ context.Context, hospitalID uuid.UUID) error {
	var sum, n int
	for _, rv := range m.reviews {
		if rv.HospitalID != nil && *rv.HospitalID == hospitalID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		m.hospitals[hospitalID] = 0
		return nil
	}
	m.hospitals[hospitalID] = float64(sum) / float64(n)
	return nil
}

func (m *mockRepo) RecomputeAllRatings(ctx context.Context) error {
	for id := range m.doctors {
		if err := m.RecomputeDoctorRating(ctx, id); err != nil {
			return err
		}
	}
	for id := range m.hospitals {
		if err := m.RecomputeHospitalRating(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, passthroughTx), repo
}

func TestCreateDoctorReview_UpdatesAggregate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doctorID := uuid.New()
	repo.doctors[doctorID] = 0

	for _, rating := range []int{5, 2} {
		if _, err := svc.CreateDoctorReview(ctx, uuid.New(), doctorID, rating, nil); err != nil {
			t.Fatalf("CreateDoctorReview(%d): %v", rating, err)
		}
	}

	if got := repo.doctors[doctorID]; got != 3.5 {
		t.Errorf("average rating = %f, want 3.5", got)
	}
}

func TestCreateDoctorReview_RatingBounds(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doctorID := uuid.New()
	repo.doctors[doctorID] = 0

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.CreateDoctorReview(ctx, uuid.New(), doctorID, rating, nil); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("rating %d: got %v, want validation error", rating, err)
		}
	}
}

func TestCreateDoctorReview_UnknownDoctor(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.CreateDoctorReview(context.Background(), uuid.New(), uuid.New(), 4, nil); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestCreateHospitalReview_UpdatesAggregate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	hospitalID := uuid.New()
	repo.hospitals[hospitalID] = 0

	comment := "clean and fast"
	rv, err := svc.CreateHospitalReview(ctx, uuid.New(), hospitalID, 4, &comment)
	if err != nil {
		t.Fatalf("CreateHospitalReview: %v", err)
	}
	if rv.HospitalID == nil || *rv.HospitalID != hospitalID {
		t.Error("review not bound to the hospital")
	}
	if rv.DoctorID != nil {
		t.Error("hospital review must not reference a doctor")
	}
	if got := repo.hospitals[hospitalID]; got != 4 {
		t.Errorf("average rating = %f, want 4", got)
	}
}

func TestReconcileRatings(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doctorID := uuid.New()
	repo.doctors[doctorID] = 0
	if _, err := svc.CreateDoctorReview(ctx, uuid.New(), doctorID, 5, nil); err != nil {
		t.Fatal(err)
	}

	// Simulate drift, then reconcile.
	repo.doctors[doctorID] = 1.0
	if err := svc.ReconcileRatings(ctx); err != nil {
		t.Fatalf("ReconcileRatings: %v", err)
	}
	if got := repo.doctors[doctorID]; got != 5 {
		t.Errorf("average rating after reconcile = %f, want 5", got)
	}
}
