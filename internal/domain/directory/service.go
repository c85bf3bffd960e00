package directory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/medirate/medirate/internal/platform/apperr"
)

type Service struct {
	hospitals HospitalRepository
	doctors   DoctorRepository
}

func NewService(hospitals HospitalRepository, doctors DoctorRepository) *Service {
	return &Service{hospitals: hospitals, doctors: doctors}
}

// -- Hospital --

func (s *Service) CreateHospital(ctx context.Context, h *Hospital) error {
	if h.Name == "" {
		return apperr.Validation("name is required")
	}
	if h.Address == "" {
		return apperr.Validation("address is required")
	}
	if (h.Latitude == nil) != (h.Longitude == nil) {
		return apperr.Validation("latitude and longitude must be set together")
	}
	return s.hospitals.Create(ctx, h)
}

// GetHospital returns the hospital with its doctors populated.
func (s *Service) GetHospital(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	h, err := s.hospitals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctors.ListByHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Doctors = doctors
	return h, nil
}

func (s *Service) UpdateHospital(ctx context.Context, h *Hospital) error {
	if h.Name == "" {
		return apperr.Validation("name is required")
	}
	if (h.Latitude == nil) != (h.Longitude == nil) {
		return apperr.Validation("latitude and longitude must be set together")
	}
	return s.hospitals.Update(ctx, h)
}

func (s *Service) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	return s.hospitals.Delete(ctx, id)
}

func (s *Service) ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	return s.hospitals.List(ctx, limit, offset)
}

// HospitalDistance pairs a hospital with its distance from a search origin.
type HospitalDistance struct {
	*Hospital
	DistanceKm float64 `json:"distance_km"`
}

// NearbyHospitals returns geolocated hospitals within radiusKm of the given
// point, closest first. Hospitals without coordinates are never matched.
func (s *Service) NearbyHospitals(ctx context.Context, lat, lng, radiusKm float64) ([]*HospitalDistance, error) {
	if lat < -90 || lat > 90 {
		return nil, apperr.Validation("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return nil, apperr.Validation("longitude must be between -180 and 180")
	}
	if radiusKm <= 0 {
		return nil, apperr.Validation("radius_km must be positive")
	}

	hospitals, err := s.hospitals.ListGeolocated(ctx)
	if err != nil {
		return nil, err
	}

	matches := []*HospitalDistance{}
	for _, h := range hospitals {
		d := DistanceKm(lat, lng, *h.Latitude, *h.Longitude)
		if d <= radiusKm {
			matches = append(matches, &HospitalDistance{Hospital: h, DistanceKm: d})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].DistanceKm < matches[j].DistanceKm })
	return matches, nil
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return apperr.Validation("name is required")
	}
	if d.Specialty == "" {
		return apperr.Validation("specialty is required")
	}
	if d.HospitalID == uuid.Nil {
		return apperr.Validation("hospital_id is required")
	}
	if _, err := s.hospitals.GetByID(ctx, d.HospitalID); err != nil {
		return err
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return apperr.Validation("name is required")
	}
	if d.HospitalID != uuid.Nil {
		if _, err := s.hospitals.GetByID(ctx, d.HospitalID); err != nil {
			return err
		}
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, specialty string, hospitalID *uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, specialty, hospitalID, limit, offset)
}
