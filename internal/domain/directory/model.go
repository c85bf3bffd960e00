package directory

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Hospital is a care facility in the directory. AverageRating is a maintained
// aggregate over the hospital's reviews, recomputed whenever a review is
// inserted and reconciled nightly.
type Hospital struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	AverageRating float64    `json:"average_rating"`
	AdminID       *uuid.UUID `json:"admin_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Populated on detail fetches only.
	Doctors []*Doctor `json:"doctors,omitempty"`
}

// Doctor practices at exactly one hospital.
type Doctor struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Specialty     string    `json:"specialty"`
	AverageRating float64   `json:"average_rating"`
	HospitalID    uuid.UUID `json:"hospital_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Populated on detail fetches only.
	HospitalName string `json:"hospital_name,omitempty"`
}

// Geolocated reports whether the hospital has a usable coordinate pair.
func (h *Hospital) Geolocated() bool {
	return h.Latitude != nil && h.Longitude != nil
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinates
// using the haversine formula.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
