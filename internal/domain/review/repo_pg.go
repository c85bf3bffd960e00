package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medirate/medirate/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const reviewCols = `r.id, r.user_id, r.doctor_id, r.hospital_id, r.rating, r.comment, r.created_at, u.name`

func (r *repoPG) scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.DoctorID, &rv.HospitalID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UserName)
	return &rv, err
}

func (r *repoPG) Create(ctx context.Context, rv *Review) error {
	rv.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO reviews (id, user_id, doctor_id, hospital_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		rv.ID, rv.UserID, rv.DoctorID, rv.HospitalID, rv.Rating, rv.Comment).
		Scan(&rv.CreatedAt)
}

func (r *repoPG) list(ctx context.Context, where string, id uuid.UUID, limit, offset int) ([]*Review, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews r WHERE `+where, id).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+reviewCols+`
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE `+where+` ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`,
		id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Review
	for rows.Next() {
		rv, err := r.scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rv)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	return r.list(ctx, `r.doctor_id = $1`, doctorID, limit, offset)
}

func (r *repoPG) ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	return r.list(ctx, `r.hospital_id = $1`, hospitalID, limit, offset)
}

func (r *repoPG) DoctorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM doctors WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) HospitalExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM hospitals WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) RecomputeDoctorRating(ctx context.Context, doctorID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET average_rating = COALESCE(
			(SELECT AVG(rating) FROM reviews WHERE doctor_id = $1), 0), updated_at = NOW()
		WHERE id = $1`, doctorID)
	return err
}

func (r *repoPG) RecomputeHospitalRating(ctx context.Context, hospitalID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE hospitals SET average_rating = COALESCE(
			(SELECT AVG(rating) FROM reviews WHERE hospital_id = $1), 0), updated_at = NOW()
		WHERE id = $1`, hospitalID)
	return err
}

// RecomputeAllRatings reconciles every maintained aggregate against the
// review rows. Run nightly; repairs drift from failed partial writes.
func (r *repoPG) RecomputeAllRatings(ctx context.Context) error {
	if _, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors d SET average_rating = COALESCE(
			(SELECT AVG(rating) FROM reviews WHERE doctor_id = d.id), 0)`); err != nil {
		return err
	}
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE hospitals h SET average_rating = COALESCE(
			(SELECT AVG(rating) FROM reviews WHERE hospital_id = h.id), 0)`)
	return err
}
