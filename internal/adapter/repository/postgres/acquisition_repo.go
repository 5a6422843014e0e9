package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/entity"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/pagination"
)

const acquisitionColumns = `
	id, ST_Y(center::geometry) AS lat, ST_X(center::geometry) AS lng,
	width_meters, height_meters, direction, zoom, start_version, created_at
`

const imageColumns = `
	id, acquisition_id, version, filename, storage_key, url, mime_type, size, width, height, created_at
`

type AcquisitionRepo struct {
	pool *pgxpool.Pool
}

func NewAcquisitionRepo(pool *pgxpool.Pool) *AcquisitionRepo {
	return &AcquisitionRepo{pool: pool}
}

func (r *AcquisitionRepo) Create(ctx context.Context, acq *entity.Acquisition) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO acquisitions (id, center, width_meters, height_meters, direction, zoom, start_version, created_at)
			VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, $4, $5, $6, $7, $8, $9)
		`,
			acq.ID, acq.Center.Longitude, acq.Center.Latitude,
			acq.WidthMeters, acq.HeightMeters, acq.Direction.String(),
			acq.Zoom, acq.StartVersion, acq.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting acquisition: %w", err)
		}

		batch := &pgx.Batch{}
		for _, img := range acq.Images {
			batch.Queue(`
				INSERT INTO acquisition_images (id, acquisition_id, version, filename, storage_key, url, mime_type, size, width, height, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			`,
				img.ID, acq.ID, img.Version, img.Filename, img.Key, img.URL,
				img.MimeType, img.Size, img.Width, img.Height, img.CreatedAt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting acquisition images: %w", err)
		}
		return nil
	})
}

func (r *AcquisitionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Acquisition, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+acquisitionColumns+` FROM acquisitions WHERE id = $1`, id)

	acq, err := scanAcquisition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAcquisitionNotFound
		}
		return nil, fmt.Errorf("querying acquisition: %w", err)
	}

	images, err := r.imagesFor(ctx, []uuid.UUID{acq.ID})
	if err != nil {
		return nil, err
	}
	acq.Images = images[acq.ID]

	return acq, nil
}

func (r *AcquisitionRepo) List(ctx context.Context, params pagination.Params) ([]entity.Acquisition, *pagination.Info, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM acquisitions`).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("counting acquisitions: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+acquisitionColumns+`
		FROM acquisitions
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`, params.Limit(), params.Offset())
	if err != nil {
		return nil, nil, fmt.Errorf("querying acquisitions: %w", err)
	}
	defer rows.Close()

	var (
		acquisitions []entity.Acquisition
		ids          []uuid.UUID
	)
	for rows.Next() {
		acq, err := scanAcquisition(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning acquisition: %w", err)
		}
		acquisitions = append(acquisitions, *acq)
		ids = append(ids, acq.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating acquisitions: %w", err)
	}

	if len(ids) > 0 {
		images, err := r.imagesFor(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for i := range acquisitions {
			acquisitions[i].Images = images[acquisitions[i].ID]
		}
	}

	pageInfo := pagination.NewInfo(params.Page, params.PerPage, total)
	return acquisitions, pageInfo, nil
}

func (r *AcquisitionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM acquisitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting acquisition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAcquisitionNotFound
	}
	return nil
}

// imagesFor loads images for the given acquisitions, newest version first.
func (r *AcquisitionRepo) imagesFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]entity.AcquisitionImage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+imageColumns+`
		FROM acquisition_images
		WHERE acquisition_id = ANY($1)
		ORDER BY acquisition_id, version DESC
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying acquisition images: %w", err)
	}
	defer rows.Close()

	images := make(map[uuid.UUID][]entity.AcquisitionImage, len(ids))
	for rows.Next() {
		var img entity.AcquisitionImage
		if err := rows.Scan(
			&img.ID, &img.AcquisitionID, &img.Version, &img.Filename, &img.Key, &img.URL,
			&img.MimeType, &img.Size, &img.Width, &img.Height, &img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning acquisition image: %w", err)
		}
		images[img.AcquisitionID] = append(images[img.AcquisitionID], img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating acquisition images: %w", err)
	}
	return images, nil
}

func scanAcquisition(row pgx.Row) (*entity.Acquisition, error) {
	var (
		acq       entity.Acquisition
		lat, lng  float64
		direction string
	)
	if err := row.Scan(
		&acq.ID, &lat, &lng,
		&acq.WidthMeters, &acq.HeightMeters, &direction,
		&acq.Zoom, &acq.StartVersion, &acq.CreatedAt,
	); err != nil {
		return nil, err
	}

	dir, err := valueobject.ParseViewDirection(direction)
	if err != nil {
		return nil, fmt.Errorf("stored direction %q: %w", direction, err)
	}
	acq.Direction = dir
	acq.Center = valueobject.GeoPoint{Latitude: lat, Longitude: lng}

	return &acq, nil
}
