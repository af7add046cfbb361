package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
)

var ErrGalleryRequestNotFound = errors.New("gallery access request not found")

type GalleryRepo struct {
	pool *pgxpool.Pool
}

func NewGalleryRepo(pool *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{pool: pool}
}

// UpsertRequest creates or refreshes the unique (requester, owner) request.
// A previously declined request flips back to pending; pending and granted
// rows are left untouched.
func (r *GalleryRepo) UpsertRequest(ctx context.Context, requesterID, ownerID int64) (model.GalleryAccessRequest, error) {
	if r.pool == nil {
		return model.GalleryAccessRequest{}, fmt.Errorf("postgres pool is nil")
	}
	if requesterID <= 0 || ownerID <= 0 || requesterID == ownerID {
		return model.GalleryAccessRequest{}, fmt.Errorf("invalid gallery request pair")
	}

	var req model.GalleryAccessRequest
	err := r.pool.QueryRow(ctx, `
INSERT INTO gallery_access_requests (requester_id, owner_id, status, requested_at)
VALUES ($1, $2, 'pending', NOW())
ON CONFLICT (requester_id, owner_id) DO UPDATE SET
	status = CASE
		WHEN gallery_access_requests.status = 'declined' THEN 'pending'
		ELSE gallery_access_requests.status
	END,
	requested_at = CASE
		WHEN gallery_access_requests.status = 'declined' THEN NOW()
		ELSE gallery_access_requests.requested_at
	END,
	decided_at = CASE
		WHEN gallery_access_requests.status = 'declined' THEN NULL
		ELSE gallery_access_requests.decided_at
	END
RETURNING id, requester_id, owner_id, status, requested_at, decided_at
`, requesterID, ownerID).Scan(
		&req.ID,
		&req.RequesterID,
		&req.OwnerID,
		&req.Status,
		&req.RequestedAt,
		&req.DecidedAt,
	)
	if err != nil {
		return model.GalleryAccessRequest{}, fmt.Errorf("upsert gallery request: %w", err)
	}

	return req, nil
}

// Decide resolves a pending request owned by ownerID.
func (r *GalleryRepo) Decide(ctx context.Context, id, ownerID int64, status enums.AccessStatus) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 || ownerID <= 0 {
		return fmt.Errorf("invalid gallery decision payload")
	}
	if status != enums.AccessStatusGranted && status != enums.AccessStatusDeclined {
		return fmt.Errorf("invalid gallery decision status %q", status)
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE gallery_access_requests
SET status = $3, decided_at = NOW()
WHERE id = $1 AND owner_id = $2 AND status = 'pending'
`, id, ownerID, string(status))
	if err != nil {
		return fmt.Errorf("decide gallery request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGalleryRequestNotFound
	}

	return nil
}

func (r *GalleryRepo) GetStatus(ctx context.Context, requesterID, ownerID int64) (enums.AccessStatus, error) {
	if r.pool == nil {
		return "", ErrGalleryRequestNotFound
	}
	if requesterID <= 0 || ownerID <= 0 {
		return "", fmt.Errorf("invalid gallery status payload")
	}

	var status enums.AccessStatus
	err := r.pool.QueryRow(ctx, `
SELECT status
FROM gallery_access_requests
WHERE requester_id = $1 AND owner_id = $2
`, requesterID, ownerID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrGalleryRequestNotFound
		}
		return "", fmt.Errorf("get gallery request status: %w", err)
	}

	return status, nil
}

func (r *GalleryRepo) ListPendingForOwner(ctx context.Context, ownerID int64) ([]model.GalleryAccessRequest, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("invalid owner id")
	}
	if r.pool == nil {
		return []model.GalleryAccessRequest{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, requester_id, owner_id, status, requested_at, decided_at
FROM gallery_access_requests
WHERE owner_id = $1 AND status = 'pending'
ORDER BY requested_at ASC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pending gallery requests: %w", err)
	}
	defer rows.Close()

	reqs := make([]model.GalleryAccessRequest, 0)
	for rows.Next() {
		var req model.GalleryAccessRequest
		if err := rows.Scan(
			&req.ID,
			&req.RequesterID,
			&req.OwnerID,
			&req.Status,
			&req.RequestedAt,
			&req.DecidedAt,
		); err != nil {
			return nil, fmt.Errorf("scan gallery request: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery requests: %w", err)
	}

	return reqs, nil
}

func (r *GalleryRepo) AddImage(ctx context.Context, ownerID int64, objectKey string, isPrivate bool) (model.GalleryImage, error) {
	if r.pool == nil {
		return model.GalleryImage{}, fmt.Errorf("postgres pool is nil")
	}
	if ownerID <= 0 || objectKey == "" {
		return model.GalleryImage{}, fmt.Errorf("invalid gallery image payload")
	}

	var img model.GalleryImage
	err := r.pool.QueryRow(ctx, `
INSERT INTO gallery_images (owner_id, object_key, is_private, uploaded_at)
VALUES ($1, $2, $3, NOW())
RETURNING id, owner_id, object_key, is_private, uploaded_at
`, ownerID, objectKey, isPrivate).Scan(&img.ID, &img.OwnerID, &img.ObjectKey, &img.IsPrivate, &img.UploadedAt)
	if err != nil {
		return model.GalleryImage{}, fmt.Errorf("insert gallery image: %w", err)
	}

	return img, nil
}

func (r *GalleryRepo) ListImagesForOwner(ctx context.Context, ownerID int64, includePrivate bool) ([]model.GalleryImage, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("invalid owner id")
	}
	if r.pool == nil {
		return []model.GalleryImage{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, object_key, is_private, uploaded_at
FROM gallery_images
WHERE owner_id = $1 AND ($2::boolean = TRUE OR is_private = FALSE)
ORDER BY uploaded_at ASC, id ASC
`, ownerID, includePrivate)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	defer rows.Close()

	imgs := make([]model.GalleryImage, 0)
	for rows.Next() {
		var img model.GalleryImage
		if err := rows.Scan(&img.ID, &img.OwnerID, &img.ObjectKey, &img.IsPrivate, &img.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		imgs = append(imgs, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery images: %w", err)
	}

	return imgs, nil
}
