package model

import (
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
)

// GalleryAccessRequest is unique per (requester, owner) pair.
type GalleryAccessRequest struct {
	ID          int64              `json:"id"`
	RequesterID int64              `json:"requester_id"`
	OwnerID     int64              `json:"owner_id"`
	Status      enums.AccessStatus `json:"status"`
	RequestedAt time.Time          `json:"requested_at"`
	DecidedAt   *time.Time         `json:"decided_at"`
}

type GalleryImage struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	ObjectKey  string    `json:"object_key"`
	SignedURL  string    `json:"signed_url"`
	IsPrivate  bool      `json:"is_private"`
	UploadedAt time.Time `json:"uploaded_at"`
}
