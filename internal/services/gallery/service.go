package gallery

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrRequestNotFound = errors.New("gallery access request not found")
	ErrOwnerNotFound   = errors.New("gallery owner not found")
)

type RequestStore interface {
	UpsertRequest(ctx context.Context, requesterID, ownerID int64) (model.GalleryAccessRequest, error)
	Decide(ctx context.Context, id, ownerID int64, status enums.AccessStatus) error
	GetStatus(ctx context.Context, requesterID, ownerID int64) (enums.AccessStatus, error)
	ListPendingForOwner(ctx context.Context, ownerID int64) ([]model.GalleryAccessRequest, error)
	AddImage(ctx context.Context, ownerID int64, objectKey string, isPrivate bool) (model.GalleryImage, error)
	ListImagesForOwner(ctx context.Context, ownerID int64, includePrivate bool) ([]model.GalleryImage, error)
}

type UserStore interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

type ObjectSigner interface {
	SignedGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
	SignedPutURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
}

type Config struct {
	SignedURLTTL time.Duration
}

type Service struct {
	store  RequestStore
	users  UserStore
	signer ObjectSigner
	cfg    Config
}

// PendingUpload carries the presigned target for a new gallery image.
type PendingUpload struct {
	Image     model.GalleryImage `json:"image"`
	UploadURL string             `json:"upload_url"`
}

func NewService(store RequestStore, users UserStore, signer ObjectSigner, cfg Config) *Service {
	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = 5 * time.Minute
	}

	return &Service{
		store:  store,
		users:  users,
		signer: signer,
		cfg:    cfg,
	}
}

// RequestAccess files (or refreshes) the requester's access request for the
// owner's private gallery. A declined request may be re-filed; pending and
// granted requests are returned unchanged.
func (s *Service) RequestAccess(ctx context.Context, requesterID, ownerID int64) (model.GalleryAccessRequest, error) {
	if requesterID <= 0 || ownerID <= 0 {
		return model.GalleryAccessRequest{}, fmt.Errorf("invalid request pair: %w", ErrValidation)
	}
	if requesterID == ownerID {
		return model.GalleryAccessRequest{}, fmt.Errorf("own gallery needs no request: %w", ErrValidation)
	}

	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.GalleryAccessRequest{}, ErrOwnerNotFound
		}
		return model.GalleryAccessRequest{}, fmt.Errorf("resolve gallery owner: %w", err)
	}

	req, err := s.store.UpsertRequest(ctx, requesterID, ownerID)
	if err != nil {
		return model.GalleryAccessRequest{}, fmt.Errorf("upsert access request: %w", err)
	}

	return req, nil
}

func (s *Service) Grant(ctx context.Context, ownerID, requestID int64) error {
	return s.decide(ctx, ownerID, requestID, enums.AccessStatusGranted)
}

func (s *Service) Decline(ctx context.Context, ownerID, requestID int64) error {
	return s.decide(ctx, ownerID, requestID, enums.AccessStatusDeclined)
}

func (s *Service) ListPending(ctx context.Context, ownerID int64) ([]model.GalleryAccessRequest, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("invalid owner id: %w", ErrValidation)
	}

	reqs, err := s.store.ListPendingForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}

	return reqs, nil
}

// BeginUpload registers a new image row and returns a presigned PUT target
// for the binary. Object keys are namespaced per owner.
func (s *Service) BeginUpload(ctx context.Context, ownerID int64, isPrivate bool) (PendingUpload, error) {
	if ownerID <= 0 {
		return PendingUpload{}, fmt.Errorf("invalid owner id: %w", ErrValidation)
	}
	if s.signer == nil {
		return PendingUpload{}, fmt.Errorf("object signer is nil")
	}

	objectKey := path.Join("gallery", fmt.Sprintf("%d", ownerID), uuid.NewString())
	img, err := s.store.AddImage(ctx, ownerID, objectKey, isPrivate)
	if err != nil {
		return PendingUpload{}, fmt.Errorf("register gallery image: %w", err)
	}

	uploadURL, err := s.signer.SignedPutURL(ctx, objectKey, s.cfg.SignedURLTTL)
	if err != nil {
		return PendingUpload{}, fmt.Errorf("sign upload url: %w", err)
	}

	return PendingUpload{Image: img, UploadURL: uploadURL}, nil
}

// ViewGallery returns the owner's images with presigned GET URLs. Private
// images are included only for the owner and for requesters whose access
// has been granted.
func (s *Service) ViewGallery(ctx context.Context, viewerID int64, ownerUsername string) ([]model.GalleryImage, error) {
	if viewerID <= 0 || strings.TrimSpace(ownerUsername) == "" {
		return nil, fmt.Errorf("invalid gallery view request: %w", ErrValidation)
	}

	owner, err := s.users.FindByUsername(ctx, strings.TrimSpace(ownerUsername))
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("resolve gallery owner: %w", err)
	}

	includePrivate := owner.ID == viewerID
	if !includePrivate {
		status, err := s.store.GetStatus(ctx, viewerID, owner.ID)
		if err != nil && !errors.Is(err, pgrepo.ErrGalleryRequestNotFound) {
			return nil, fmt.Errorf("check gallery access: %w", err)
		}
		includePrivate = status == enums.AccessStatusGranted
	}

	imgs, err := s.store.ListImagesForOwner(ctx, owner.ID, includePrivate)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}

	if s.signer != nil {
		for i := range imgs {
			signed, err := s.signer.SignedGetURL(ctx, imgs[i].ObjectKey, s.cfg.SignedURLTTL)
			if err != nil {
				return nil, fmt.Errorf("sign image url: %w", err)
			}
			imgs[i].SignedURL = signed
		}
	}

	return imgs, nil
}

func (s *Service) decide(ctx context.Context, ownerID, requestID int64, status enums.AccessStatus) error {
	if ownerID <= 0 || requestID <= 0 {
		return fmt.Errorf("invalid decision request: %w", ErrValidation)
	}

	if err := s.store.Decide(ctx, requestID, ownerID, status); err != nil {
		if errors.Is(err, pgrepo.ErrGalleryRequestNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("decide access request: %w", err)
	}

	return nil
}
