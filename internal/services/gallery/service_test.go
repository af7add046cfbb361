package gallery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
	gallerysvc "github.com/eliteconnections/backend/internal/services/gallery"
)

type galleryStoreFake struct {
	nextID   int64
	requests map[[2]int64]*model.GalleryAccessRequest
	images   []model.GalleryImage
}

func newGalleryStoreFake() *galleryStoreFake {
	return &galleryStoreFake{requests: make(map[[2]int64]*model.GalleryAccessRequest)}
}

func (f *galleryStoreFake) UpsertRequest(_ context.Context, requesterID, ownerID int64) (model.GalleryAccessRequest, error) {
	key := [2]int64{requesterID, ownerID}
	if req, ok := f.requests[key]; ok {
		if req.Status == enums.AccessStatusDeclined {
			req.Status = enums.AccessStatusPending
			req.RequestedAt = time.Now()
			req.DecidedAt = nil
		}
		return *req, nil
	}
	f.nextID++
	req := &model.GalleryAccessRequest{
		ID:          f.nextID,
		RequesterID: requesterID,
		OwnerID:     ownerID,
		Status:      enums.AccessStatusPending,
		RequestedAt: time.Now(),
	}
	f.requests[key] = req
	return *req, nil
}

func (f *galleryStoreFake) Decide(_ context.Context, id, ownerID int64, status enums.AccessStatus) error {
	for _, req := range f.requests {
		if req.ID == id && req.OwnerID == ownerID && req.Status == enums.AccessStatusPending {
			now := time.Now()
			req.Status = status
			req.DecidedAt = &now
			return nil
		}
	}
	return pgrepo.ErrGalleryRequestNotFound
}

func (f *galleryStoreFake) GetStatus(_ context.Context, requesterID, ownerID int64) (enums.AccessStatus, error) {
	req, ok := f.requests[[2]int64{requesterID, ownerID}]
	if !ok {
		return "", pgrepo.ErrGalleryRequestNotFound
	}
	return req.Status, nil
}

func (f *galleryStoreFake) ListPendingForOwner(_ context.Context, ownerID int64) ([]model.GalleryAccessRequest, error) {
	var out []model.GalleryAccessRequest
	for _, req := range f.requests {
		if req.OwnerID == ownerID && req.Status == enums.AccessStatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *galleryStoreFake) AddImage(_ context.Context, ownerID int64, objectKey string, isPrivate bool) (model.GalleryImage, error) {
	img := model.GalleryImage{
		ID:         int64(len(f.images) + 1),
		OwnerID:    ownerID,
		ObjectKey:  objectKey,
		IsPrivate:  isPrivate,
		UploadedAt: time.Now(),
	}
	f.images = append(f.images, img)
	return img, nil
}

func (f *galleryStoreFake) ListImagesForOwner(_ context.Context, ownerID int64, includePrivate bool) ([]model.GalleryImage, error) {
	var out []model.GalleryImage
	for _, img := range f.images {
		if img.OwnerID != ownerID {
			continue
		}
		if img.IsPrivate && !includePrivate {
			continue
		}
		out = append(out, img)
	}
	return out, nil
}

type galleryUsersFake map[int64]model.User

func (f galleryUsersFake) FindByID(_ context.Context, userID int64) (model.User, error) {
	u, ok := f[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return u, nil
}

func (f galleryUsersFake) FindByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range f {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, pgrepo.ErrUserNotFound
}

type signerFake struct{}

func (signerFake) SignedGetURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://signed.example/" + objectKey, nil
}

func (signerFake) SignedPutURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://signed.example/put/" + objectKey, nil
}

func newGalleryServiceForTest() (*gallerysvc.Service, *galleryStoreFake) {
	store := newGalleryStoreFake()
	users := galleryUsersFake{
		1: {ID: 1, Username: "requester"},
		2: {ID: 2, Username: "owner"},
	}
	svc := gallerysvc.NewService(store, users, signerFake{}, gallerysvc.Config{SignedURLTTL: time.Minute})
	return svc, store
}

func TestRequestAccessIdempotentWithDeclineReset(t *testing.T) {
	svc, _ := newGalleryServiceForTest()
	ctx := context.Background()

	first, err := svc.RequestAccess(ctx, 1, 2)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	repeat, err := svc.RequestAccess(ctx, 1, 2)
	if err != nil {
		t.Fatalf("repeat request: %v", err)
	}
	if repeat.ID != first.ID || repeat.Status != enums.AccessStatusPending {
		t.Fatalf("repeat should return the same pending row: %+v", repeat)
	}

	if err := svc.Decline(ctx, 2, first.ID); err != nil {
		t.Fatalf("decline: %v", err)
	}
	refiled, err := svc.RequestAccess(ctx, 1, 2)
	if err != nil {
		t.Fatalf("re-request after decline: %v", err)
	}
	if refiled.Status != enums.AccessStatusPending {
		t.Fatalf("declined request did not reset to pending: %+v", refiled)
	}
}

func TestRequestAccessErrors(t *testing.T) {
	svc, _ := newGalleryServiceForTest()
	ctx := context.Background()

	if _, err := svc.RequestAccess(ctx, 1, 1); !errors.Is(err, gallerysvc.ErrValidation) {
		t.Fatalf("self request: got %v", err)
	}
	if _, err := svc.RequestAccess(ctx, 1, 404); !errors.Is(err, gallerysvc.ErrOwnerNotFound) {
		t.Fatalf("unknown owner: got %v", err)
	}
	if err := svc.Grant(ctx, 2, 404); !errors.Is(err, gallerysvc.ErrRequestNotFound) {
		t.Fatalf("granting missing request: got %v", err)
	}
}

func TestViewGalleryPrivateVisibility(t *testing.T) {
	svc, store := newGalleryServiceForTest()
	ctx := context.Background()

	if _, err := store.AddImage(ctx, 2, "gallery/2/public", false); err != nil {
		t.Fatalf("add public image: %v", err)
	}
	if _, err := store.AddImage(ctx, 2, "gallery/2/private", true); err != nil {
		t.Fatalf("add private image: %v", err)
	}

	// Stranger sees only the public image.
	imgs, err := svc.ViewGallery(ctx, 1, "owner")
	if err != nil {
		t.Fatalf("stranger view: %v", err)
	}
	if len(imgs) != 1 || imgs[0].IsPrivate {
		t.Fatalf("stranger gallery = %+v", imgs)
	}
	if imgs[0].SignedURL == "" {
		t.Fatalf("image url not signed")
	}

	// Owner always sees everything.
	imgs, err = svc.ViewGallery(ctx, 2, "owner")
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if len(imgs) != 2 {
		t.Fatalf("owner gallery size = %d", len(imgs))
	}

	// A granted requester sees private images too.
	req, err := svc.RequestAccess(ctx, 1, 2)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := svc.Grant(ctx, 2, req.ID); err != nil {
		t.Fatalf("grant: %v", err)
	}
	imgs, err = svc.ViewGallery(ctx, 1, "owner")
	if err != nil {
		t.Fatalf("granted view: %v", err)
	}
	if len(imgs) != 2 {
		t.Fatalf("granted gallery size = %d", len(imgs))
	}
}

func TestBeginUploadSignsPutURL(t *testing.T) {
	svc, _ := newGalleryServiceForTest()

	up, err := svc.BeginUpload(context.Background(), 2, true)
	if err != nil {
		t.Fatalf("begin upload: %v", err)
	}
	if up.Image.ObjectKey == "" || up.UploadURL == "" {
		t.Fatalf("upload not prepared: %+v", up)
	}
}
