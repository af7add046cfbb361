package profiles_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
	profilesvc "github.com/eliteconnections/backend/internal/services/profiles"
)

type profileStoreFake struct {
	profiles   map[int64]*model.Profile
	increments int
}

func newProfileStoreFake() *profileStoreFake {
	return &profileStoreFake{profiles: make(map[int64]*model.Profile)}
}

func (f *profileStoreFake) FindOrCreate(_ context.Context, userID int64) (model.Profile, bool, error) {
	if p, ok := f.profiles[userID]; ok {
		return *p, false, nil
	}
	p := &model.Profile{UserID: userID, Status: enums.PortfolioStatusDraft}
	f.profiles[userID] = p
	return *p, true, nil
}

func (f *profileStoreFake) GetByUserID(_ context.Context, userID int64) (model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return model.Profile{}, pgrepo.ErrProfileNotFound
	}
	return *p, nil
}

func (f *profileStoreFake) Save(_ context.Context, userID int64, details pgrepo.PortfolioDetails, status enums.PortfolioStatus) error {
	p, ok := f.profiles[userID]
	if !ok {
		return pgrepo.ErrProfileNotFound
	}
	p.PreferredName = details.PreferredName
	p.DateOfBirth = details.DateOfBirth
	p.PrimaryLocation = details.PrimaryLocation
	p.PublicPortfolio = details.PublicPortfolio
	p.Status = status
	return nil
}

func (f *profileStoreFake) IncrementViewCount(_ context.Context, userID int64) error {
	p, ok := f.profiles[userID]
	if !ok {
		return pgrepo.ErrProfileNotFound
	}
	p.ViewCount++
	f.increments++
	return nil
}

func (f *profileStoreFake) TouchLastActive(_ context.Context, userID int64) error {
	return nil
}

type userStoreFake struct {
	users map[string]model.User
}

func (f userStoreFake) FindByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return u, nil
}

func birthdate(years int) *time.Time {
	d := time.Now().UTC().AddDate(-years, 0, -1)
	return &d
}

func TestUpdatePortfolioQueuesForReview(t *testing.T) {
	store := newProfileStoreFake()
	svc := profilesvc.NewService(store, userStoreFake{}, profilesvc.Config{})

	ctx := context.Background()
	for _, from := range []enums.PortfolioStatus{
		enums.PortfolioStatusDraft,
		enums.PortfolioStatusApproved,
		enums.PortfolioStatusDeclined,
	} {
		store.profiles[9] = &model.Profile{UserID: 9, Status: from}
		updated, err := svc.UpdatePortfolio(ctx, 9, profilesvc.PortfolioInput{
			PreferredName: "Isabella",
			DateOfBirth:   birthdate(30),
		})
		if err != nil {
			t.Fatalf("update from %s: %v", from, err)
		}
		if updated.Status != enums.PortfolioStatusUnderReview {
			t.Fatalf("status after edit from %s = %s, want under_review", from, updated.Status)
		}
	}
}

func TestUpdatePortfolioRejectsSuspended(t *testing.T) {
	store := newProfileStoreFake()
	store.profiles[9] = &model.Profile{UserID: 9, Status: enums.PortfolioStatusSuspended}
	svc := profilesvc.NewService(store, userStoreFake{}, profilesvc.Config{})

	_, err := svc.UpdatePortfolio(context.Background(), 9, profilesvc.PortfolioInput{PreferredName: "Isabella"})
	if !errors.Is(err, profilesvc.ErrSuspended) {
		t.Fatalf("expected ErrSuspended, got %v", err)
	}
}

func TestUpdatePortfolioAgeBounds(t *testing.T) {
	svc := profilesvc.NewService(newProfileStoreFake(), userStoreFake{}, profilesvc.Config{AgeMin: 18, AgeMax: 100})

	ctx := context.Background()
	for name, dob := range map[string]*time.Time{
		"too young": birthdate(17),
		"too old":   birthdate(101),
	} {
		if _, err := svc.UpdatePortfolio(ctx, 9, profilesvc.PortfolioInput{
			PreferredName: "Isabella",
			DateOfBirth:   dob,
		}); !errors.Is(err, profilesvc.ErrAgeRejected) {
			t.Fatalf("%s: expected ErrAgeRejected, got %v", name, err)
		}
	}
}

func TestViewHidesInvisiblePortfolios(t *testing.T) {
	store := newProfileStoreFake()
	store.profiles[2] = &model.Profile{UserID: 2, Status: enums.PortfolioStatusUnderReview, PublicPortfolio: true}
	users := userStoreFake{users: map[string]model.User{
		"hidden_one": {ID: 2, Username: "hidden_one"},
	}}
	svc := profilesvc.NewService(store, users, profilesvc.Config{})

	ctx := context.Background()
	if _, err := svc.View(ctx, 1, "member", "hidden_one"); !errors.Is(err, profilesvc.ErrPortfolioNotFound) {
		t.Fatalf("expected not found for invisible portfolio, got %v", err)
	}
	if store.increments != 0 {
		t.Fatalf("counter bumped on failed view")
	}
	if _, err := svc.View(ctx, 1, "member", "no_such_user"); !errors.Is(err, profilesvc.ErrPortfolioNotFound) {
		t.Fatalf("expected not found for missing user, got %v", err)
	}

	// The owner still sees their own pending portfolio.
	view, err := svc.View(ctx, 2, "member", "hidden_one")
	if err != nil {
		t.Fatalf("owner self view: %v", err)
	}
	if !view.OwnedByMe || store.increments != 0 {
		t.Fatalf("invisible portfolio must not count views, increments=%d", store.increments)
	}
}

func TestViewIncrementsCounterOnEveryVisibleView(t *testing.T) {
	store := newProfileStoreFake()
	store.profiles[2] = &model.Profile{
		UserID:          2,
		Status:          enums.PortfolioStatusApproved,
		PublicPortfolio: true,
		DateOfBirth:     birthdate(42),
	}
	users := userStoreFake{users: map[string]model.User{
		"visible_one": {ID: 2, Username: "visible_one"},
	}}
	svc := profilesvc.NewService(store, users, profilesvc.Config{})

	view, err := svc.View(context.Background(), 1, "member", "visible_one")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Profile.ViewCount != 1 || store.increments != 1 {
		t.Fatalf("view count = %d (increments %d), want 1", view.Profile.ViewCount, store.increments)
	}
	if view.LifeStage != "Seasoned Connoisseur" {
		t.Fatalf("life stage = %q", view.LifeStage)
	}

	// Owner visits of a visible portfolio count too.
	ownerView, err := svc.View(context.Background(), 2, "member", "visible_one")
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if !ownerView.OwnedByMe || store.increments != 2 {
		t.Fatalf("owner view: increments = %d, want 2", store.increments)
	}
}
