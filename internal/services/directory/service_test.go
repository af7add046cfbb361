package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
	directorysvc "github.com/eliteconnections/backend/internal/services/directory"
)

type directoryStoreFake struct {
	cards     []pgrepo.DirectoryCard
	lastQuery pgrepo.DirectoryQuery
}

func (f *directoryStoreFake) ListVisible(_ context.Context, q pgrepo.DirectoryQuery) ([]pgrepo.DirectoryCard, error) {
	f.lastQuery = q
	start := q.Offset
	if start > len(f.cards) {
		return []pgrepo.DirectoryCard{}, nil
	}
	end := start + q.Limit
	if end > len(f.cards) {
		end = len(f.cards)
	}
	return f.cards[start:end], nil
}

func (f *directoryStoreFake) CountVisible(_ context.Context, q pgrepo.DirectoryQuery) (int, error) {
	return len(f.cards), nil
}

type viewerProfileFake struct {
	created int
	touched int
}

func (f *viewerProfileFake) FindOrCreate(_ context.Context, userID int64) (model.Profile, bool, error) {
	f.created++
	return model.Profile{UserID: userID, Status: enums.PortfolioStatusDraft}, f.created == 1, nil
}

func (f *viewerProfileFake) TouchLastActive(_ context.Context, _ int64) error {
	f.touched++
	return nil
}

func makeCards(n int) []pgrepo.DirectoryCard {
	dob := time.Now().UTC().AddDate(-28, 0, -1)
	cards := make([]pgrepo.DirectoryCard, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, pgrepo.DirectoryCard{
			UserID:         int64(100 + i),
			Username:       "member",
			EngagementTier: "standard",
			DateOfBirth:    &dob,
		})
	}
	return cards
}

func TestBrowsePagination(t *testing.T) {
	store := &directoryStoreFake{cards: makeCards(30)}
	viewer := &viewerProfileFake{}
	svc := directorysvc.NewService(store, viewer, directorysvc.Config{PageSize: 12})

	ctx := context.Background()
	page, err := svc.Browse(ctx, 1, directorysvc.Query{Page: 1})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(page.Cards) != 12 || page.Total != 30 || page.TotalPages != 3 {
		t.Fatalf("page 1: cards=%d total=%d pages=%d", len(page.Cards), page.Total, page.TotalPages)
	}
	if viewer.created != 1 || viewer.touched != 1 {
		t.Fatalf("viewer profile not ensured: created=%d touched=%d", viewer.created, viewer.touched)
	}

	last, err := svc.Browse(ctx, 1, directorysvc.Query{Page: 3})
	if err != nil {
		t.Fatalf("browse last page: %v", err)
	}
	if len(last.Cards) != 6 {
		t.Fatalf("last page size = %d, want 6", len(last.Cards))
	}
	if store.lastQuery.Offset != 24 {
		t.Fatalf("offset = %d, want 24", store.lastQuery.Offset)
	}

	if page.Cards[0].LifeStage != "Established Professional" {
		t.Fatalf("life stage = %q", page.Cards[0].LifeStage)
	}
}

func TestBrowseNormalizesFilters(t *testing.T) {
	store := &directoryStoreFake{cards: makeCards(1)}
	svc := directorysvc.NewService(store, &viewerProfileFake{}, directorysvc.Config{})

	if _, err := svc.Browse(context.Background(), 1, directorysvc.Query{
		Location: "  Monaco ",
		Tier:     " Premium ",
		Page:     0,
	}); err != nil {
		t.Fatalf("browse: %v", err)
	}
	if store.lastQuery.Location != "Monaco" || store.lastQuery.Tier != "premium" {
		t.Fatalf("filters not normalized: %+v", store.lastQuery)
	}
	if store.lastQuery.Offset != 0 {
		t.Fatalf("page 0 should clamp to first page")
	}
}
