package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eliteconnections/backend/internal/domain/model"
	"github.com/eliteconnections/backend/internal/domain/rules"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type DirectoryStore interface {
	ListVisible(ctx context.Context, q pgrepo.DirectoryQuery) ([]pgrepo.DirectoryCard, error)
	CountVisible(ctx context.Context, q pgrepo.DirectoryQuery) (int, error)
}

type ProfileStore interface {
	FindOrCreate(ctx context.Context, userID int64) (model.Profile, bool, error)
	TouchLastActive(ctx context.Context, userID int64) error
}

type Config struct {
	PageSize int
}

type Service struct {
	directory DirectoryStore
	profiles  ProfileStore
	cfg       Config
	now       func() time.Time
}

type Query struct {
	Location string
	Tier     string
	Page     int
}

// Card is one grid entry with the derived display fields attached.
type Card struct {
	UserID          int64      `json:"user_id"`
	Username        string     `json:"username"`
	PreferredName   string     `json:"preferred_name"`
	Gender          string     `json:"gender"`
	PrimaryLocation string     `json:"primary_location"`
	EngagementTier  string     `json:"engagement_tier"`
	Age             int        `json:"age,omitempty"`
	LifeStage       string     `json:"life_stage,omitempty"`
	ViewCount       int64      `json:"view_count"`
	LastActive      *time.Time `json:"last_active"`
}

type Page struct {
	Cards      []Card `json:"cards"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}

func NewService(directory DirectoryStore, profiles ProfileStore, cfg Config) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 12
	}

	return &Service{
		directory: directory,
		profiles:  profiles,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Browse serves both the dashboard and the curated search; the dashboard is
// a Browse with an empty query. First access lazily creates the viewer's
// empty profile and any visit refreshes their activity timestamp.
func (s *Service) Browse(ctx context.Context, viewerID int64, q Query) (Page, error) {
	if viewerID <= 0 {
		return Page{}, fmt.Errorf("invalid viewer id: %w", ErrValidation)
	}
	if s.directory == nil || s.profiles == nil {
		return Page{}, fmt.Errorf("directory service is not fully wired")
	}

	if _, _, err := s.profiles.FindOrCreate(ctx, viewerID); err != nil {
		return Page{}, fmt.Errorf("ensure viewer profile: %w", err)
	}
	if err := s.profiles.TouchLastActive(ctx, viewerID); err != nil {
		return Page{}, fmt.Errorf("touch viewer activity: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	repoQuery := pgrepo.DirectoryQuery{
		ViewerUserID: viewerID,
		Location:     strings.TrimSpace(q.Location),
		Tier:         strings.ToLower(strings.TrimSpace(q.Tier)),
		Limit:        s.cfg.PageSize,
		Offset:       (page - 1) * s.cfg.PageSize,
	}

	total, err := s.directory.CountVisible(ctx, repoQuery)
	if err != nil {
		return Page{}, fmt.Errorf("count directory: %w", err)
	}

	cards, err := s.directory.ListVisible(ctx, repoQuery)
	if err != nil {
		return Page{}, fmt.Errorf("list directory: %w", err)
	}

	now := s.now()
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		card := Card{
			UserID:          c.UserID,
			Username:        c.Username,
			PreferredName:   c.PreferredName,
			Gender:          c.Gender,
			PrimaryLocation: c.PrimaryLocation,
			EngagementTier:  c.EngagementTier,
			ViewCount:       c.ViewCount,
			LastActive:      c.LastActive,
		}
		if c.DateOfBirth != nil {
			card.Age = rules.AgeYears(*c.DateOfBirth, now)
			card.LifeStage = rules.LifeStage(card.Age)
		}
		out = append(out, card)
	}

	totalPages := (total + s.cfg.PageSize - 1) / s.cfg.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return Page{
		Cards:      out,
		Page:       page,
		PageSize:   s.cfg.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
