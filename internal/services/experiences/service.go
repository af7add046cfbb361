package experiences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
)

var (
	ErrValidation = errors.New("validation error")
	ErrTimeOrder  = errors.New("conclusion must be after commencement")
	ErrDateInPast = errors.New("experience date is in the past")
	ErrNotListed  = errors.New("experience not found or already inactive")
)

type ExperienceStore interface {
	Create(ctx context.Context, exp model.Experience) (model.Experience, error)
	ListActive(ctx context.Context, limit int) ([]model.Experience, error)
	Deactivate(ctx context.Context, hostUserID, id int64) (bool, error)
}

type Service struct {
	store ExperienceStore
	now   func() time.Time
}

type Input struct {
	Title             string
	Venue             string
	ExperienceDate    time.Time
	Commencement      string
	Conclusion        string
	Description       string
	Consideration     *float64
	ConsiderationType string
}

func NewService(store ExperienceStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

const clockLayout = "15:04"

// Create lists a new experience. The date must not lie in the past and the
// conclusion time must come after the commencement time.
func (s *Service) Create(ctx context.Context, hostUserID int64, in Input) (model.Experience, error) {
	if hostUserID <= 0 {
		return model.Experience{}, fmt.Errorf("invalid host id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.Experience{}, fmt.Errorf("experience store is nil")
	}

	title := strings.TrimSpace(in.Title)
	venue := strings.TrimSpace(in.Venue)
	if title == "" || venue == "" {
		return model.Experience{}, fmt.Errorf("title and venue are required: %w", ErrValidation)
	}
	if in.ExperienceDate.IsZero() {
		return model.Experience{}, fmt.Errorf("experience_date is required: %w", ErrValidation)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	if in.ExperienceDate.UTC().Truncate(24 * time.Hour).Before(today) {
		return model.Experience{}, ErrDateInPast
	}

	start, err := time.Parse(clockLayout, strings.TrimSpace(in.Commencement))
	if err != nil {
		return model.Experience{}, fmt.Errorf("commencement must be HH:MM: %w", ErrValidation)
	}
	end, err := time.Parse(clockLayout, strings.TrimSpace(in.Conclusion))
	if err != nil {
		return model.Experience{}, fmt.Errorf("conclusion must be HH:MM: %w", ErrValidation)
	}
	if !end.After(start) {
		return model.Experience{}, ErrTimeOrder
	}

	considerationType := enums.ConsiderationType(strings.TrimSpace(in.ConsiderationType))
	if !considerationType.IsValid() {
		return model.Experience{}, fmt.Errorf("invalid consideration_type: %w", ErrValidation)
	}
	if in.Consideration != nil && *in.Consideration < 0 {
		return model.Experience{}, fmt.Errorf("consideration must not be negative: %w", ErrValidation)
	}

	exp, err := s.store.Create(ctx, model.Experience{
		HostUserID:        hostUserID,
		Title:             title,
		Venue:             venue,
		ExperienceDate:    in.ExperienceDate,
		Commencement:      start.Format(clockLayout),
		Conclusion:        end.Format(clockLayout),
		Description:       strings.TrimSpace(in.Description),
		Consideration:     in.Consideration,
		ConsiderationType: considerationType,
	})
	if err != nil {
		return model.Experience{}, fmt.Errorf("create experience: %w", err)
	}

	return exp, nil
}

func (s *Service) ListActive(ctx context.Context, limit int) ([]model.Experience, error) {
	if s.store == nil {
		return nil, fmt.Errorf("experience store is nil")
	}

	exps, err := s.store.ListActive(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}

	return exps, nil
}

// Deactivate delists the host's own experience. Acting on someone else's
// listing looks the same as acting on a missing one.
func (s *Service) Deactivate(ctx context.Context, hostUserID, id int64) error {
	if hostUserID <= 0 || id <= 0 {
		return fmt.Errorf("invalid deactivate request: %w", ErrValidation)
	}
	if s.store == nil {
		return fmt.Errorf("experience store is nil")
	}

	ok, err := s.store.Deactivate(ctx, hostUserID, id)
	if err != nil {
		return fmt.Errorf("deactivate experience: %w", err)
	}
	if !ok {
		return ErrNotListed
	}

	return nil
}
