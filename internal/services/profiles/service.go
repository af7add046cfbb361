package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	"github.com/eliteconnections/backend/internal/domain/rules"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrAgeRejected       = errors.New("age rejected")
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrSuspended         = errors.New("portfolio is suspended")
)

type ProfileStore interface {
	FindOrCreate(ctx context.Context, userID int64) (model.Profile, bool, error)
	GetByUserID(ctx context.Context, userID int64) (model.Profile, error)
	Save(ctx context.Context, userID int64, details pgrepo.PortfolioDetails, status enums.PortfolioStatus) error
	IncrementViewCount(ctx context.Context, userID int64) error
	TouchLastActive(ctx context.Context, userID int64) error
}

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

type Config struct {
	AgeMin int
	AgeMax int
}

type Service struct {
	store ProfileStore
	users UserStore
	cfg   Config
	now   func() time.Time
}

type PortfolioInput struct {
	PreferredName        string
	Gender               string
	GenderPreference     string
	DateOfBirth          *time.Time
	PrimaryLocation      string
	PersonalStatement    string
	LifestylePreference  string
	CurrentEngagement    string
	Physique             string
	FamilyConsiderations string
	LifestyleHabits      string
	Stature              string
	FinancialCapacity    string
	PersonalPhilosophy   string
	SeekingQualities     string
	ExpectationFramework string
	ConsiderationValue   *float64
	ConsiderationPeriod  string
	PublicPortfolio      bool
}

// PortfolioView is a profile decorated with derived display fields.
type PortfolioView struct {
	Profile   model.Profile
	Username  string
	Age       int
	LifeStage string
	OwnedByMe bool
}

func NewService(store ProfileStore, users UserStore, cfg Config) *Service {
	if cfg.AgeMin <= 0 {
		cfg.AgeMin = 18
	}
	if cfg.AgeMax <= 0 {
		cfg.AgeMax = 100
	}

	return &Service{
		store: store,
		users: users,
		cfg:   cfg,
		now:   time.Now,
	}
}

// GetOwn returns the requester's profile, creating the empty draft row on
// first access.
func (s *Service) GetOwn(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.Profile{}, fmt.Errorf("profile store is nil")
	}

	profile, _, err := s.store.FindOrCreate(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("find or create profile: %w", err)
	}

	return profile, nil
}

// UpdatePortfolio applies the submitted field set. Every successful edit
// queues the portfolio for review, revoking a prior approval. Suspended
// portfolios cannot be edited by their owner.
func (s *Service) UpdatePortfolio(ctx context.Context, userID int64, in PortfolioInput) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.Profile{}, fmt.Errorf("profile store is nil")
	}

	details, err := s.normalizeAndValidate(in)
	if err != nil {
		return model.Profile{}, err
	}

	current, _, err := s.store.FindOrCreate(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("load profile before edit: %w", err)
	}

	next, err := rules.ApplyStatusEvent(current.Status, rules.EventEdit)
	if err != nil {
		if current.Status == enums.PortfolioStatusSuspended {
			return model.Profile{}, ErrSuspended
		}
		return model.Profile{}, fmt.Errorf("apply edit event: %w", err)
	}

	if err := s.store.Save(ctx, userID, details, next); err != nil {
		return model.Profile{}, fmt.Errorf("save portfolio: %w", err)
	}
	if err := s.store.TouchLastActive(ctx, userID); err != nil {
		return model.Profile{}, fmt.Errorf("touch last active: %w", err)
	}

	updated, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("reload portfolio: %w", err)
	}

	return updated, nil
}

// View resolves a portfolio by username for a member audience. Invisible
// portfolios are indistinguishable from missing ones, and every view of a
// visible portfolio bumps the counter, including the owner's own visits.
func (s *Service) View(ctx context.Context, viewerID int64, viewerRole string, username string) (PortfolioView, error) {
	if viewerID <= 0 || strings.TrimSpace(username) == "" {
		return PortfolioView{}, fmt.Errorf("invalid view request: %w", ErrValidation)
	}
	if s.store == nil || s.users == nil {
		return PortfolioView{}, fmt.Errorf("profile service is not fully wired")
	}

	owner, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return PortfolioView{}, ErrPortfolioNotFound
		}
		return PortfolioView{}, fmt.Errorf("resolve portfolio owner: %w", err)
	}

	profile, err := s.store.GetByUserID(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return PortfolioView{}, ErrPortfolioNotFound
		}
		return PortfolioView{}, fmt.Errorf("load portfolio: %w", err)
	}

	ownedByMe := owner.ID == viewerID
	staff := enums.Role(viewerRole).IsStaff()
	if !profile.Visible() && !ownedByMe && !staff {
		return PortfolioView{}, ErrPortfolioNotFound
	}

	if profile.Visible() {
		if err := s.store.IncrementViewCount(ctx, owner.ID); err != nil {
			return PortfolioView{}, fmt.Errorf("increment view count: %w", err)
		}
		profile.ViewCount++
	}

	view := PortfolioView{
		Profile:   profile,
		Username:  owner.Username,
		OwnedByMe: ownedByMe,
	}
	if profile.DateOfBirth != nil {
		view.Age = rules.AgeYears(*profile.DateOfBirth, s.now())
		view.LifeStage = rules.LifeStage(view.Age)
	}

	return view, nil
}

func (s *Service) normalizeAndValidate(in PortfolioInput) (pgrepo.PortfolioDetails, error) {
	preferredName := strings.TrimSpace(in.PreferredName)
	if preferredName == "" {
		return pgrepo.PortfolioDetails{}, fmt.Errorf("preferred_name is required: %w", ErrValidation)
	}

	if in.DateOfBirth != nil {
		age := rules.AgeYears(*in.DateOfBirth, s.now())
		if age < s.cfg.AgeMin || age > s.cfg.AgeMax {
			return pgrepo.PortfolioDetails{}, fmt.Errorf("date_of_birth implies age %d: %w", age, ErrAgeRejected)
		}
	}

	if in.ConsiderationValue != nil && *in.ConsiderationValue < 0 {
		return pgrepo.PortfolioDetails{}, fmt.Errorf("consideration_value must not be negative: %w", ErrValidation)
	}

	return pgrepo.PortfolioDetails{
		PreferredName:        preferredName,
		Gender:               strings.ToLower(strings.TrimSpace(in.Gender)),
		GenderPreference:     strings.ToLower(strings.TrimSpace(in.GenderPreference)),
		DateOfBirth:          in.DateOfBirth,
		PrimaryLocation:      strings.TrimSpace(in.PrimaryLocation),
		PersonalStatement:    strings.TrimSpace(in.PersonalStatement),
		LifestylePreference:  strings.TrimSpace(in.LifestylePreference),
		CurrentEngagement:    strings.TrimSpace(in.CurrentEngagement),
		Physique:             strings.TrimSpace(in.Physique),
		FamilyConsiderations: strings.TrimSpace(in.FamilyConsiderations),
		LifestyleHabits:      strings.TrimSpace(in.LifestyleHabits),
		Stature:              strings.TrimSpace(in.Stature),
		FinancialCapacity:    strings.TrimSpace(in.FinancialCapacity),
		PersonalPhilosophy:   strings.TrimSpace(in.PersonalPhilosophy),
		SeekingQualities:     strings.TrimSpace(in.SeekingQualities),
		ExpectationFramework: strings.TrimSpace(in.ExpectationFramework),
		ConsiderationValue:   in.ConsiderationValue,
		ConsiderationPeriod:  strings.TrimSpace(in.ConsiderationPeriod),
		PublicPortfolio:      in.PublicPortfolio,
	}, nil
}
