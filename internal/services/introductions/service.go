package introductions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/eliteconnections/backend/internal/domain/model"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrMessageLength  = errors.New("message length out of bounds")
	ErrNotParticipant = errors.New("not a participant of this introduction")
	ErrThreadNotFound = errors.New("introduction not found")
	ErrTargetNotFound = errors.New("target user not found")
)

type IntroductionStore interface {
	GetOrCreate(ctx context.Context, userA, userB int64) (model.Introduction, error)
	GetByID(ctx context.Context, id int64) (model.Introduction, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Introduction, error)
}

type MessageStore interface {
	Append(ctx context.Context, introductionID, senderID int64, content string) (model.Message, error)
	ListByIntroduction(ctx context.Context, introductionID int64) ([]model.Message, error)
	CountUnread(ctx context.Context, introductionID, readerID int64) (int, error)
	MarkRead(ctx context.Context, introductionID, readerID int64) (int64, error)
}

type UserStore interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
}

type Config struct {
	MessageMinLen int
	MessageMaxLen int
}

type Service struct {
	intros   IntroductionStore
	messages MessageStore
	users    UserStore
	cfg      Config
}

// Thread is one inbox row: the introduction, the counterpart and the
// reader's unread count.
type Thread struct {
	Introduction model.Introduction `json:"introduction"`
	Counterpart  model.User         `json:"counterpart"`
	UnreadCount  int                `json:"unread_count"`
}

func NewService(intros IntroductionStore, messages MessageStore, users UserStore, cfg Config) *Service {
	if cfg.MessageMinLen <= 0 {
		cfg.MessageMinLen = 5
	}
	if cfg.MessageMaxLen <= 0 {
		cfg.MessageMaxLen = 2000
	}

	return &Service{
		intros:   intros,
		messages: messages,
		users:    users,
		cfg:      cfg,
	}
}

// SendTo opens (or reuses) the introduction between sender and target and
// appends the message to it.
func (s *Service) SendTo(ctx context.Context, senderID, targetID int64, content string) (model.Message, error) {
	if senderID <= 0 || targetID <= 0 {
		return model.Message{}, fmt.Errorf("invalid participant: %w", ErrValidation)
	}
	if senderID == targetID {
		return model.Message{}, fmt.Errorf("cannot message yourself: %w", ErrValidation)
	}

	trimmed, err := s.validateContent(content)
	if err != nil {
		return model.Message{}, err
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.Message{}, ErrTargetNotFound
		}
		return model.Message{}, fmt.Errorf("resolve message target: %w", err)
	}

	intro, err := s.intros.GetOrCreate(ctx, senderID, targetID)
	if err != nil {
		return model.Message{}, fmt.Errorf("get or create introduction: %w", err)
	}

	msg, err := s.messages.Append(ctx, intro.ID, senderID, trimmed)
	if err != nil {
		return model.Message{}, fmt.Errorf("append message: %w", err)
	}

	return msg, nil
}

// Send appends a message to an existing introduction the sender belongs to.
func (s *Service) Send(ctx context.Context, senderID, introductionID int64, content string) (model.Message, error) {
	trimmed, err := s.validateContent(content)
	if err != nil {
		return model.Message{}, err
	}

	intro, err := s.authorize(ctx, senderID, introductionID)
	if err != nil {
		return model.Message{}, err
	}

	msg, err := s.messages.Append(ctx, intro.ID, senderID, trimmed)
	if err != nil {
		return model.Message{}, fmt.Errorf("append message: %w", err)
	}

	return msg, nil
}

// Inbox returns the user's threads ordered by most recent interaction.
func (s *Service) Inbox(ctx context.Context, userID int64) ([]Thread, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id: %w", ErrValidation)
	}

	intros, err := s.intros.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list introductions: %w", err)
	}

	threads := make([]Thread, 0, len(intros))
	for _, intro := range intros {
		counterpart, err := s.users.FindByID(ctx, intro.OtherParticipant(userID))
		if err != nil && !errors.Is(err, pgrepo.ErrUserNotFound) {
			return nil, fmt.Errorf("resolve counterpart: %w", err)
		}
		unread, err := s.messages.CountUnread(ctx, intro.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("count unread: %w", err)
		}
		threads = append(threads, Thread{
			Introduction: intro,
			Counterpart:  counterpart,
			UnreadCount:  unread,
		})
	}

	return threads, nil
}

// History returns the thread's messages in exchange order.
func (s *Service) History(ctx context.Context, userID, introductionID int64) ([]model.Message, error) {
	intro, err := s.authorize(ctx, userID, introductionID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByIntroduction(ctx, intro.ID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return msgs, nil
}

// MarkRead flags the counterpart's messages as read and returns how many
// were flipped.
func (s *Service) MarkRead(ctx context.Context, userID, introductionID int64) (int64, error) {
	intro, err := s.authorize(ctx, userID, introductionID)
	if err != nil {
		return 0, err
	}

	n, err := s.messages.MarkRead(ctx, intro.ID, userID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}

	return n, nil
}

func (s *Service) authorize(ctx context.Context, userID, introductionID int64) (model.Introduction, error) {
	if userID <= 0 || introductionID <= 0 {
		return model.Introduction{}, fmt.Errorf("invalid thread request: %w", ErrValidation)
	}

	intro, err := s.intros.GetByID(ctx, introductionID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrIntroductionNotFound) {
			return model.Introduction{}, ErrThreadNotFound
		}
		return model.Introduction{}, fmt.Errorf("get introduction: %w", err)
	}
	if !intro.HasParticipant(userID) {
		return model.Introduction{}, ErrNotParticipant
	}

	return intro, nil
}

func (s *Service) validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if n := utf8.RuneCountInString(trimmed); n < s.cfg.MessageMinLen || n > s.cfg.MessageMaxLen {
		return "", fmt.Errorf("message must be %d-%d characters: %w",
			s.cfg.MessageMinLen, s.cfg.MessageMaxLen, ErrMessageLength)
	}
	return trimmed, nil
}
