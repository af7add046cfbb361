package rules

import (
	"errors"
	"fmt"

	"github.com/eliteconnections/backend/internal/domain/enums"
)

var ErrInvalidTransition = errors.New("invalid portfolio status transition")

type StatusEvent string

const (
	// EventEdit fires on every successful portfolio submit. Any content
	// edit revokes prior approval and queues the profile for review.
	EventEdit      StatusEvent = "edit"
	EventApprove   StatusEvent = "approve"
	EventDecline   StatusEvent = "decline"
	EventSuspend   StatusEvent = "suspend"
	EventReinstate StatusEvent = "reinstate"
)

// ApplyStatusEvent is the single place portfolio status may change.
//
//	draft|approved|declined --edit--> under_review
//	under_review --approve--> approved
//	under_review --decline--> declined
//	any-but-suspended --suspend--> suspended
//	suspended --reinstate--> under_review
func ApplyStatusEvent(current enums.PortfolioStatus, event StatusEvent) (enums.PortfolioStatus, error) {
	switch event {
	case EventEdit:
		switch current {
		case enums.PortfolioStatusDraft, enums.PortfolioStatusUnderReview,
			enums.PortfolioStatusApproved, enums.PortfolioStatusDeclined:
			return enums.PortfolioStatusUnderReview, nil
		}
	case EventApprove:
		if current == enums.PortfolioStatusUnderReview {
			return enums.PortfolioStatusApproved, nil
		}
	case EventDecline:
		if current == enums.PortfolioStatusUnderReview {
			return enums.PortfolioStatusDeclined, nil
		}
	case EventSuspend:
		if current != enums.PortfolioStatusSuspended {
			return enums.PortfolioStatusSuspended, nil
		}
	case EventReinstate:
		if current == enums.PortfolioStatusSuspended {
			return enums.PortfolioStatusUnderReview, nil
		}
	}

	return current, fmt.Errorf("%s from %q: %w", event, current, ErrInvalidTransition)
}
