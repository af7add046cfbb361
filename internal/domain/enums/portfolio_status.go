package enums

type PortfolioStatus string

const (
	PortfolioStatusDraft       PortfolioStatus = "draft"
	PortfolioStatusUnderReview PortfolioStatus = "under_review"
	PortfolioStatusApproved    PortfolioStatus = "approved"
	PortfolioStatusDeclined    PortfolioStatus = "declined"
	PortfolioStatusSuspended   PortfolioStatus = "suspended"
)

func (s PortfolioStatus) IsValid() bool {
	switch s {
	case PortfolioStatusDraft, PortfolioStatusUnderReview, PortfolioStatusApproved,
		PortfolioStatusDeclined, PortfolioStatusSuspended:
		return true
	}
	return false
}
