package enums

type AccessStatus string

const (
	AccessStatusPending  AccessStatus = "pending"
	AccessStatusGranted  AccessStatus = "granted"
	AccessStatusDeclined AccessStatus = "declined"
)

func (s AccessStatus) IsValid() bool {
	switch s {
	case AccessStatusPending, AccessStatusGranted, AccessStatusDeclined:
		return true
	}
	return false
}
