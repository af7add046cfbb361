package enums

type ConsiderationType string

const (
	ConsiderationHostedExperience   ConsiderationType = "hosted_experience"
	ConsiderationSeekingParticipant ConsiderationType = "seeking_participant"
)

func (t ConsiderationType) IsValid() bool {
	return t == ConsiderationHostedExperience || t == ConsiderationSeekingParticipant
}
