package model

import "time"

// Introduction is a two-party conversation thread. Participants are stored
// as a canonical ordered pair (ParticipantA < ParticipantB).
type Introduction struct {
	ID              int64     `json:"id"`
	ParticipantA    int64     `json:"participant_a"`
	ParticipantB    int64     `json:"participant_b"`
	LastMessageID   *int64    `json:"last_message_id"`
	CreatedAt       time.Time `json:"created_at"`
	LastInteraction time.Time `json:"last_interaction"`
}

// OtherParticipant returns the counterpart of userID in the pair.
func (i Introduction) OtherParticipant(userID int64) int64 {
	if i.ParticipantA == userID {
		return i.ParticipantB
	}
	return i.ParticipantA
}

func (i Introduction) HasParticipant(userID int64) bool {
	return i.ParticipantA == userID || i.ParticipantB == userID
}
