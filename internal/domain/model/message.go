package model

import "time"

type Message struct {
	ID             int64     `json:"id"`
	IntroductionID int64     `json:"introduction_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	ExchangedAt    time.Time `json:"exchanged_at"`
}
