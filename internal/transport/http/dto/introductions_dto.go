package dto

import "github.com/eliteconnections/backend/internal/domain/model"

type NewIntroductionRequest struct {
	TargetUserID int64  `json:"target_user_id"`
	Content      string `json:"content"`
}

type MessageRequest struct {
	Content string `json:"content"`
}

type MessageResponse struct {
	Message model.Message `json:"message"`
}

type ThreadResponse struct {
	Introduction model.Introduction `json:"introduction"`
	Counterpart  AuthMeResponse     `json:"counterpart"`
	UnreadCount  int                `json:"unread_count"`
}

type InboxResponse struct {
	Threads []ThreadResponse `json:"threads"`
}

type HistoryResponse struct {
	Messages []model.Message `json:"messages"`
}

type MarkReadResponse struct {
	OK         bool  `json:"ok"`
	MarkedRead int64 `json:"marked_read"`
}
