package dto

import "time"

type ConnectionResponse struct {
	OK    bool   `json:"ok"`
	Added bool   `json:"added"`
	Kind  string `json:"kind"`
}

type SavedConnectionResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type SavedConnectionsResponse struct {
	Items []SavedConnectionResponse `json:"items"`
}
