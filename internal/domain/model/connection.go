package model

import (
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
)

type Connection struct {
	OwnerUserID  int64                `json:"owner_user_id"`
	TargetUserID int64                `json:"target_user_id"`
	Kind         enums.ConnectionKind `json:"kind"`
	CreatedAt    time.Time            `json:"created_at"`
}
