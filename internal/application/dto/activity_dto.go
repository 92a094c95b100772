package dto

import (
	"encoding/json"
	"time"
)

// ActivityLogResponse registro de la bitácora.
type ActivityLogResponse struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     string          `json:"action"`
	OldValue   json.RawMessage `json:"oldValue"`
	NewValue   json.RawMessage `json:"newValue"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ActivityLogListResponse lista paginada de la bitácora.
type ActivityLogListResponse struct {
	Items []ActivityLogResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
