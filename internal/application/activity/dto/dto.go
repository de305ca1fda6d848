package dto

import (
	"time"

	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
)

type ActivityResponse struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityId,omitempty"`
	Description string         `json:"description"`
	ActorID     string         `json:"actorId,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type ListActivitiesRequest struct {
	Action     string `form:"action" binding:"omitempty,oneof=CREATE UPDATE DELETE NOTIFY"`
	EntityType string `form:"entityType" binding:"omitempty,oneof=CUSTOMER SETTINGS NOTIFICATION"`
	EntityID   string `form:"entityId"`
	Limit      int    `form:"limit"`
}

func ToActivityResponse(e *activity.Entry) ActivityResponse {
	return ActivityResponse{
		ID:          e.ID(),
		Action:      string(e.Action()),
		EntityType:  string(e.EntityType()),
		EntityID:    e.EntityID(),
		Description: e.Description(),
		ActorID:     e.ActorID(),
		Metadata:    e.Metadata(),
		CreatedAt:   e.CreatedAt(),
	}
}

func ToActivityResponses(entries []*activity.Entry) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToActivityResponse(e))
	}
	return out
}
