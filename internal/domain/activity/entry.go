package activity

import (
	"fmt"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/shared/id"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionNotify Action = "NOTIFY"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionNotify:
		return true
	}
	return false
}

type EntityType string

const (
	EntityCustomer     EntityType = "CUSTOMER"
	EntitySettings     EntityType = "SETTINGS"
	EntityNotification EntityType = "NOTIFICATION"
)

func (e EntityType) IsValid() bool {
	switch e {
	case EntityCustomer, EntitySettings, EntityNotification:
		return true
	}
	return false
}

// Entry is one line of the append-only audit log.
type Entry struct {
	id          string
	action      Action
	entityType  EntityType
	entityID    string
	description string
	actorID     string
	metadata    map[string]any
	createdAt   time.Time
}

func NewEntry(action Action, entityType EntityType, entityID, description, actorID string, metadata map[string]any, at time.Time) (*Entry, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid activity action: %s", action)
	}
	if !entityType.IsValid() {
		return nil, fmt.Errorf("invalid activity entity type: %s", entityType)
	}
	return &Entry{
		id:          id.NewActivityID(),
		action:      action,
		entityType:  entityType,
		entityID:    entityID,
		description: description,
		actorID:     actorID,
		metadata:    metadata,
		createdAt:   at.UTC(),
	}, nil
}

func ReconstructEntry(id string, action Action, entityType EntityType, entityID, description, actorID string, metadata map[string]any, createdAt time.Time) *Entry {
	return &Entry{
		id:          id,
		action:      action,
		entityType:  entityType,
		entityID:    entityID,
		description: description,
		actorID:     actorID,
		metadata:    metadata,
		createdAt:   createdAt,
	}
}

func (e *Entry) ID() string               { return e.id }
func (e *Entry) Action() Action           { return e.action }
func (e *Entry) EntityType() EntityType   { return e.entityType }
func (e *Entry) EntityID() string         { return e.entityID }
func (e *Entry) Description() string      { return e.description }
func (e *Entry) ActorID() string          { return e.actorID }
func (e *Entry) Metadata() map[string]any { return e.metadata }
func (e *Entry) CreatedAt() time.Time     { return e.createdAt }
