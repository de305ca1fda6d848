package activity

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, error)
}

type Filter struct {
	Action     *Action
	EntityType *EntityType
	EntityID   string
	Limit      int
}
