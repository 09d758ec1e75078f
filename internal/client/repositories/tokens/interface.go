package tokens

import (
	"context"
	"time"
)

// Record is one persisted token. A nil ExpiresAt means the record lives
// until it is deleted.
type Record struct {
	Name      string
	Value     string
	ExpiresAt *time.Time
}

type Repository interface {
	Get(ctx context.Context, name string) (*Record, error)
	Put(ctx context.Context, rec Record) error
	// PutAll stores every record or none of them.
	PutAll(ctx context.Context, recs ...Record) error
	Delete(ctx context.Context, name string) error
	Clear(ctx context.Context) error
}
