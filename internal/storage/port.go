package storage

import "context"

// Attributes describe how a stored value should be retained. They mirror
// cookie attributes so the same blob can be written to an HTTP cookie and
// to a server-side key-value store.
type Attributes struct {
	Path     string
	MaxAge   int // seconds
	SameSite string
}

// VisitorStore is the durable key-value boundary the visitor codec writes
// through. Read returns "" for an absent key.
type VisitorStore interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string, attrs Attributes) error
}
