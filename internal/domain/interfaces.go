package domain

//go:generate mockgen -destination=mocks/mock_interfaces.go -package=mocks . Digester,DigestCache

import (
	"context"
	"time"
)

// Digester computes the content checksum of an artifact
type Digester interface {
	// Digest returns the lowercase hex digest of the file at path
	Digest(ctx context.Context, path string) (string, error)
	// Type returns the checksum_type tag recorded next to the digest
	Type() string
}

// DigestCache stores previously computed digests
type DigestCache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Close releases cache resources
	Close() error
}

// Progress receives digest progress during a reconciliation pass
type Progress interface {
	// Start is called once with the number of artifacts that will be hashed
	Start(total int)
	// Advance is called after each artifact has been hashed
	Advance()
	// Finish is called when hashing is over, successful or not
	Finish()
}
