package checksum

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/lvillani/vagrant-metadata/internal/cache"
	"github.com/lvillani/vagrant-metadata/internal/domain"
	"github.com/lvillani/vagrant-metadata/internal/utils"
)

// Ensure CachedDigester implements domain.Digester
var _ domain.Digester = (*CachedDigester)(nil)

// CachedDigester reuses digests of artifacts whose path, size and
// modification time have not changed since they were last hashed.
type CachedDigester struct {
	inner  domain.Digester
	cache  domain.DigestCache
	ttl    time.Duration
	logger *utils.Logger
}

// NewCachedDigester wraps inner with cache. A zero ttl keeps entries forever.
func NewCachedDigester(inner domain.Digester, c domain.DigestCache, ttl time.Duration, logger *utils.Logger) *CachedDigester {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &CachedDigester{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger.WithComponent("digest-cache"),
	}
}

// Type returns the checksum_type tag of the wrapped digester
func (d *CachedDigester) Type() string {
	return d.inner.Type()
}

// Digest returns the cached digest for path when available and computes
// and stores it otherwise. Cache failures only cost a recomputation.
func (d *CachedDigester) Digest(ctx context.Context, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", domain.NewFilesystemError("resolve", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", domain.NewFilesystemError("stat", path, err)
	}
	key := cache.DigestKey(d.inner.Type(), abs, info.Size(), info.ModTime())

	cached, err := d.cache.Get(ctx, key)
	switch {
	case err == nil && len(cached) > 0:
		d.logger.Debug().Str("path", path).Msg("Digest cache hit")
		return string(cached), nil
	case err != nil && !errors.Is(err, domain.ErrCacheMiss):
		d.logger.Warn().Err(err).Str("path", path).Msg("Digest cache read failed")
	}

	digest, err := d.inner.Digest(ctx, path)
	if err != nil {
		return "", err
	}

	if err := d.cache.Set(ctx, key, []byte(digest), d.ttl); err != nil {
		d.logger.Warn().Err(err).Str("path", path).Msg("Digest cache write failed")
	}

	return digest, nil
}
