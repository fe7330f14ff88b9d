package checksum

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/lvillani/vagrant-metadata/internal/cache"
	"github.com/lvillani/vagrant-metadata/internal/domain"
	"github.com/lvillani/vagrant-metadata/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMemoryCache(t *testing.T) *cache.BadgerCache {
	t.Helper()
	c, err := cache.NewBadgerCache(cache.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachedDigester_ReusesDigest(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockDigester(ctrl)
	inner.EXPECT().Type().Return("sha1").AnyTimes()
	inner.EXPECT().Digest(gomock.Any(), gomock.Any()).Return("cafebabe", nil).Times(1)

	path := writeFile(t, "test.box", []byte("abc"))
	d := NewCachedDigester(inner, newMemoryCache(t), time.Hour, nil)

	for i := 0; i < 3; i++ {
		digest, err := d.Digest(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "cafebabe", digest)
	}
	assert.Equal(t, "sha1", d.Type())
}

func TestCachedDigester_ChangedFileMisses(t *testing.T) {
	c := newMemoryCache(t)
	d := NewCachedDigester(NewSHA1Digester(), c, 0, nil)
	path := writeFile(t, "test.box", nil)

	digest, err := d.Digest(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, emptySHA1, digest)

	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	digest, err = d.Digest(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", digest)
	assert.Equal(t, int64(2), c.Size())
}

func TestCachedDigester_CacheFailuresAreNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mocks.NewMockDigestCache(ctrl)
	c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))
	c.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Hour).Return(errors.New("disk full"))

	path := writeFile(t, "test.box", nil)
	d := NewCachedDigester(NewSHA1Digester(), c, time.Hour, nil)

	digest, err := d.Digest(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, emptySHA1, digest)
}

func TestCachedDigester_InnerErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockDigester(ctrl)
	inner.EXPECT().Type().Return("sha1").AnyTimes()
	readErr := domain.NewFilesystemError("read", "test.box", errors.New("i/o error"))
	inner.EXPECT().Digest(gomock.Any(), gomock.Any()).Return("", readErr)

	path := writeFile(t, "test.box", nil)
	d := NewCachedDigester(inner, newMemoryCache(t), time.Hour, nil)

	_, err := d.Digest(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrFilesystem)
}

func TestCachedDigester_MissingFile(t *testing.T) {
	d := NewCachedDigester(NewSHA1Digester(), newMemoryCache(t), time.Hour, nil)

	_, err := d.Digest(context.Background(), "/definitely/missing.box")
	assert.ErrorIs(t, err, domain.ErrFilesystem)
}
