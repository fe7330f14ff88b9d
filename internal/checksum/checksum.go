// Package checksum computes box artifact digests.
package checksum

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"os"

	"github.com/lvillani/vagrant-metadata/internal/domain"
)

// ReadBlockSize is the number of bytes fed to the hash per read.
// It is a whole multiple of the SHA-1 block size.
const ReadBlockSize = sha1.BlockSize * 1024

// Ensure SHA1Digester implements domain.Digester
var _ domain.Digester = (*SHA1Digester)(nil)

// Digest streams the file at path through SHA-1 and returns the lowercase
// hex digest
func Digest(path string) (string, error) {
	return digestFile(context.Background(), path)
}

// SHA1Digester is the default domain.Digester
type SHA1Digester struct{}

// NewSHA1Digester creates a new SHA1Digester
func NewSHA1Digester() *SHA1Digester {
	return &SHA1Digester{}
}

// Digest hashes the file at path, stopping early if ctx is cancelled
func (d *SHA1Digester) Digest(ctx context.Context, path string) (string, error) {
	return digestFile(ctx, path)
}

// Type returns the checksum_type tag
func (d *SHA1Digester) Type() string {
	return domain.ChecksumTypeSHA1
}

func digestFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", domain.NewFilesystemError("open", path, err)
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, ReadBlockSize)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", domain.NewFilesystemError("read", path, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
