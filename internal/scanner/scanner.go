// Package scanner discovers the box directory layout
// root/<version>/<provider>/<artifact>.box.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lvillani/vagrant-metadata/internal/domain"
)

// ListSubdirectories returns the paths of every immediate child of path
// that is a directory. Symlinks are followed. The order is unspecified.
func ListSubdirectories(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, domain.NewFilesystemError("list", path, err)
	}

	dirs := []string{}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		isDir, err := isDirectory(child, entry)
		if err != nil {
			return nil, err
		}
		if isDir {
			dirs = append(dirs, child)
		}
	}

	return dirs, nil
}

// FindArtifact returns the single regular file in path whose name ends in
// domain.ArtifactSuffix. Anything other than exactly one match is an
// *domain.ArtifactCountError.
func FindArtifact(path string) (string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", domain.NewFilesystemError("list", path, err)
	}

	var boxes []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), domain.ArtifactSuffix) {
			continue
		}
		child := filepath.Join(path, entry.Name())
		info, err := os.Stat(child)
		if err != nil {
			// Dangling links are not artifacts
			if os.IsNotExist(err) {
				continue
			}
			return "", domain.NewFilesystemError("stat", child, err)
		}
		if info.Mode().IsRegular() {
			boxes = append(boxes, child)
		}
	}

	if len(boxes) != 1 {
		return "", domain.NewArtifactCountError(path, len(boxes))
	}

	return boxes[0], nil
}

func isDirectory(path string, entry os.DirEntry) (bool, error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		// Dangling links are not directories
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, domain.NewFilesystemError("stat", path, err)
	}
	return info.IsDir(), nil
}
