package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bft-labs/jsongate/internal/domain"
)

// DefaultSuffix is the enumeration filter used when none is configured.
const DefaultSuffix = ".json"

// DirSource implements ports.RecordSource over the regular files of one directory.
type DirSource struct {
	dir    string
	suffix string
}

// NewDirSource creates a source for dir. Only names ending in suffix are
// listed; an empty suffix lists every regular file.
func NewDirSource(dir, suffix string) *DirSource {
	return &DirSource{dir: dir, suffix: suffix}
}

// Dir returns the source directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// List returns the matching file names, sorted by name.
// Sub-directories and other non-regular entries are skipped.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %v", domain.ErrInvalidConfig, s.dir, err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if s.suffix != "" && !strings.HasSuffix(e.Name(), s.suffix) {
			continue
		}
		if !s.isRegular(e) {
			continue
		}
		ids = append(ids, e.Name())
	}
	return ids, nil
}

// isRegular follows symlinks so a linked file is still a candidate.
func (s *DirSource) isRegular(e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(s.dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}

// ReadItem returns the raw bytes of one item.
func (s *DirSource) ReadItem(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, domain.NewItemError("read", id, err)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewItemError("read", id, domain.ErrNotFound)
		}
		return nil, domain.NewItemError("read", id, err)
	}
	return data, nil
}
