package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bft-labs/jsongate/internal/domain"
)

const filePerm = 0o644

// DirDestination implements ports.Destination with one directory per area.
// It never creates the areas itself during a run; see CreateAreas.
type DirDestination struct {
	validDir   string
	invalidDir string
}

// NewDirDestination creates a destination writing into validDir and invalidDir.
func NewDirDestination(validDir, invalidDir string) *DirDestination {
	return &DirDestination{validDir: validDir, invalidDir: invalidDir}
}

// CheckAreas verifies that both areas exist, are directories and are distinct.
func (d *DirDestination) CheckAreas(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	validInfo, err := statArea(domain.AreaValid, d.validDir)
	if err != nil {
		return err
	}
	invalidInfo, err := statArea(domain.AreaInvalid, d.invalidDir)
	if err != nil {
		return err
	}
	if os.SameFile(validInfo, invalidInfo) {
		return fmt.Errorf("%w: valid and invalid areas are the same directory (%s)",
			domain.ErrInvalidConfig, d.validDir)
	}
	return nil
}

// CreateAreas creates both area directories if they are missing.
// It is meant for the CLI layer; the router never calls it.
func (d *DirDestination) CreateAreas() error {
	for _, dir := range []string{d.validDir, d.invalidDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create area %s: %w", dir, err)
		}
	}
	return nil
}

// WriteItem copies data into the area under id.
// Uses atomic write (write to temp file, then rename) so a reader of the
// area never observes a partial file.
func (d *DirDestination) WriteItem(ctx context.Context, area domain.Area, id string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := d.dirFor(area)
	if err != nil {
		return "", domain.NewItemError("write", id, err)
	}
	if err := checkID(id); err != nil {
		return "", domain.NewItemError("write", id, fmt.Errorf("%w: %v", domain.ErrWriteFailed, err))
	}
	if _, err := statArea(area, dir); err != nil {
		return "", domain.NewItemError("write", id, err)
	}

	path := filepath.Join(dir, id)
	if err := writeAtomic(dir, id, data); err != nil {
		return "", domain.NewItemError("write", id, fmt.Errorf("%w: %v", domain.ErrWriteFailed, err))
	}
	return path, nil
}

func (d *DirDestination) dirFor(area domain.Area) (string, error) {
	switch area {
	case domain.AreaValid:
		return d.validDir, nil
	case domain.AreaInvalid:
		return d.invalidDir, nil
	default:
		return "", fmt.Errorf("%w: unknown area %q", domain.ErrWriteFailed, area)
	}
}

func statArea(area domain.Area, dir string) (os.FileInfo, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: %s area not configured", domain.ErrDestinationUnavailable, area)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s area %s does not exist", domain.ErrDestinationUnavailable, area, dir)
		}
		return nil, fmt.Errorf("%w: %s area %s: %v", domain.ErrDestinationUnavailable, area, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s area %s is not a directory", domain.ErrDestinationUnavailable, area, dir)
	}
	return info, nil
}

func writeAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// Atomic rename
	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
