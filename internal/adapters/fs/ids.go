package fs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// checkID rejects identifiers that are not a plain file name, so an item can
// never be read from or written outside its directory.
func checkID(id string) error {
	switch {
	case id == "", id == ".", id == "..":
		return fmt.Errorf("invalid item id %q", id)
	case strings.ContainsAny(id, `/\`), id != filepath.Base(id):
		return fmt.Errorf("item id %q must be a plain file name", id)
	case strings.ContainsRune(id, 0):
		return fmt.Errorf("item id %q contains a NUL byte", id)
	}
	return nil
}
