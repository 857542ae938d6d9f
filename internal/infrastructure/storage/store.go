package storage

import (
	"fmt"
	"path"
	"strings"

	"tamilsociety/internal/domain/service"
)

var (
	_ service.FileStorage = (*LocalStore)(nil)
	_ service.FileStorage = (*GCSStore)(nil)
)

// ValidateKey rejects unknown modules and names that could escape the
// module folder.
func ValidateKey(module, name string) error {
	if !service.IsValidModule(module) {
		return fmt.Errorf("unknown module %q", module)
	}
	if name == "" || name != path.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
