package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is wrapped by every error that makes a realm description
// unusable for building a registry.
var ErrConfig = errors.New("invalid realm configuration")

// configErrors joins collected problems into one error wrapping ErrConfig.
func configErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("%w: %s", ErrConfig, errs[0])
	}
	return fmt.Errorf("%w:\n- %s", ErrConfig, strings.Join(errs, "\n- "))
}
