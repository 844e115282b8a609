package dispatch

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/originals/internal/binding"
)

// ErrInvocation is matched by every *InvocationError.
var ErrInvocation = errors.New("no original binding to invoke")

// Operation names the entry point a request came through.
type Operation string

const (
	OpCallStatic Operation = "callOriginalStaticMethod"
	OpCallMethod Operation = "callOriginalMethod"
)

// InvocationError reports a call request that has no matching binding: the
// name is unknown, hidden in this realm kind, registered under another
// category, or the target carries no brand.
type InvocationError struct {
	Op    Operation
	Owner string
	Brand binding.Brand
	Name  string
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	switch {
	case e.Op == OpCallStatic:
		return fmt.Sprintf("%s: %s.%s is not an original static method", e.Op, e.Owner, e.Name)
	case e.Brand == binding.NotBranded:
		return fmt.Sprintf("%s: %q is not an original method of the target", e.Op, e.Name)
	default:
		return fmt.Sprintf("%s: %q is not an original method of %s", e.Op, e.Name, e.Brand)
	}
}

// Is makes errors.Is(err, ErrInvocation) hold.
func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocation
}
