package registry

import (
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/model"
)

// Role selects which half of a member a Function reference asks for.
type Role int

const (
	RoleCall Role = iota
	RoleGet
	RoleSet
)

var roleNames = [...]string{"call", "get", "set"}

// String implements fmt.Stringer.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Ref names one implementation the builder needs from the host.
type Ref struct {
	Owner  *model.Interface
	Member *model.Member
	Role   Role
}

// String renders the reference as "<impl> (<role>)".
func (r Ref) String() string {
	return r.Member.Impl + " (" + r.Role.String() + ")"
}

// Resolver is implemented by a script host. It is consulted only while a
// table is being built, before any script has run in the realm.
type Resolver interface {
	// Constructor returns the exact original constructor value for ref.
	Constructor(ref Ref) (any, error)
	// Function returns the implementation for ref. Functions for static
	// operations and namespace functions must already be bound to their
	// owner object.
	Function(ref Ref) (binding.Func, error)
}
