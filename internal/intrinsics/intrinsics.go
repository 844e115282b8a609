// Package intrinsics ships the realm description of the script engine's own
// built-ins. Their implementations are never written in Go: the realm
// captures them from the engine while it is still untampered.
package intrinsics

import (
	"context"
	"embed"

	"github.com/specialistvlad/originals/internal/model"
)

//go:embed *.hcl
var manifests embed.FS

// Description loads the embedded intrinsic manifests.
func Description(ctx context.Context) (*model.Description, error) {
	return model.LoadDescription(ctx, manifests)
}
