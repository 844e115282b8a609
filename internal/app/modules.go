package app

import (
	"github.com/specialistvlad/originals/internal/natives"
	"github.com/specialistvlad/originals/modules/abort"
	"github.com/specialistvlad/originals/modules/console"
	"github.com/specialistvlad/originals/modules/headers"
	"github.com/specialistvlad/originals/modules/storage"
)

// CoreModules returns the definitive list of all native modules compiled
// into the originals binary.
func CoreModules() []natives.Module {
	return []natives.Module{
		&console.Module{},
		&headers.Module{},
		&abort.Module{},
		&storage.Module{},
	}
}
