package modules

import (
	"github.com/exec-platform/asset-management/modules/assets"
	"github.com/exec-platform/asset-management/pkg/application"
)

// BuiltInModules is the list of modules loaded by every binary.
var BuiltInModules = []application.Module{
	assets.NewModule(),
}

func Load(app application.Application, modules ...application.Module) error {
	return application.Load(app, modules...)
}
