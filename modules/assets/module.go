package assets

import (
	"github.com/exec-platform/asset-management/modules/assets/infrastructure/messaging"
	"github.com/exec-platform/asset-management/modules/assets/infrastructure/persistence"
	"github.com/exec-platform/asset-management/modules/assets/presentation/controllers"
	"github.com/exec-platform/asset-management/modules/assets/services"
	"github.com/exec-platform/asset-management/pkg/application"
	"github.com/exec-platform/asset-management/pkg/configuration"
	"github.com/exec-platform/asset-management/pkg/outbox"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	app.Migrations().RegisterSchema(persistence.SchemaFS, persistence.SchemaDir)

	repository := persistence.NewAssetRepository()
	emitter := messaging.NewOutboxEventEmitter(
		outbox.NewPublisher(),
		conf.Events.ApplicationInstanceID,
		conf.Events.SubjectID,
	)

	app.RegisterServices(
		services.NewAssetService(
			repository,
			services.NewPromotionPropagator(repository),
			emitter,
			app.EventPublisher(),
		),
	)

	app.RegisterControllers(
		controllers.NewAssetsController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "assets"
}
