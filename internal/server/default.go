package server

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/exec-platform/asset-management/pkg/application"
	"github.com/exec-platform/asset-management/pkg/configuration"
	"github.com/exec-platform/asset-management/pkg/constants"
	"github.com/exec-platform/asset-management/pkg/httpapi"
	"github.com/exec-platform/asset-management/pkg/metrics"
	"github.com/exec-platform/asset-management/pkg/middleware"
	"github.com/exec-platform/asset-management/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the HTTP server with the standard middleware stack.
// The tenant gate is not part of the global stack: API controllers apply
// it on their own subrouters, so health and metrics endpoints answer
// without a tenant header.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.Cors(options.Configuration.Origin),
		middleware.RequestParams(),
	)

	app.RegisterControllers(
		server.NewHealthController(options.Pool),
	)
	if options.Configuration.Prometheus.Enabled {
		app.RegisterControllers(
			metrics.NewPrometheusController(options.Configuration.Prometheus.Path),
		)
	}

	return server.NewHTTPServer(
		app,
		httpapi.NotFound(),
		httpapi.MethodNotAllowed(),
	), nil
}
