package router

import (
	"github.com/cadastrolabs/cadastro-api/internal/application"
	"github.com/cadastrolabs/cadastro-api/internal/container"
	pginfra "github.com/cadastrolabs/cadastro-api/internal/infrastructure/postgres"
	"github.com/cadastrolabs/cadastro-api/internal/infrastructure/viacep"
	handlers "github.com/cadastrolabs/cadastro-api/internal/interface/http"
	"github.com/cadastrolabs/cadastro-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	repo := pginfra.NewUserRepository(container.GetPGPool())

	authSvc := application.NewAuthService(repo, jwt, logger)
	twoFactorSvc := application.NewTwoFactorService(repo, jwt, container.GetTOTP(), logger)
	userSvc := application.NewUserService(repo, container.GetGCS(), cfg.GCSBucket, logger)

	cepClient := viacep.NewClient()
	if cfg.CEPBaseURL != "" {
		cepClient.BaseURL = cfg.CEPBaseURL
	}
	cepSvc := application.NewCepService(cepClient, container.GetRedis(), logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewTwoFactorModule(handlers.NewTwoFactorHandler(twoFactorSvc, logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(userSvc, logger), jwt))
	r.Add(modules.NewCepModule(handlers.NewCepHandler(cepSvc, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
