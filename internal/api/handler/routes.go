package handler

import (
	"net/http"

	"github.com/alfiomartini/nextjs-official-tutorial/internal/api/handler/router"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/usecases/seeding"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Seed(seeder seeding.Seeder, syncService SeedScheduler) []router.Route {
	return []router.Route{
		{
			Path:    "/seed",
			Method:  http.MethodGet,
			Handler: SeedDatabase(seeder),
		},
		{
			Path:    "/v1/seed/status",
			Method:  http.MethodGet,
			Handler: GetSeedStatus(seeder, syncService),
		},
		{
			Path:    "/v1/seed/run",
			Method:  http.MethodPost,
			Handler: RunSeed(syncService),
		},
	}
}
