package handler

import (
	"net/http"

	"github.com/vfg2006/crm-intelligence-api/infrastructure/repository"
	"github.com/vfg2006/crm-intelligence-api/internal/api/handler/router"
	"github.com/vfg2006/crm-intelligence-api/internal/usecases/balancing"
	"github.com/vfg2006/crm-intelligence-api/internal/usecases/forecasting"
	"github.com/vfg2006/crm-intelligence-api/internal/usecases/profiling"
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

func Intelligence(
	loader repository.SnapshotLoader,
	intelligenceService profiling.Intelligencer,
	forecastService forecasting.Forecaster,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/intelligence/profiles",
			Method:  http.MethodGet,
			Handler: GetHealthProfiles(loader, intelligenceService),
		},
		{
			Path:    "/v1/intelligence/actions",
			Method:  http.MethodGet,
			Handler: GetDailyActions(loader, intelligenceService),
		},
		{
			Path:    "/v1/intelligence/forecast",
			Method:  http.MethodGet,
			Handler: GetMonthlyForecast(loader, forecastService),
		},
	}
}

func Balances(loader repository.SnapshotLoader, service balancing.Balancer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/balances",
			Method:  http.MethodGet,
			Handler: GetCustomerBalances(loader, service),
		},
		{
			Path:    "/v1/balances/summary",
			Method:  http.MethodGet,
			Handler: GetBalancesSummary(loader, service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
