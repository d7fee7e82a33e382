package handler

import (
	"net/http"

	"github.com/vfg2006/order-forecast-api/internal/api/handler/router"
	"github.com/vfg2006/order-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/order-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/order-forecast-api/internal/usecases/reporting"
	"github.com/vfg2006/order-forecast-api/pkg/middleware"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CustomerForecasts(service forecasting.Bundler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/customer-forecasts",
			Method:      http.MethodGet,
			Handler:     ListCustomerForecasts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customer-forecasts/:id",
			Method:      http.MethodPatch,
			Handler:     UpdateForecast(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/customer-forecasts/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteForecast(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func ForecastSummary(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/forecasts/summary",
			Method:      http.MethodGet,
			Handler:     GetForecastSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func ForecastJobs(services ForecastJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/forecasts/run",
			Method:      http.MethodPost,
			Handler:     RunForecastJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/forecasts/jobs/status",
			Method:      http.MethodGet,
			Handler:     GetForecastJobStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
