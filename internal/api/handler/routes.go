package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/competitor-intel-api/internal/api/handler/router"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/insighting"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/targeting"
	"github.com/vfg2006/competitor-intel-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Metrics(service insighting.MetricsReader) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/metrics/summary",
			Method:      http.MethodGet,
			Handler:     GetSummaryMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/metrics/daily",
			Method:      http.MethodGet,
			Handler:     GetDailyMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Targeting(service targeting.IntelReader) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/targeting",
			Method:      http.MethodGet,
			Handler:     ListTargetingIntel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/targeting",
			Method:      http.MethodPost,
			Handler:     CreateTargetingIntel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/targeting/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestTargetingIntel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/targeting/search",
			Method:      http.MethodGet,
			Handler:     SearchTargetingIntel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/competitors/:id/targeting",
			Method:      http.MethodGet,
			Handler:     GetCompetitorTargetingIntel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Status(services StatusServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/status",
			Method:      http.MethodGet,
			Handler:     GetStoreStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/status/database",
			Method:      http.MethodGet,
			Handler:     GetDatabaseStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/status/targeting",
			Method:      http.MethodGet,
			Handler:     GetTargetingStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/status/probe",
			Method:      http.MethodPost,
			Handler:     RunStatusProbe(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
