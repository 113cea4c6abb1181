package api

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/hydra-janus/batch-service/internal/api/handlers"
	"github.com/hydra-janus/batch-service/internal/api/middleware"
	"github.com/hydra-janus/batch-service/internal/config"
	"github.com/hydra-janus/batch-service/internal/domain/batches"
	"github.com/hydra-janus/batch-service/internal/metrics"
	"github.com/hydra-janus/batch-service/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Route binds a mux pattern to one handler per HTTP method.
type Route struct {
	Pattern  string
	Handlers map[string]http.Handler
}

// Routes is the batch API route table.
func Routes(h *handlers.BatchesHandler) []Route {
	withBody := middleware.RequestSize(middleware.DefaultMaxBodySize)

	return []Route{
		{
			Pattern: "/batches",
			Handlers: map[string]http.Handler{
				http.MethodPost: withBody(http.HandlerFunc(h.Create)),
				http.MethodGet:  http.HandlerFunc(h.List),
				http.MethodPut:  withBody(http.HandlerFunc(h.Update)),
			},
		},
		{
			Pattern: "/batches/trainer/{id}",
			Handlers: map[string]http.Handler{
				http.MethodGet: http.HandlerFunc(h.ListByTrainer),
			},
		},
		{
			Pattern: "/batches/{id}",
			Handlers: map[string]http.Handler{
				http.MethodDelete: http.HandlerFunc(h.Delete),
			},
		},
	}
}

type RouterDeps struct {
	Config config.Config
	Logger zerolog.Logger
	Repo   storage.Repository
	Build  BuildInfo
}

// NewRouter assembles the batch API, the operational endpoints and the
// middleware chain. Background work started here stops when ctx is done.
func NewRouter(ctx context.Context, deps RouterDeps) http.Handler {
	gateway := batches.NewGateway(deps.Repo.Batches())
	batchesHandler := handlers.NewBatchesHandler(gateway, deps.Config.Environment)
	health := handlers.NewHealthChecker(deps.Repo, deps.Build.Version, deps.Build.GitCommit)

	mux := http.NewServeMux()
	for _, route := range Routes(batchesHandler) {
		mux.Handle(route.Pattern, methodMux(route.Handlers))
	}

	mux.Handle("/healthz", methodMux(map[string]http.Handler{http.MethodGet: handlers.Healthz()}))
	mux.Handle("/readyz", methodMux(map[string]http.Handler{http.MethodGet: health.Readyz()}))
	mux.Handle("/health", methodMux(map[string]http.Handler{http.MethodGet: health.Health()}))
	mux.Handle("/version", methodMux(map[string]http.Handler{http.MethodGet: VersionHandler(deps.Build)}))
	mux.Handle("/openapi.json", methodMux(map[string]http.Handler{http.MethodGet: OpenAPIHandler()}))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	var handler http.Handler = mux
	handler = middleware.RateLimit(ctx, deps.Config.RateLimit)(handler)
	handler = middleware.CORS(deps.Config.CORS)(handler)
	handler = middleware.SecurityHeaders(deps.Config.Environment == "production")(handler)
	handler = middleware.RequestLogging(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(deps.Logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	allow := allowedMethods(handlers)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allow)
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
