package http

import (
	"net/http"
	"strings"

	"usage-analytics/internal/aggregators"
	"usage-analytics/internal/messages"
	"usage-analytics/internal/queries"
	"usage-analytics/internal/recorders"
	"usage-analytics/internal/schedulers"
	"usage-analytics/internal/shared/loggers"
	"usage-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// infoOrigins may read the message feed from a browser.
var infoOrigins = []string{"http://127.0.0.1", "http://localhost"}

// Services are the handlers' collaborators.
type Services struct {
	RollupService   aggregators.RollupService
	RollupScheduler schedulers.RollupScheduler
	SessionRecorder recorders.SessionRecorder
	QueryService    queries.QueryService
	MessageService  messages.MessageService
}

// NewRouter creates and configures the HTTP router. recordPerMinute limits
// pings per client IP; zero disables the limit.
func NewRouter(services Services, recordPerMinute int, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	analyzerHandler := NewAnalyzerHandler(services.RollupService)
	taskHandler := NewTaskHandler(services.RollupScheduler)
	recordHandler := NewRecordHandler(services.SessionRecorder)
	queryHandler := NewQueryHandler(services.QueryService)
	customQueryHandler := NewCustomQueryHandler(services.QueryService)
	messageHandler := NewMessageHandler(services.MessageService)

	// Routes
	router.Get("/analyzer/{type}/{scope}", errorHandlingAdapter(analyzerHandler))
	router.Get("/tasks/{type}/{scope}", errorHandlingAdapter(taskHandler))
	router.Route("/analytics", func(r chi.Router) {
		r.With(mwRateLimit(recordPerMinute)).Post("/record", errorHandlingAdapter(recordHandler))
		r.Get("/query/custom/{scope}", errorHandlingAdapter(customQueryHandler))
		r.Get("/query/{type}/{scope}", errorHandlingAdapter(queryHandler))
	})
	router.Route("/info", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowOriginFunc: allowInfoOrigin,
			AllowedMethods:  []string{http.MethodGet, http.MethodHead},
		}))
		r.Get("/messages", errorHandlingAdapter(messageHandler))
	})
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}

func allowInfoOrigin(_ *http.Request, origin string) bool {
	for _, prefix := range infoOrigins {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}
