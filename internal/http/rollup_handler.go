package http

import (
	"net/http"

	"usage-analytics/internal/aggregators"
	"usage-analytics/internal/schedulers"

	"github.com/go-chi/chi/v5"
)

const (
	paramType  = "type"
	paramScope = "scope"
	paramDate  = "date"
	paramStart = "start"
	paramEnd   = "end"
)

type analyzerHandler struct {
	rollupService aggregators.RollupService
}

func NewAnalyzerHandler(rollupService aggregators.RollupService) AppHttpHandler {
	return &analyzerHandler{
		rollupService: rollupService,
	}
}

// Handle processes GET /analyzer/{type}/{scope}?date= requests. 205 means
// the period was computed before.
func (h *analyzerHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	_, err := h.rollupService.Rollup(r.Context(), aggregators.RollupRequest{
		PeriodType: chi.URLParam(r, paramType),
		Scope:      chi.URLParam(r, paramScope),
		Date:       queryParam(r, paramDate),
	})
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

type taskHandler struct {
	rollupScheduler schedulers.RollupScheduler
}

func NewTaskHandler(rollupScheduler schedulers.RollupScheduler) AppHttpHandler {
	return &taskHandler{
		rollupScheduler: rollupScheduler,
	}
}

// Handle processes GET /tasks/{type}/{scope}: the analyzer for yesterday.
func (h *taskHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	_, err := h.rollupScheduler.Trigger(r.Context(), chi.URLParam(r, paramType), chi.URLParam(r, paramScope))
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
