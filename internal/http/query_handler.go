package http

import (
	"net/http"

	"usage-analytics/internal/queries"

	"github.com/go-chi/chi/v5"
)

type queryHandler struct {
	queryService queries.QueryService
}

func NewQueryHandler(queryService queries.QueryService) AppHttpHandler {
	return &queryHandler{
		queryService: queryService,
	}
}

// Handle processes GET /analytics/query/{type}/{scope}?date= requests.
func (h *queryHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.queryService.Query(r.Context(), queries.QueryRequest{
		PeriodType: chi.URLParam(r, paramType),
		Scope:      chi.URLParam(r, paramScope),
		Date:       queryParam(r, paramDate),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, result)
	return nil
}

type customQueryHandler struct {
	queryService queries.QueryService
}

func NewCustomQueryHandler(queryService queries.QueryService) AppHttpHandler {
	return &customQueryHandler{
		queryService: queryService,
	}
}

// Handle processes GET /analytics/query/custom/{scope}?start=&end= requests.
func (h *customQueryHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.queryService.QueryCustom(r.Context(), queries.CustomQueryRequest{
		Scope: chi.URLParam(r, paramScope),
		Start: queryParam(r, paramStart),
		End:   queryParam(r, paramEnd),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, result)
	return nil
}
