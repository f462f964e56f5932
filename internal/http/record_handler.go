package http

import (
	"encoding/json"
	"io"
	"net/http"

	"usage-analytics/internal/recorders"
)

const maxRecordBodyBytes = 4 * 1024

type recordRequest struct {
	AppID string `json:"aid"`
	TZ    *int   `json:"tz"`
}

type recordHandler struct {
	sessionRecorder recorders.SessionRecorder
}

func NewRecordHandler(sessionRecorder recorders.SessionRecorder) AppHttpHandler {
	return &recordHandler{
		sessionRecorder: sessionRecorder,
	}
}

// Handle processes POST /analytics/record. 204 means a new session was
// opened and 205 that an open one was extended.
func (h *recordHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var req recordRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRecordBodyBytes)).Decode(&req); err != nil {
		return errInvalidBody("invalid json body", err)
	}
	if req.TZ == nil {
		return errInvalidBody("tz is required", nil)
	}

	result, err := h.sessionRecorder.Record(r.Context(), req.AppID, *req.TZ)
	if err != nil {
		return err
	}

	if result.Created {
		w.WriteHeader(http.StatusNoContent)
	} else {
		w.WriteHeader(http.StatusResetContent)
	}
	return nil
}
