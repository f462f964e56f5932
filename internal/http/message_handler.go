package http

import (
	"net/http"

	"usage-analytics/internal/messages"
)

const (
	paramCursor   = "cursor"
	paramSince    = "since"
	paramUntil    = "until"
	paramLimit    = "limit"
	paramPlatform = "platform"
	paramChannel  = "channel"
)

type messageHandler struct {
	messageService messages.MessageService
}

func NewMessageHandler(messageService messages.MessageService) AppHttpHandler {
	return &messageHandler{
		messageService: messageService,
	}
}

// Handle processes GET /info/messages?cursor=&since=&until=&limit=&platform=&channel=.
func (h *messageHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	list, err := h.messageService.List(r.Context(), messages.ListRequest{
		Cursor:   queryParam(r, paramCursor),
		Since:    queryParam(r, paramSince),
		Until:    queryParam(r, paramUntil),
		Limit:    queryParam(r, paramLimit),
		Platform: queryParam(r, paramPlatform),
		Channel:  queryParam(r, paramChannel),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, list)
	return nil
}
