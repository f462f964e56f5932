package messages

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/docstores"
	"usage-analytics/internal/shared/loggers"
	"usage-analytics/internal/shared/metrics"
	"usage-analytics/internal/shared/svcerrors"
	"usage-analytics/internal/shared/validators"
	"usage-analytics/internal/stores"

	"github.com/coder/quartz"
	"github.com/samber/lo"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
	// DefaultWindow is how far back the feed reaches when since is omitted.
	DefaultWindow = 30 * 24 * time.Hour

	untilNow = "now"
)

// ListRequest carries the raw feed parameters. When Cursor is set the other
// fields are ignored and the query of the previous page continues.
type ListRequest struct {
	Cursor   string
	Since    string
	Until    string
	Limit    string
	Platform string
	Channel  string
}

// PostRequest is a new feed message. A zero Time means now.
type PostRequest struct {
	Title     string   `json:"title" validate:"required,max=256"`
	Abstract  string   `json:"abstract" validate:"required,max=2048"`
	ActionURL string   `json:"actionurl" validate:"required,url"`
	CTA       string   `json:"cta" validate:"required,max=64"`
	Target    []string `json:"target" validate:"required,min=1,dive,required"`
	Channel   string   `json:"channel" validate:"max=64"`
	Time      int64    `json:"time" validate:"min=0"`
}

//go:generate mockgen -source=message_service.go -destination=./mocks/message_service_mock.go -package=mocks
type MessageService interface {
	// List returns one page of the feed, newest first. Without a channel only
	// stable-channel messages are returned.
	List(ctx context.Context, req ListRequest) (*models.MessageList, error)
	Post(ctx context.Context, req PostRequest) (*models.Message, error)
}

// pageToken is the decoded form of the cursor handed to clients. It pins the
// resolved filter so that "now" does not move between pages.
type pageToken struct {
	Since    int64  `json:"s"`
	Until    int64  `json:"u"`
	Limit    int    `json:"l"`
	Platform string `json:"p,omitempty"`
	Channel  string `json:"c,omitempty"`
	Store    string `json:"k"`
}

type messageService struct {
	messageStore stores.MessageStore
	validate     *validators.Validate
	clock        quartz.Clock
}

func NewMessageService(messageStore stores.MessageStore, clock quartz.Clock) MessageService {
	return &messageService{
		messageStore: messageStore,
		validate:     validators.New(),
		clock:        clock,
	}
}

func (s *messageService) List(ctx context.Context, req ListRequest) (*models.MessageList, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started listing messages with since: %s, until: %s, platform: %s, channel: %s, cursor: %t",
		req.Since, req.Until, req.Platform, req.Channel, req.Cursor != "")

	token, svcErr := s.resolve(req)
	if svcErr != nil {
		metricMessageTotal.WithLabelValues(operationList, svcErr.Code).Inc()
		return nil, svcErr
	}

	filter := stores.MessageFilter{
		Since:    token.Since,
		Until:    token.Until,
		Platform: token.Platform,
		Channel:  token.Channel,
	}
	page, err := s.messageStore.List(ctx, filter, token.Limit, docstores.Cursor(token.Store))
	if err != nil {
		svcErr := errInternalMessageStoreFailed(err)
		if errors.Is(err, docstores.ErrInvalidCursor) {
			svcErr = errInvalidCursor(err)
		}
		metricMessageTotal.WithLabelValues(operationList, svcErr.Code).Inc()
		return nil, svcErr
	}

	messages := page.Messages
	if token.Channel == "" {
		messages = lo.Filter(messages, func(m *models.Message, _ int) bool { return m.Channel == "" })
	}

	cursor := ""
	if page.Cursor != "" {
		token.Store = string(page.Cursor)
		if cursor, err = encodePageToken(token); err != nil {
			svcErr := errInternalMessageStoreFailed(err)
			metricMessageTotal.WithLabelValues(operationList, svcErr.Code).Inc()
			return nil, svcErr
		}
	}

	metricMessageTotal.WithLabelValues(operationList, metrics.ValueNoError).Inc()
	logger.Debug().Msgf("listed %d messages", len(messages))
	return models.NewMessageList(messages, cursor), nil
}

func (s *messageService) resolve(req ListRequest) (pageToken, *svcerrors.ServiceError) {
	if req.Cursor != "" {
		token, err := decodePageToken(req.Cursor)
		if err != nil {
			return pageToken{}, errInvalidCursor(err)
		}
		return token, nil
	}

	token := pageToken{Limit: DefaultLimit, Platform: req.Platform, Channel: req.Channel}

	token.Until = s.clock.Now().UnixMilli()
	if req.Until != "" && req.Until != untilNow {
		until, err := strconv.ParseInt(req.Until, 10, 64)
		if err != nil {
			return pageToken{}, errValidationFailed(`invalid "until" timestamp`, err)
		}
		token.Until = until
	}

	token.Since = token.Until - DefaultWindow.Milliseconds()
	if req.Since != "" {
		since, err := strconv.ParseInt(req.Since, 10, 64)
		if err != nil {
			return pageToken{}, errValidationFailed(`invalid "since" timestamp`, err)
		}
		token.Since = since
	}
	if token.Since > token.Until {
		return pageToken{}, errValidationFailed(`"since" cannot be higher than "until"`, nil)
	}

	if req.Limit != "" {
		limit, err := strconv.Atoi(req.Limit)
		if err != nil || limit < 1 || limit > MaxLimit {
			return pageToken{}, errValidationFailed(fmt.Sprintf(`"limit" must be between 1 and %d`, MaxLimit), err)
		}
		token.Limit = limit
	}
	return token, nil
}

func (s *messageService) Post(ctx context.Context, req PostRequest) (*models.Message, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started posting message with title: %s", req.Title)

	if err := s.validate.Struct(req); err != nil {
		svcErr := errValidationFailed(validators.Describe(err), err)
		metricMessageTotal.WithLabelValues(operationPost, svcErr.Code).Inc()
		return nil, svcErr
	}

	message := &models.Message{
		Title:     req.Title,
		Abstract:  req.Abstract,
		ActionURL: req.ActionURL,
		CTA:       req.CTA,
		Target:    req.Target,
		Channel:   req.Channel,
		Time:      req.Time,
	}
	if message.Time == 0 {
		message.Time = s.clock.Now().UnixMilli()
	}

	id, err := s.messageStore.Insert(ctx, message)
	if err != nil {
		svcErr := errInternalMessageStoreFailed(err)
		metricMessageTotal.WithLabelValues(operationPost, svcErr.Code).Inc()
		return nil, svcErr
	}
	message.ID = id

	metricMessageTotal.WithLabelValues(operationPost, metrics.ValueNoError).Inc()
	logger.Info().Msgf("posted message %s", id)
	return message, nil
}

func encodePageToken(token pageToken) (string, error) {
	data, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodePageToken(cursor string) (pageToken, error) {
	data, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return pageToken{}, fmt.Errorf("failed to decode cursor: %w", err)
	}
	var token pageToken
	if err := json.Unmarshal(data, &token); err != nil {
		return pageToken{}, fmt.Errorf("failed to decode cursor: %w", err)
	}
	if token.Store == "" || token.Limit < 1 || token.Limit > MaxLimit {
		return pageToken{}, errors.New("failed to decode cursor: incomplete token")
	}
	return token, nil
}
