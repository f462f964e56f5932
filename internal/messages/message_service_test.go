package messages_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"usage-analytics/internal/messages"
	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/docstores"
	"usage-analytics/internal/shared/svcerrors"
	"usage-analytics/internal/stores"
	storemocks "usage-analytics/internal/stores/mocks"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

type messageFixture struct {
	service      messages.MessageService
	messageStore *storemocks.MockMessageStore
}

func newMessageFixture(t *testing.T, ctrl *gomock.Controller) *messageFixture {
	messageStore := storemocks.NewMockMessageStore(ctrl)
	clock := quartz.NewMock(t)
	clock.Set(now)
	return &messageFixture{
		service:      messages.NewMessageService(messageStore, clock),
		messageStore: messageStore,
	}
}

func requireServiceError(t *testing.T, err error, code, category string) {
	t.Helper()
	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, code, svcErr.Code)
	assert.Equal(t, category, svcErr.Category)
}

func TestList_Defaults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMessageFixture(t, ctrl)
	ctx := context.Background()

	fixture.messageStore.EXPECT().
		List(ctx, stores.MessageFilter{
			Since: now.Add(-messages.DefaultWindow).UnixMilli(),
			Until: now.UnixMilli(),
		}, messages.DefaultLimit, docstores.Cursor("")).
		Return(&stores.MessagePage{Messages: []*models.Message{
			{ID: "m2", Title: "stable", Time: 200},
			{ID: "m1", Title: "beta only", Channel: "beta", Time: 100},
		}}, nil)

	list, err := fixture.service.List(ctx, messages.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ArcInfo#MessagesList", list.Kind)
	require.Len(t, list.Data, 1, "channel messages are hidden without a channel")
	assert.Equal(t, "m2", list.Data[0].ID)
	assert.Empty(t, list.Cursor)
}

func TestList_PassesFilters(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMessageFixture(t, ctrl)
	ctx := context.Background()

	fixture.messageStore.EXPECT().
		List(ctx, stores.MessageFilter{Since: 100, Until: now.UnixMilli(), Platform: "linux", Channel: "beta"}, 10, docstores.Cursor("")).
		Return(&stores.MessagePage{Messages: []*models.Message{{ID: "m1", Channel: "beta", Time: 150}}}, nil)

	list, err := fixture.service.List(ctx, messages.ListRequest{Since: "100", Until: "now", Limit: "10", Platform: "linux", Channel: "beta"})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, int64(150), list.Since)
	assert.Equal(t, int64(150), list.Until)
}

func TestList_CursorPinsTheQuery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMessageFixture(t, ctrl)
	ctx := context.Background()
	filter := stores.MessageFilter{Since: 10, Until: 500, Platform: "macos"}

	gomock.InOrder(
		fixture.messageStore.EXPECT().
			List(ctx, filter, 1, docstores.Cursor("")).
			Return(&stores.MessagePage{Messages: []*models.Message{{ID: "m2", Time: 300}}, Cursor: "store-next"}, nil),
		fixture.messageStore.EXPECT().
			List(ctx, filter, 1, docstores.Cursor("store-next")).
			Return(&stores.MessagePage{Messages: []*models.Message{{ID: "m1", Time: 200}}}, nil),
	)

	first, err := fixture.service.List(ctx, messages.ListRequest{Since: "10", Until: "500", Limit: "1", Platform: "macos"})
	require.NoError(t, err)
	require.NotEmpty(t, first.Cursor)

	// Filter parameters next to a cursor are ignored.
	second, err := fixture.service.List(ctx, messages.ListRequest{Cursor: first.Cursor, Platform: "windows"})
	require.NoError(t, err)
	require.Len(t, second.Data, 1)
	assert.Equal(t, "m1", second.Data[0].ID)
	assert.Empty(t, second.Cursor)
}

func TestList_ErrValidationFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      messages.ListRequest
		wantCode string
		wantMsg  string
	}{
		{name: "invalid since", req: messages.ListRequest{Since: "yesterday"}, wantCode: "MSG_1000", wantMsg: `invalid "since" timestamp`},
		{name: "invalid until", req: messages.ListRequest{Until: "soon"}, wantCode: "MSG_1000", wantMsg: `invalid "until" timestamp`},
		{name: "since after until", req: messages.ListRequest{Since: "200", Until: "100"}, wantCode: "MSG_1000", wantMsg: `"since" cannot be higher than "until"`},
		{name: "zero limit", req: messages.ListRequest{Limit: "0"}, wantCode: "MSG_1000", wantMsg: `"limit" must be between 1 and 500`},
		{name: "limit too large", req: messages.ListRequest{Limit: "501"}, wantCode: "MSG_1000", wantMsg: `"limit" must be between 1 and 500`},
		{name: "garbage cursor", req: messages.ListRequest{Cursor: "%%%"}, wantCode: "MSG_1001", wantMsg: "invalid cursor"},
		{name: "empty token", req: messages.ListRequest{Cursor: "e30"}, wantCode: "MSG_1001", wantMsg: "invalid cursor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fixture := newMessageFixture(t, ctrl)
			_, err := fixture.service.List(context.Background(), tt.req)
			requireServiceError(t, err, tt.wantCode, "invalid_argument")
			svcErr, _ := svcerrors.AsServiceError(err)
			assert.Equal(t, tt.wantMsg, svcErr.Message)
		})
	}
}

func TestList_ErrInternal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMessageFixture(t, ctrl)
	fixture.messageStore.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	_, err := fixture.service.List(context.Background(), messages.ListRequest{})
	requireServiceError(t, err, "MSG_9000", "internal")
}

func TestList_StaleStoreCursor(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMessageFixture(t, ctrl)
	fixture.messageStore.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("failed to list messages: %w", docstores.ErrInvalidCursor))

	// {"s":0,"u":1,"l":1,"k":"x"}
	_, err := fixture.service.List(context.Background(), messages.ListRequest{Cursor: "eyJzIjowLCJ1IjoxLCJsIjoxLCJrIjoieCJ9"})
	requireServiceError(t, err, "MSG_1001", "invalid_argument")
}

func TestPost(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMessageFixture(t, ctrl)
	ctx := context.Background()

	fixture.messageStore.EXPECT().
		Insert(ctx, &models.Message{
			Title:     "Release 2.0",
			Abstract:  "What's new",
			ActionURL: "https://example.com/release",
			CTA:       "Read more",
			Target:    []string{"linux"},
			Time:      now.UnixMilli(),
		}).
		Return("01HRZ", nil)

	message, err := fixture.service.Post(ctx, messages.PostRequest{
		Title:     "Release 2.0",
		Abstract:  "What's new",
		ActionURL: "https://example.com/release",
		CTA:       "Read more",
		Target:    []string{"linux"},
	})
	require.NoError(t, err)
	assert.Equal(t, "01HRZ", message.ID)
	assert.Equal(t, now.UnixMilli(), message.Time)
}

func TestPost_ErrValidationFailed(t *testing.T) {
	t.Parallel()

	valid := messages.PostRequest{
		Title:     "t",
		Abstract:  "a",
		ActionURL: "https://example.com",
		CTA:       "c",
		Target:    []string{"linux"},
	}

	tests := []struct {
		name    string
		mutate  func(req *messages.PostRequest)
		wantMsg string
	}{
		{name: "missing title", mutate: func(req *messages.PostRequest) { req.Title = "" }, wantMsg: "title is required"},
		{name: "missing target", mutate: func(req *messages.PostRequest) { req.Target = nil }, wantMsg: "target is required"},
		{name: "empty platform", mutate: func(req *messages.PostRequest) { req.Target = []string{""} }, wantMsg: "target[0] is required"},
		{name: "bad url", mutate: func(req *messages.PostRequest) { req.ActionURL = "not a url" }, wantMsg: "actionurl failed on url"},
		{name: "negative time", mutate: func(req *messages.PostRequest) { req.Time = -1 }, wantMsg: "time must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fixture := newMessageFixture(t, ctrl)
			req := valid
			tt.mutate(&req)

			_, err := fixture.service.Post(context.Background(), req)
			requireServiceError(t, err, "MSG_1000", "invalid_argument")
			svcErr, _ := svcerrors.AsServiceError(err)
			assert.Equal(t, tt.wantMsg, svcErr.Message)
		})
	}
}

func TestListAndPost_AgainstSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	docStore, err := docstores.NewSQLiteStore(ctx, ":memory:")
	require.NoError(t, err)
	defer docStore.Close()

	clock := quartz.NewMock(t)
	clock.Set(now)
	service := messages.NewMessageService(stores.NewMessageStore(docStore, "ArcInfo"), clock)

	for i := 1; i <= 3; i++ {
		_, err := service.Post(ctx, messages.PostRequest{
			Title:     fmt.Sprintf("m%d", i),
			Abstract:  "a",
			ActionURL: "https://example.com",
			CTA:       "c",
			Target:    []string{"linux"},
			Time:      now.Add(-time.Duration(i) * time.Hour).UnixMilli(),
		})
		require.NoError(t, err)
	}

	var titles []string
	req := messages.ListRequest{Limit: "2", Platform: "linux"}
	for pages := 0; ; pages++ {
		require.Less(t, pages, 3, "pagination must terminate")
		list, err := service.List(ctx, req)
		require.NoError(t, err)
		for _, m := range list.Data {
			titles = append(titles, m.Title)
		}
		if list.Cursor == "" {
			break
		}
		req = messages.ListRequest{Cursor: list.Cursor}
	}
	assert.Equal(t, []string{"m1", "m2", "m3"}, titles)
}
