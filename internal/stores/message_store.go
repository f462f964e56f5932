package stores

import (
	"context"
	"fmt"

	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/docstores"
)

// MessageFilter selects feed messages with Since <= time <= Until. An empty
// Platform matches every target list.
type MessageFilter struct {
	Since    int64
	Until    int64
	Platform string
	Channel  string
}

// MessagePage is one page of messages, newest first. Cursor is empty on the
// last page.
type MessagePage struct {
	Messages []*models.Message
	Cursor   docstores.Cursor
}

//go:generate mockgen -source=message_store.go -destination=./mocks/message_store_mock.go -package=mocks
type MessageStore interface {
	// List returns up to limit messages matching filter, continuing from cursor.
	List(ctx context.Context, filter MessageFilter, limit int, cursor docstores.Cursor) (*MessagePage, error)
	// Insert stores message under a generated id and returns it.
	Insert(ctx context.Context, message *models.Message) (string, error)
}

type messageStore struct {
	docStore  docstores.DocStore
	namespace string
}

func NewMessageStore(docStore docstores.DocStore, namespace string) MessageStore {
	return &messageStore{docStore: docStore, namespace: namespace}
}

func (s *messageStore) List(ctx context.Context, filter MessageFilter, limit int, cursor docstores.Cursor) (*MessagePage, error) {
	query := docstores.NewQuery(s.namespace, models.KindMessage).
		Filter(models.FieldTime, docstores.OpGreaterOrEqual, filter.Since).
		Filter(models.FieldTime, docstores.OpLessOrEqual, filter.Until).
		Order(models.FieldTime, true).
		Limit(limit)
	if filter.Platform != "" {
		query = query.Filter(models.FieldTarget, docstores.OpContains, filter.Platform)
	}
	if filter.Channel != "" {
		query = query.Filter(models.FieldChannel, docstores.OpEqual, filter.Channel)
	}
	if cursor != "" {
		query = query.Start(cursor)
	}

	page, err := s.docStore.Run(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*models.Message, 0, len(page.Documents))
	for _, doc := range page.Documents {
		message, err := toMessage(doc)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	result := &MessagePage{Messages: messages}
	if page.MoreResults == docstores.MoreResultsAfterLimit {
		result.Cursor = page.EndCursor
	}
	return result, nil
}

func (s *messageStore) Insert(ctx context.Context, message *models.Message) (string, error) {
	props := docstores.Properties{
		models.FieldTitle:     message.Title,
		models.FieldAbstract:  message.Abstract,
		models.FieldActionURL: message.ActionURL,
		models.FieldCTA:       message.CTA,
		models.FieldTarget:    message.Target,
		models.FieldTime:      message.Time,
	}
	if message.Channel != "" {
		props[models.FieldChannel] = message.Channel
	}

	key, err := s.docStore.Put(ctx, &docstores.Document{
		Key:        docstores.IncompleteKey(s.namespace, models.KindMessage),
		Properties: props,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert message: %w", err)
	}
	return key.Name, nil
}

func toMessage(doc *docstores.Document) (*models.Message, error) {
	t, ok := doc.Properties.Int64(models.FieldTime)
	if !ok {
		return nil, fmt.Errorf("message %s has no %s", doc.Key, models.FieldTime)
	}
	target, _ := doc.Properties.Strings(models.FieldTarget)
	title, _ := doc.Properties.String(models.FieldTitle)
	abstract, _ := doc.Properties.String(models.FieldAbstract)
	actionURL, _ := doc.Properties.String(models.FieldActionURL)
	cta, _ := doc.Properties.String(models.FieldCTA)
	channel, _ := doc.Properties.String(models.FieldChannel)

	return &models.Message{
		ID:        doc.Key.Name,
		Title:     title,
		Abstract:  abstract,
		ActionURL: actionURL,
		CTA:       cta,
		Target:    target,
		Channel:   channel,
		Time:      t,
	}, nil
}
