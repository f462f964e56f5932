package stores

import (
	"context"
	"errors"
	"fmt"

	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/docstores"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// ActivityStore holds the raw events the rollups count: one User marker per
// app per client-local day, and Session records.
//
//go:generate mockgen -source=activity_store.go -destination=./mocks/activity_store_mock.go -package=mocks
type ActivityStore interface {
	// CreateUserActivity inserts the day marker if absent and reports whether it was inserted.
	CreateUserActivity(ctx context.Context, activity *models.UserActivity) (bool, error)
	// FindLatestSession returns the app's most recently active session with
	// lastActive >= sinceMillis, or ErrSessionNotFound.
	FindLatestSession(ctx context.Context, appID string, sinceMillis int64) (*models.Session, error)
	InsertSession(ctx context.Context, session *models.Session) error
	UpdateSession(ctx context.Context, session *models.Session) error
}

type activityStore struct {
	docStore  docstores.DocStore
	namespace string
}

func NewActivityStore(docStore docstores.DocStore, namespace string) ActivityStore {
	return &activityStore{docStore: docStore, namespace: namespace}
}

func (s *activityStore) CreateUserActivity(ctx context.Context, activity *models.UserActivity) (bool, error) {
	doc := &docstores.Document{
		Key: docstores.NameKey(s.namespace, models.KindUser, activity.Name()),
		Properties: docstores.Properties{
			models.FieldAppID: activity.AppID,
			models.FieldDay:   activity.Day,
		},
	}
	if _, err := s.docStore.Create(ctx, doc); err != nil {
		if errors.Is(err, docstores.ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create user activity: %w", err)
	}
	return true, nil
}

func (s *activityStore) FindLatestSession(ctx context.Context, appID string, sinceMillis int64) (*models.Session, error) {
	query := docstores.NewQuery(s.namespace, models.KindSession).
		Filter(models.FieldAppID, docstores.OpEqual, appID).
		Filter(models.FieldLastActive, docstores.OpGreaterOrEqual, sinceMillis).
		Order(models.FieldLastActive, true).
		Limit(1)
	page, err := s.docStore.Run(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	if len(page.Documents) == 0 {
		return nil, ErrSessionNotFound
	}
	return toSession(page.Documents[0])
}

func (s *activityStore) InsertSession(ctx context.Context, session *models.Session) error {
	key, err := s.docStore.Create(ctx, s.sessionDocument(session))
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	session.ID = key.Name
	return nil
}

func (s *activityStore) UpdateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		return fmt.Errorf("failed to update session: missing id")
	}
	if _, err := s.docStore.Put(ctx, s.sessionDocument(session)); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (s *activityStore) sessionDocument(session *models.Session) *docstores.Document {
	return &docstores.Document{
		Key: docstores.NameKey(s.namespace, models.KindSession, session.ID),
		Properties: docstores.Properties{
			models.FieldAppID:      session.AppID,
			models.FieldDay:        session.Day,
			models.FieldLastActive: session.LastActive,
		},
	}
}

func toSession(doc *docstores.Document) (*models.Session, error) {
	appID, ok := doc.Properties.String(models.FieldAppID)
	if !ok {
		return nil, fmt.Errorf("session %s has no %s", doc.Key, models.FieldAppID)
	}
	day, _ := doc.Properties.Int64(models.FieldDay)
	lastActive, ok := doc.Properties.Int64(models.FieldLastActive)
	if !ok {
		return nil, fmt.Errorf("session %s has no %s", doc.Key, models.FieldLastActive)
	}
	return &models.Session{ID: doc.Key.Name, AppID: appID, Day: day, LastActive: lastActive}, nil
}
