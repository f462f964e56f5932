package aggregators

import (
	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/docstores"

	"github.com/samber/lo"
)

// ComputationStrategy turns the raw event keys of one period into the
// aggregate count for its scope.
//
//go:generate mockgen -source=computation_strategy.go -destination=./mocks/computation_strategy_mock.go -package=mocks
type ComputationStrategy interface {
	// Kind is the raw event kind to scan.
	Kind() string
	Compute(keys []docstores.Key) int64
}

type countDistinctApps struct{}

// NewCountDistinctApps counts the distinct apps behind a set of user
// activity markers.
func NewCountDistinctApps() ComputationStrategy {
	return countDistinctApps{}
}

func (countDistinctApps) Kind() string {
	return models.KindUser
}

func (countDistinctApps) Compute(keys []docstores.Key) int64 {
	appIDs := lo.Map(keys, func(key docstores.Key, _ int) string {
		return models.AppIDFromUserActivityKey(key.Name)
	})
	return int64(len(lo.Uniq(appIDs)))
}

type countRecords struct{}

// NewCountRecords counts sessions.
func NewCountRecords() ComputationStrategy {
	return countRecords{}
}

func (countRecords) Kind() string {
	return models.KindSession
}

func (countRecords) Compute(keys []docstores.Key) int64 {
	return int64(len(keys))
}

// DefaultStrategies maps every scope to its strategy.
func DefaultStrategies() map[models.Scope]ComputationStrategy {
	return map[models.Scope]ComputationStrategy{
		models.ScopeUsers:    NewCountDistinctApps(),
		models.ScopeSessions: NewCountRecords(),
	}
}
