package models

import (
	"fmt"
	"time"
)

type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

var PeriodTypes = []PeriodType{PeriodDaily, PeriodWeekly, PeriodMonthly}

func NewPeriodTypeFromString(s string) (PeriodType, error) {
	switch p := PeriodType(s); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period type %q, accepted values are daily, weekly and monthly", s)
	}
}

// KeyLayout is the time layout of the canonical aggregate key for the period.
func (p PeriodType) KeyLayout() string {
	switch p {
	case PeriodDaily, PeriodWeekly:
		return DayLayout
	case PeriodMonthly:
		return "2006-01"
	default:
		panic(fmt.Sprintf("invalid PeriodType: %q", p))
	}
}

func (p PeriodType) FormatKey(t time.Time) string {
	return t.Format(p.KeyLayout())
}

func (p PeriodType) title() string {
	switch p {
	case PeriodDaily:
		return "Daily"
	case PeriodWeekly:
		return "Weekly"
	case PeriodMonthly:
		return "Monthly"
	default:
		panic(fmt.Sprintf("invalid PeriodType: %q", p))
	}
}

type Scope string

const (
	ScopeUsers    Scope = "users"
	ScopeSessions Scope = "sessions"
)

var Scopes = []Scope{ScopeUsers, ScopeSessions}

func NewScopeFromString(s string) (Scope, error) {
	switch scope := Scope(s); scope {
	case ScopeUsers, ScopeSessions:
		return scope, nil
	default:
		return "", fmt.Errorf("unknown scope %q, accepted values are users and sessions", s)
	}
}

// MetricField is the aggregate record property holding the count.
func (s Scope) MetricField() string {
	return string(s)
}

func (s Scope) title() string {
	switch s {
	case ScopeUsers:
		return "Users"
	case ScopeSessions:
		return "Sessions"
	default:
		panic(fmt.Sprintf("invalid Scope: %q", s))
	}
}

// AggregateGroup is one of the six (period, scope) combinations. Its name is
// the kind under which the group's aggregate records are stored.
type AggregateGroup struct {
	Period PeriodType
	Scope  Scope
}

func NewAggregateGroup(period PeriodType, scope Scope) AggregateGroup {
	return AggregateGroup{Period: period, Scope: scope}
}

// Name returns DailyUsers, WeeklySessions and so on.
func (g AggregateGroup) Name() string {
	return g.Period.title() + g.Scope.title()
}

// Daily returns the daily group of the same scope.
func (g AggregateGroup) Daily() AggregateGroup {
	return AggregateGroup{Period: PeriodDaily, Scope: g.Scope}
}

func (g AggregateGroup) String() string {
	return g.Name()
}
