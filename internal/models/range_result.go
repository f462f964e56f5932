package models

const resultKindPrefix = "UsageAnalytics#"

type DailyItem struct {
	Day   string `json:"day"`
	Value int64  `json:"value"`
}

// RangeResult is the query response for a period or a custom range. Kind
// identifies the (period, scope) pair; Items is the per-day breakdown and is
// omitted for daily results.
type RangeResult struct {
	Kind     string      `json:"kind"`
	StartDay string      `json:"startDay"`
	EndDay   string      `json:"endDay"`
	Result   int64       `json:"result"`
	Items    []DailyItem `json:"items,omitempty"`
}

func ResultKind(group AggregateGroup) string {
	return resultKindPrefix + group.Name()
}

func CustomRangeKind(scope Scope) string {
	return resultKindPrefix + "CustomRange" + scope.title()
}
