package models

// AggregateRecord is the persisted count for one period of a group. Key is the
// canonical period key and Day the period start in epoch millis.
type AggregateRecord struct {
	Group AggregateGroup
	Key   string
	Day   int64
	Count int64
}
