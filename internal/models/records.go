package models

import (
	"strings"
	"time"
)

const (
	KindUser    = "User"
	KindSession = "Session"

	FieldAppID      = "appId"
	FieldDay        = "day"
	FieldLastActive = "lastActive"
)

const (
	userActivityDayLayout = "20060102"
	userActivitySuffixLen = len("/" + userActivityDayLayout)
)

// Session is a run of pings from one app with gaps no longer than the
// session window. Day and LastActive are client-effective epoch millis.
type Session struct {
	ID         string
	AppID      string
	Day        int64
	LastActive int64
}

// UserActivity marks an app as active on one client-local calendar day.
type UserActivity struct {
	AppID string
	Day   int64
}

// Name is the marker's key name: the app id followed by /YYYYMMDD.
func (u *UserActivity) Name() string {
	return UserActivityKeyName(u.AppID, time.UnixMilli(u.Day))
}

// UserActivityKeyName formats the marker key from the UTC wall clock of the
// client-effective time.
func UserActivityKeyName(appID string, effective time.Time) string {
	return appID + "/" + effective.UTC().Format(userActivityDayLayout)
}

// AppIDFromUserActivityKey strips the /YYYYMMDD suffix written by
// UserActivityKeyName. Names without the suffix are returned unchanged.
func AppIDFromUserActivityKey(name string) string {
	if len(name) <= userActivitySuffixLen {
		return name
	}
	cut := len(name) - userActivitySuffixLen
	if name[cut] != '/' || strings.ContainsFunc(name[cut+1:], func(r rune) bool { return r < '0' || r > '9' }) {
		return name
	}
	return name[:cut]
}
