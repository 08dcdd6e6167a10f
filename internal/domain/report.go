package domain

import "time"

// DailyObservation is the porter's free-text note for one calendar date.
// There is at most one per date; saving again overwrites both fields.
type DailyObservation struct {
	Date        time.Time `json:"date"`
	Observation string    `json:"observation"`
	PorterName  string    `json:"porter_name"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DailyReport is the composed gate activity for one calendar date: every
// visitor who entered, every vehicle that departed, every appointment booked
// for the day, and the porter's observation. It is assembled by value at
// query time and holds no references into the store.
type DailyReport struct {
	Date        string      `json:"date"`
	Visitors    []Visitor   `json:"visitors"`
	Fleet       []FleetTrip `json:"fleet"`
	Schedules   []Schedule  `json:"schedules"`
	Observation string      `json:"observation"`
	PorterName  string      `json:"porter_name"`
}

// DashboardStats are the current-moment gate counters. They are computed
// fresh on every call; the front end polls, nothing is cached.
type DashboardStats struct {
	ActiveVisitors int64 `json:"active_visitors"`
	TodayVisitors  int64 `json:"today_visitors"`
	TodaySchedules int64 `json:"today_schedules"`
	ActiveTrips    int64 `json:"active_trips"`
	TodayTrips     int64 `json:"today_trips"`
}
