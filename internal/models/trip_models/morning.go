package trip_models

import "time"

// MorningPlan is the suggested wake-up and departure for the next activity.
type MorningPlan struct {
	Activity      ItineraryEntry
	ActivityTime  time.Time
	DepartureTime time.Time
	WakeUpTime    time.Time
	IsTomorrow    bool // activity falls on a different calendar day than now
}

// Countdown is the time left until the trip starts.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}
