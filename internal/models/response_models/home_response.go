package response_models

import "tabi/internal/models/trip_models"

type MorningPlanResponse struct {
	Activity      string `json:"activity"`
	ActivityTime  string `json:"activity_time"`
	WakeUp        string `json:"wake_up"`
	Departure     string `json:"departure"`
	WakeUpAt      int64  `json:"wake_up_at"`
	DepartureAt   int64  `json:"departure_at"`
	IsTomorrow    bool   `json:"is_tomorrow"`
	PrepTime      int    `json:"prep_time"`
	TravelMinutes int    `json:"travel_minutes"`
}

type HomeStatusResponse struct {
	Now       int64                 `json:"now"`
	Countdown trip_models.Countdown `json:"countdown"`
	Morning   *MorningPlanResponse  `json:"morning,omitempty"`
}

type PrepTimeResponse struct {
	Minutes int `json:"minutes"`
}
