package response_models

import "tabi/internal/models/trip_models"

type EntryResponse struct {
	trip_models.ItineraryEntry
	Kind         trip_models.EntryKind        `json:"kind"`
	Destinations []trip_models.MapDestination `json:"destinations"`
}

type DayResponse struct {
	Date      string          `json:"date"`
	DayNumber int             `json:"day_number"`
	Entries   []EntryResponse `json:"entries"`
}

type DestinationResponse struct {
	Destinations   []trip_models.MapDestination `json:"destinations"`
	Rule           trip_models.ResolutionRule   `json:"rule"`
	SearchFallback bool                         `json:"search_fallback"`
}
