package trip_models

import "strings"

const DefaultEntryType = "general"

// ItineraryEntry is one row of the itinerary, either from the sheet or from a day override.
// JSON keys follow the sheet/import payload shape.
type ItineraryEntry struct {
	Date              string `json:"Date"`
	Time              string `json:"Time"`
	Activity          string `json:"Activity"`
	Type              string `json:"Type"`
	Note              string `json:"Note"`
	RawLink           string `json:"Link"`
	TravelTimeMinutes int    `json:"travelTime"`
	Timestamp         int64  `json:"_timestamp"`
}

// DayOverrides maps a date key to the entries that replace that whole day.
type DayOverrides map[string][]ItineraryEntry

type EntryKind string

const (
	KindGeneral     EntryKind = "general"
	KindReservation EntryKind = "reservation"
	KindTransport   EntryKind = "transport"
)

// Kind classifies the free-text Type tag for display highlighting.
func (e ItineraryEntry) Kind() EntryKind {
	t := strings.ToLower(e.Type)
	switch {
	case strings.Contains(t, "預約") || strings.Contains(t, "reservation"):
		return KindReservation
	case strings.Contains(t, "交通") || strings.Contains(t, "transport"):
		return KindTransport
	default:
		return KindGeneral
	}
}

// TripData is the result of one remote load cycle.
type TripData struct {
	Itinerary []ItineraryEntry `json:"itinerary"`
	Packing   []PackingEntry   `json:"packing"`
}

// UndatedDayKey groups entries that carry no date.
const UndatedDayKey = "TBD"

// DaySchedule is one calendar day of the reconciled itinerary.
type DaySchedule struct {
	Date      string
	DayNumber int
	Entries   []ItineraryEntry
}
