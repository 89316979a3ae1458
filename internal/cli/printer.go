package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"tabi/internal/models/trip_models"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

var (
	bold        = color.New(color.Bold)
	title       = color.New(color.Bold, color.Underline)
	faint       = color.New(color.Faint)
	reservation = color.New(color.FgHiMagenta)
	transport   = color.New(color.FgHiCyan)
)

func kindColor(kind trip_models.EntryKind) *color.Color {
	switch kind {
	case trip_models.KindReservation:
		return reservation
	case trip_models.KindTransport:
		return transport
	default:
		return color.New()
	}
}

// PrintDays writes one table per day.
func PrintDays(w io.Writer, days []trip_models.DaySchedule) {
	if len(days) == 0 {
		_, _ = faint.Fprintln(w, "no itinerary data")
		return
	}

	for _, day := range days {
		_, _ = title.Fprintf(w, "Day %d  %s\n", day.DayNumber, day.Date)

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 48
		tbl.Wrap = true
		for _, e := range day.Entries {
			c := kindColor(e.Kind())
			tbl.AddRow(e.Time, c.Sprint(e.Activity), c.Sprint(e.Type), travelLabel(e.TravelTimeMinutes), e.Note)
			for _, d := range services.ResolveDestinations(e.Activity, e.RawLink) {
				tbl.AddRow("", faint.Sprint("  "+d.Label), "", "", faint.Sprint(d.URL))
			}
		}
		_, _ = fmt.Fprintln(w, tbl)
		_, _ = fmt.Fprintln(w)
	}
}

func travelLabel(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return strconv.Itoa(minutes) + "m"
}

// PrintMorning writes the wake-up plan, or a note that nothing is left.
func PrintMorning(w io.Writer, plan *trip_models.MorningPlan, prepMinutes int) {
	if plan == nil {
		_, _ = faint.Fprintln(w, "no upcoming activity")
		return
	}

	heading := "Today"
	if plan.IsTomorrow {
		heading = "Tomorrow"
	}
	_, _ = title.Fprintf(w, "%s: %s at %s\n", heading, plan.Activity.Activity, utils.FormatClock(plan.ActivityTime))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Wake up"), utils.FormatClock(plan.WakeUpTime), faint.Sprintf("prep %dm", prepMinutes))
	tbl.AddRow(bold.Sprint("Leave"), utils.FormatClock(plan.DepartureTime), faint.Sprintf("travel %dm", plan.Activity.TravelTimeMinutes))
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(w, tbl)
}
