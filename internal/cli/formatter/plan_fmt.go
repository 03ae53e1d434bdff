package formatter

import (
	"fmt"
	"strings"
	"time"

	"pluvio/internal/contract"
	"pluvio/internal/domain"
)

// FormatPlan renders the 7-day watering plan as one table per day with the
// per-day gallon total in the day header. Canceled events are struck through.
func FormatPlan(view *contract.PlanView) string {
	var b strings.Builder

	if view.Plan == nil || len(view.Plan.Schedule) == 0 {
		b.WriteString(Dim("No active watering plan. Run `pluvio generate` to create one.\n"))
		return b.String()
	}

	if view.System == domain.SystemDisabled {
		b.WriteString(StyleYellow.Render("System disabled — scheduled watering is suspended."))
		b.WriteString("\n\n")
	}

	if view.Plan.Reasoning != "" {
		b.WriteString(Header("Reasoning"))
		b.WriteString("\n")
		b.WriteString(view.Plan.Reasoning)
		b.WriteString("\n\n")
	}

	for _, day := range view.Plan.Schedule {
		b.WriteString(formatDayHeader(day, view.DailyUsage[day.Day]))
		b.WriteString("\n")

		if len(day.Events) == 0 {
			b.WriteString(Dim("  (no watering)\n\n"))
			continue
		}

		rows := make([][]string, 0, len(day.Events))
		for _, ev := range day.Events {
			row := []string{
				ev.StartTime,
				fmt.Sprintf("Zone %d", ev.ZoneID),
				ev.ZoneName,
				fmt.Sprintf("%d min", ev.DurationMinutes),
				fmt.Sprintf("%.1f gal", ev.WaterUsage),
				adjustmentCell(ev.Adjustment),
			}
			if ev.IsCanceled {
				for i, cell := range row {
					row[i] = StyleCanceled.Render(cell)
				}
			}
			rows = append(rows, row)
		}
		b.WriteString(RenderTable(
			[]string{"Start", "Zone", "Name", "Duration", "Water", "Adjusted"},
			rows,
		))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s %.1f gallons\n", Bold("Weekly total:"), view.TotalUsage)

	if view.HasPending && view.FollowUp != "" {
		b.WriteString("\n")
		b.WriteString(StylePurple.Render(view.FollowUp))
		b.WriteString("\n")
		b.WriteString(Dim("Accept with `pluvio plan accept`, keep the current plan with `pluvio plan decline`.\n"))
	}

	return b.String()
}

func formatDayHeader(day domain.DailySchedule, gallons float64) string {
	label := day.Day
	if t, err := time.Parse(domain.DateLayout, day.Day); err == nil {
		label = t.Format("Mon Jan 2")
	}
	return fmt.Sprintf("%s  %s", Header(label), Dim(fmt.Sprintf("%.1f gal", gallons)))
}

func adjustmentCell(adj *domain.Adjustment) string {
	if adj == nil {
		return ""
	}
	return StyleBlue.Render("✎ " + adj.User)
}
