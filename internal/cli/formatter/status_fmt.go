package formatter

import (
	"fmt"
	"strings"

	"pluvio/internal/actuation"
	"pluvio/internal/domain"
)

// FormatStatus renders the controller snapshot.
func FormatStatus(snap actuation.StatusSnapshot) string {
	var b strings.Builder

	b.WriteString(Header("System"))
	b.WriteString("\n")
	switch snap.System {
	case domain.SystemEnabled:
		b.WriteString(StyleGreen.Render("● ENABLED"))
	case domain.SystemDisabled:
		b.WriteString(StyleRed.Render("● DISABLED"))
	default:
		b.WriteString(StyleDim.Render("● " + strings.ToUpper(string(snap.System))))
	}
	b.WriteString("\n")

	if snap.RainDelayHours > 0 {
		fmt.Fprintf(&b, "%s %d hour(s) remaining\n", StyleYellow.Render("Rain delay:"), snap.RainDelayHours)
	}

	b.WriteString("\n")
	b.WriteString(Header("Active zones"))
	b.WriteString("\n")
	if len(snap.Active) == 0 {
		b.WriteString(Dim("none\n"))
		return b.String()
	}
	rows := make([][]string, 0, len(snap.Active))
	for _, run := range snap.Active {
		rows = append(rows, []string{
			fmt.Sprintf("Zone %d", run.ZoneID),
			fmt.Sprintf("%d:%02d remaining", run.RemainingSec/60, run.RemainingSec%60),
		})
	}
	b.WriteString(RenderTable([]string{"Zone", "Time"}, rows))
	return b.String()
}
