package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"

	"pluvio/internal/domain"
)

// planSystemPrompt instructs the LLM to synthesize a complete 7-day watering
// plan as structured JSON.
const planSystemPrompt = `You are the schedule planner for a residential irrigation controller called Pluvio.
Your task is to produce a complete 7-day watering plan as structured JSON.

You must output ONLY a JSON object with these exact fields:
- reasoning: string explaining the plan, including any deviation from the preferred window
- schedule: array of exactly 7 day objects covering today through today+6, each with:
  - day: "YYYY-MM-DD"
  - events: array of { zone_id: number, zone_name: string, start_time: "HH:MM" (24-hour, local), duration_minutes: number > 0, water_usage: gallons (number >= 0) }

Watering rules:
1. Prefer start times in the 04:00-07:00 local window. This is a strong preference, not a hard constraint; if you deviate, justify it in the reasoning.
2. Scale duration and frequency with each zone's water requirement tier: low needs shorter, less frequent runs; high needs longer or more frequent runs.
3. A "foundation" planting type needs frequent short low-volume cycles, never deep infrequent watering.
4. Skip watering on a day when trailing 24-hour rainfall exceeds 0.5 inch, or when the forecast probability of at least 0.5 inch of rain exceeds 70% for today or tomorrow.
5. Honor the household preference tier: conserve uses less water, lush uses more, standard sits between.
6. Never place an event for today at or before the current local time.
7. Estimate water_usage as duration_minutes multiplied by the zone's flow rate in gallons per minute.

CRITICAL RULES:
1. Output exactly 7 days, starting at today's date, consecutive, no gaps.
2. Use strict JSON numeric literals (e.g., 0.85, never .85). No comments.
3. Output ONLY the JSON object, no markdown, no explanation outside the reasoning field.`

// changeSystemPrompt instructs the LLM to apply one literal user command to
// the current plan, optionally offering a compensated alternative.
const changeSystemPrompt = `You are the schedule editor for a residential irrigation controller called Pluvio.
You will receive the current 7-day plan and one user request. Decide whether the request is a question or a plan modification.

You must output ONLY a JSON object with these exact fields:
- response_type: "answer" or "modification"
- answer: string (required for "answer"; for "modification", a short confirmation of what changed)
- follow_up_question: string (ONLY when you also offer a compensated plan; phrase it as a yes/no question)
- direct_change: complete 7-day plan object { reasoning, schedule } reflecting ONLY the literal request (required for "modification")
- compensated: optional complete 7-day plan that additionally compensates elsewhere for the water the literal change removes or adds

Editing rules:
1. direct_change must contain every day of the current plan with only the literally requested edits applied.
2. Never delete an event to cancel it; set is_canceled instead. Canceled events keep their original timing.
3. Never modify events on days that have already passed, or events for today at or before the current local time.
4. Offer a compensated plan only when the literal change meaningfully hurts plant health (for example, skipping a hot dry day); otherwise omit it.
5. Keep the same JSON event shape as the current plan.

CRITICAL RULES:
1. Output ONLY the JSON object. Strict JSON literals, no comments, no markdown fences.`

// buildPlanUserPrompt renders the full generation context: hardware, tier,
// weather, plan history split into ground truth and future plan, local time.
func buildPlanUserPrompt(req PlanRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Current local date-time: %s (%s)\n\n",
		req.Now.Format("2006-01-02 15:04"), req.Now.Location())

	b.WriteString("Zones:\n")
	for _, z := range req.Zones {
		fmt.Fprintf(&b, "- zone %d %q: planting=%s, water requirement=%s, flow=%.1f gpm\n",
			z.ID, z.Name, z.Planting, z.Need, z.FlowGPM)
	}

	fmt.Fprintf(&b, "\nHousehold preference tier: %s\n", req.Preference)

	if req.Forecast != nil {
		fmt.Fprintf(&b, "\nCurrent conditions: %.0fF, trailing 24h rainfall %.2fin\n",
			req.Forecast.Current.TempF, req.Forecast.Current.Rainfall24hIn)
		b.WriteString("7-day forecast:\n")
		for _, d := range req.Forecast.Daily {
			fmt.Fprintf(&b, "- %s: high %.0fF, low %.0fF, rain %d%% (%.2fin)\n",
				d.Date, d.HighF, d.LowF, d.PrecipProbability, d.PrecipInches)
		}
	}

	if len(req.GroundTruth) > 0 {
		b.WriteString("\nAlready-elapsed days (historical fact, do not re-plan):\n")
		b.WriteString(renderDays(req.GroundTruth))
	}
	if len(req.PriorPlan) > 0 {
		b.WriteString("\nPrior plan for upcoming days (starting point):\n")
		b.WriteString(renderDays(req.PriorPlan))
	}

	if len(req.Reasons) > 0 {
		b.WriteString("\nThis re-plan was triggered by forecast changes:\n")
		for _, r := range req.Reasons {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	if req.Transcript != "" {
		b.WriteString("\nRecent conversation:\n")
		b.WriteString(req.Transcript)
	}

	fmt.Fprintf(&b, "\nProduce the 7-day plan for %s through %s.",
		req.Now.Format(domain.DateLayout),
		req.Now.AddDate(0, 0, domain.PlanDays-1).Format(domain.DateLayout))

	return b.String()
}

func buildChangeUserPrompt(req ChangeRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Current local date-time: %s (%s)\n\n",
		req.Now.Format("2006-01-02 15:04"), req.Now.Location())

	b.WriteString("Zones:\n")
	for _, z := range req.Zones {
		fmt.Fprintf(&b, "- zone %d %q: planting=%s, water requirement=%s, flow=%.1f gpm\n",
			z.ID, z.Name, z.Planting, z.Need, z.FlowGPM)
	}
	fmt.Fprintf(&b, "\nHousehold preference tier: %s\n", req.Preference)

	if req.Forecast != nil {
		b.WriteString("\n7-day forecast:\n")
		for _, d := range req.Forecast.Daily {
			fmt.Fprintf(&b, "- %s: high %.0fF, low %.0fF, rain %d%% (%.2fin)\n",
				d.Date, d.HighF, d.LowF, d.PrecipProbability, d.PrecipInches)
		}
	}

	if req.Current != nil {
		data, _ := json.Marshal(req.Current)
		b.WriteString("\nCurrent plan JSON:\n")
		b.Write(data)
		b.WriteString("\n")
	}

	if req.Transcript != "" {
		b.WriteString("\nRecent conversation:\n")
		b.WriteString(req.Transcript)
	}

	fmt.Fprintf(&b, "\nUser request: %s", req.Command)
	return b.String()
}

func renderDays(days []domain.DailySchedule) string {
	var b strings.Builder
	for _, d := range days {
		fmt.Fprintf(&b, "- %s:", d.Day)
		if len(d.Events) == 0 {
			b.WriteString(" no watering")
		}
		for _, e := range d.Events {
			state := ""
			if e.IsCanceled {
				state = " (canceled)"
			}
			fmt.Fprintf(&b, " [zone %d at %s for %dmin%s]", e.ZoneID, e.StartTime, e.DurationMinutes, state)
		}
		b.WriteString("\n")
	}
	return b.String()
}
