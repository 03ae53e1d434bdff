package cli

import (
	"context"
	"fmt"
	"strconv"

	"pluvio/internal/cli/formatter"

	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the active 7-day watering plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Plans.Current(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPlan(view))
			return nil
		},
	}

	cmd.AddCommand(
		newPlanAcceptCmd(app),
		newPlanDeclineCmd(app),
		newPlanCancelCmd(app),
	)
	return cmd
}

func newPlanAcceptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept",
		Short: "Accept the pending adjusted plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.AcceptCompensation(context.Background(), "user")
			if err != nil {
				return err
			}
			fmt.Println(formatter.StyleGreen.Render("Adjusted plan is now active."))
			if plan.Reasoning != "" {
				fmt.Println(formatter.Dim(plan.Reasoning))
			}
			return nil
		},
	}
}

func newPlanDeclineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decline",
		Short: "Discard the pending adjusted plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.DeclineCompensation(context.Background()); err != nil {
				return err
			}
			fmt.Println("Keeping the current plan.")
			return nil
		},
	}
}

func newPlanCancelCmd(app *App) *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "cancel <day> <event-index>",
		Short: "Cancel (or restore) one scheduled watering event",
		Long:  "Day is YYYY-MM-DD; the event index is zero-based within the day. Events whose start time has passed cannot be changed.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("event index must be a number: %w", err)
			}
			if err := app.Plans.CancelEvent(context.Background(), args[0], idx, !restore, "user"); err != nil {
				return err
			}
			if restore {
				fmt.Println("Event restored.")
			} else {
				fmt.Println("Event canceled. It stays on the plan, struck through.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "Un-cancel the event instead")
	return cmd
}
