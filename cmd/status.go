/*
Copyright © 2025 The capexdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"time"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/iostatus"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/status"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Record and show project status history",
		Long: `Status keeps an append-only history of project statuses.
The current status is the entry with the latest date; entries of the
same date are ordered by the time they were recorded.

Status codes: PLANNED, DESIGN, APPROVED, IN_PROGRESS, COMPLETED, ON_HOLD

Examples:
  capexdb status set 12 DESIGN --date 2025-03-01 --comment "Design started"
  capexdb status current 12
  capexdb status history 12
  capexdb status recent --limit 5`,
	}

	statusCmd.AddCommand(
		getStatusSetCmd(),
		getStatusCurrentCmd(),
		getStatusHistoryCmd(),
		getStatusRecentCmd(),
	)
	return statusCmd
}

func withTracker(f func(context.Context, capex.StatusTracker) error) error {
	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = f(ctx, iostatus.New(op)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func getStatusSetCmd() *cobra.Command {
	var (
		date    string
		comment string
	)

	setCmd := &cobra.Command{
		Use:   "set PROJECT_ID STATUS_CODE",
		Short: "Append a status to the project history",
		Long: `Set appends a status entry. Without --date today is used.
Any status may follow any other one.

Examples:
  capexdb status set 12 IN_PROGRESS
  capexdb status set 12 ON_HOLD --date 2025-02-01 -c "Waiting for funds"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withTracker(func(ctx context.Context, t capex.StatusTracker) error {
				ev, err := t.Append(ctx, id, args[1], d, comment)
				if err != nil {
					return err
				}
				gn.Info("Project <em>%d</em> status <em>%s</em> on %s",
					id, ev.Code, ev.Date.Format(dateLayout))
				cur, err := t.Current(ctx, id)
				if err != nil {
					return err
				}
				if cur.ID != ev.ID {
					gn.Warn("Current status stays <em>%s</em> from %s",
						cur.Code, cur.Date.Format(dateLayout))
				}
				return nil
			})
		},
	}

	setCmd.Flags().StringVarP(&date, "date", "d", "",
		"status date as YYYY-MM-DD (default today)")
	setCmd.Flags().StringVarP(&comment, "comment", "c", "",
		"comment stored with the status")
	return setCmd
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, capex.ValidationError("date", "expected YYYY-MM-DD")
	}
	return d, nil
}

func getStatusCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current PROJECT_ID",
		Short: "Show the current status of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withTracker(func(ctx context.Context, t capex.StatusTracker) error {
				ev, err := t.Current(ctx, id)
				if err != nil {
					return err
				}
				printEvents("Current status", []status.Event{ev})
				return nil
			})
		},
	}
}

func getStatusHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history PROJECT_ID",
		Short: "Show the status timeline of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withTracker(func(ctx context.Context, t capex.StatusTracker) error {
				events, err := t.History(ctx, id)
				if err != nil {
					return err
				}
				printEvents("Status history", events)
				return nil
			})
		},
	}
}

func getStatusRecentCmd() *cobra.Command {
	var limit int

	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the latest status changes across projects",
		Long: `Recent lists the newest status entries of all projects, the
latest status date first.

Examples:
  capexdb status recent
  capexdb status recent -n 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(func(ctx context.Context, t capex.StatusTracker) error {
				changes, err := t.Recent(ctx, limit)
				if err != nil {
					return err
				}
				printChanges(changes)
				return nil
			})
		},
	}

	recentCmd.Flags().IntVarP(&limit, "limit", "n", iostatus.RecentLimit,
		"number of entries to show")
	return recentCmd
}

func printChanges(changes []capex.StatusChange) {
	rows := make([][]string, 0, len(changes))
	for _, v := range changes {
		rows = append(rows, []string{
			v.Date.Format(dateLayout),
			formatUint(v.ProjectID),
			v.AssetCode,
			v.Code,
			v.Comments,
		})
	}
	printTable("Recent status changes",
		[]string{"Date", "Project", "Asset", "Status", "Comments"}, rows)
}

func printEvents(title string, events []status.Event) {
	rows := make([][]string, 0, len(events))
	for _, v := range events {
		rows = append(rows, []string{
			v.Date.Format(dateLayout),
			v.Code,
			v.Comments,
		})
	}
	printTable(title, []string{"Date", "Status", "Comments"}, rows)
}
