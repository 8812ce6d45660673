package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	app "outreach/internal/application/outreach"
)

const DefaultHistoryLimit = 20

// HistoryCommand prints the most recent generate and send runs, or the
// entries of a single run.
type HistoryCommand struct {
	Runs  app.RunRepository
	Out   io.Writer
	Limit int
}

func (c *HistoryCommand) Run(ctx context.Context) error {
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	runs, err := c.Runs.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(c.Out, "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tKIND\tTOTAL\tOK\tFAILED\tSOURCE\tID")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime),
			r.Kind, r.Total, r.Succeeded, r.Failed, r.Source, r.ID)
	}
	return w.Flush()
}

// Show prints one run with its per-contact entries.
func (c *HistoryCommand) Show(ctx context.Context, id string) error {
	run, err := c.Runs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Out, "Run %s (%s) from %s\n", run.ID, run.Kind, run.Source)
	fmt.Fprintf(c.Out, "Started %s, finished %s\n",
		run.StartedAt.Local().Format(time.DateTime), run.FinishedAt.Local().Format(time.DateTime))
	fmt.Fprintf(c.Out, "Total %d, ok %d, failed %d\n\n", run.Total, run.Succeeded, run.Failed)

	if len(run.Entries) == 0 {
		fmt.Fprintln(c.Out, "No entries recorded.")
		return nil
	}

	w := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSTATUS\tCONTACT\tEMAIL\tSUBJECT\tERROR")
	for _, e := range run.Entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.Position+1, e.Status, e.Contact, e.EmailAddress, e.Subject, e.Error)
	}
	return w.Flush()
}
