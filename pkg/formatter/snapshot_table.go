package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/ebs-autosnap/internal/models"
	"github.com/younsl/ebs-autosnap/pkg/utils"
)

// MaxDescriptionWidth caps the DESCRIPTION column
const MaxDescriptionWidth = 40

// PrintRunSummary prints the created snapshots, the retention decisions and totals
func PrintRunSummary(w io.Writer, summary models.RunSummary, finishedAt time.Time) {
	fmt.Fprintln(w)
	printTimestamp(w, summary.StartedAt, finishedAt.Sub(summary.StartedAt))

	if len(summary.Volumes) == 0 {
		fmt.Fprintf(w, "No volumes found for scope %s in %s.\n", summary.Scope, summary.Region)
		return
	}

	printCreatedTable(w, summary.Created)
	printRetentionTable(w, summary.Retention, finishedAt)
	printTotals(w, summary)
}

func printCreatedTable(w io.Writer, results []models.CreateResult) {
	fmt.Fprintln(w, "\n## Created Snapshots")

	// kubectl 스타일 tabwriter 설정
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "VOLUME ID\tSNAPSHOT ID\tDESCRIPTION\tSTATUS")

	for _, r := range results {
		snapshotID := r.SnapshotID
		if snapshotID == "" {
			snapshotID = "N/A"
		}

		status := "OK"
		switch {
		case r.Err != nil:
			status = "CREATE FAILED"
		case r.TagErr != nil:
			status = "UNTAGGED"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.VolumeID,
			snapshotID,
			Truncate(r.Description, MaxDescriptionWidth),
			status,
		)
	}

	tw.Flush()
}

func printRetentionTable(w io.Writer, results []models.RetentionResult, now time.Time) {
	fmt.Fprintln(w, "\n## Managed Snapshots")

	if len(results) == 0 {
		fmt.Fprintln(w, "No managed snapshots found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "VOLUME ID\tSNAPSHOT ID\tCREATED\tAGE\tACTION")

	for _, r := range results {
		action := r.Action
		if r.DryRun {
			action += " (dry run)"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.VolumeID,
			r.SnapshotID,
			utils.FormatDate(r.CreatedAt),
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
			action,
		)
	}

	tw.Flush()
}

func printTotals(w io.Writer, summary models.RunSummary) {
	fmt.Fprintf(w, "\nTotal: %d volumes, %d created (%d failed, %d untagged), %d deleted (%d failed), %d kept, cutoff %s\n",
		len(summary.Volumes),
		summary.CreatedCount(),
		summary.CreateFailures(),
		summary.TagFailures(),
		summary.DeletedCount(),
		summary.DeleteFailures(),
		summary.KeptCount(),
		utils.FormatDate(summary.Cutoff),
	)
}
