package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/pelagos-io/remora/pkg/cleanup"
)

// Subject summarizes the run in one line.
func Subject(runReport *cleanup.RunReport) string {
	prefix := ""
	if runReport.DryRun {
		prefix = "[dry run] "
	}

	if !hasOutcomes(runReport) && len(runReport.RegionErrors()) == 0 {
		return prefix + "AMI cleanup report: no stale AMIs found"
	}

	return fmt.Sprintf("%sAMI cleanup report: %d images and %d snapshots removed, %d failures",
		prefix, runReport.ImagesRemoved(), runReport.SnapshotsRemoved(), runReport.Failures())
}

// Body renders the human-readable summary: totals first, then one section
// per region in policy order. Recipients dropped for lack of SES
// verification are named so somebody can fix them.
func Body(runReport *cleanup.RunReport, unverified []string) string {
	var body strings.Builder

	body.WriteString("Hello,\n\n")

	if runReport.DryRun {
		body.WriteString("Dry run mode was enabled: nothing was actually removed. The resources below are what a real run would remove.\n\n")
	}

	if !hasOutcomes(runReport) && len(runReport.RegionErrors()) == 0 {
		body.WriteString(fmt.Sprintf("No stale AMIs were found in regions %s.\n", regionList(runReport)))
	} else {
		body.WriteString(fmt.Sprintf("Images removed: %d\n", runReport.ImagesRemoved()))
		body.WriteString(fmt.Sprintf("Snapshots removed: %d\n", runReport.SnapshotsRemoved()))
		body.WriteString(fmt.Sprintf("Failures: %d\n", runReport.Failures()))

		for _, result := range runReport.Results {
			body.WriteString("\nRegion " + result.Region + ":\n")
			if result.Err != "" {
				body.WriteString("  image listing failed: " + result.Err + "\n")
				continue
			}
			if len(result.Outcomes) == 0 {
				body.WriteString("  nothing to remove\n")
				continue
			}
			for _, outcome := range result.Outcomes {
				if outcome.Succeeded {
					body.WriteString(fmt.Sprintf("  %s %s: removed\n", outcome.Kind, outcome.Identifier))
				} else {
					body.WriteString(fmt.Sprintf("  %s %s: failed (%s)\n", outcome.Kind, outcome.Identifier, outcome.Reason))
				}
			}
		}

		body.WriteString("\nThe attached CSV file lists every resource this run touched.\n")
	}

	body.WriteString(fmt.Sprintf("\nRun started %s and finished %s.\n",
		runReport.StartedAt.Format("2006-01-02 15:04:05 MST"),
		runReport.FinishedAt.Format("2006-01-02 15:04:05 MST")))

	if len(unverified) > 0 {
		body.WriteString("\nUnverified email addresses that did not receive this report: " + strings.Join(unverified, ", ") + "\n")
	}

	body.WriteString("\nThis is an automatically generated email, do not reply.\n")

	return body.String()
}

// CSV renders one row per attempted resource, in report order.
func CSV(runReport *cleanup.RunReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Account", "Region", "Kind", "Identifier", "Status", "Reason", "DeleteDate"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	deleteDate := runReport.FinishedAt.Format("2006-01-02 15:04:05")
	for _, result := range runReport.Results {
		for _, outcome := range result.Outcomes {
			status := "removed"
			if !outcome.Succeeded {
				status = "failed"
			}
			row := []string{
				runReport.Account,
				outcome.Region,
				string(outcome.Kind),
				outcome.Identifier,
				status,
				outcome.Reason,
				deleteDate,
			}
			if err := writer.Write(row); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func hasOutcomes(runReport *cleanup.RunReport) bool {
	for _, result := range runReport.Results {
		if len(result.Outcomes) > 0 {
			return true
		}
	}
	return false
}

func regionList(runReport *cleanup.RunReport) string {
	regions := make([]string, 0, len(runReport.Results))
	for _, result := range runReport.Results {
		regions = append(regions, result.Region)
	}
	return strings.Join(regions, ", ")
}
