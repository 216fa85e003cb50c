package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/reclaim-cli/reclaim/internal/models"
	"github.com/reclaim-cli/reclaim/internal/tui"
)

const emptyReportJSON = `{"success":true,"total_projects":0,"successful":0,"failed":0,"space_freed":0,"results":[]}`

// ReportResult is the machine-readable projection of one CleanResult.
type ReportResult struct {
	Path       string             `json:"path"`
	Name       string             `json:"name"`
	Kind       models.ProjectKind `json:"kind"`
	Success    bool               `json:"success"`
	SpaceFreed *int64             `json:"space_freed,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Report aggregates a clean run for presentation.
type Report struct {
	Success       bool           `json:"success"`
	TotalProjects int            `json:"total_projects"`
	Successful    int            `json:"successful"`
	Failed        int            `json:"failed"`
	SpaceFreed    int64          `json:"space_freed"`
	Results       []ReportResult `json:"results"`
}

// BuildReport folds per-project results into an aggregate report.
func BuildReport(results []models.CleanResult) Report {
	report := Report{
		TotalProjects: len(results),
		Results:       make([]ReportResult, 0, len(results)),
	}

	for _, result := range results {
		entry := ReportResult{
			Path:       result.Project.Path,
			Name:       result.Project.Name(),
			Kind:       result.Project.Kind,
			Success:    result.Success,
			SpaceFreed: result.SpaceFreed,
		}
		if result.Success {
			report.Successful++
			if result.SpaceFreed != nil {
				report.SpaceFreed += *result.SpaceFreed
			}
		} else {
			report.Failed++
			if result.Err != nil {
				entry.Error = result.Err.Error()
			}
		}
		report.Results = append(report.Results, entry)
	}

	report.Success = report.Failed == 0
	return report
}

// RenderJSON serializes the report for machine consumption.
func (r Report) RenderJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}

// RenderText renders the human-readable report. Per-project success lines
// only appear at verbosity > 0; failures and dry-run estimates always show.
func (r Report) RenderText(verbose int, dryRun bool) string {
	var b strings.Builder

	for _, result := range r.Results {
		switch {
		case dryRun:
			fmt.Fprintf(&b, "%s %s would free ~%s\n",
				tui.WarnStyle.Render("[DRY RUN]"),
				tui.NameStyle.Render(result.Name),
				tui.SizeStyle.Render(freedSize(result.SpaceFreed)))
		case result.Success && verbose > 0:
			fmt.Fprintf(&b, "%s %s - freed %s\n",
				tui.SuccessStyle.Render("✓"),
				tui.NameStyle.Render(result.Name),
				tui.SizeStyle.Render(freedSize(result.SpaceFreed)))
		case !result.Success:
			fmt.Fprintf(&b, "%s %s - %s\n",
				tui.ErrorStyle.Render("✗"),
				tui.NameStyle.Render(result.Name),
				tui.ErrorStyle.Render(result.Error))
		}
	}

	heading := "Cleaning complete!"
	if dryRun {
		heading = "Dry run complete."
	}
	fmt.Fprintf(&b, "\n%s\n", tui.SuccessStyle.Render(heading))
	fmt.Fprintf(&b, "  Successful: %s\n", tui.SuccessStyle.Render(fmt.Sprintf("%d", r.Successful)))
	if r.Failed > 0 {
		fmt.Fprintf(&b, "  Failed: %s\n", tui.ErrorStyle.Render(fmt.Sprintf("%d", r.Failed)))
		if verbose > 0 {
			fmt.Fprintf(&b, "\nFailed projects:\n")
			for _, result := range r.Results {
				if !result.Success {
					fmt.Fprintf(&b, "  %s - %s\n",
						tui.WarnStyle.Render(result.Path), result.Error)
				}
			}
		}
	}
	fmt.Fprintf(&b, "  Space freed: %s\n", tui.SizeStyle.Render(humanize.IBytes(uint64(r.SpaceFreed))))

	return b.String()
}

// RenderProjectList renders the scan-only (list command) view.
func RenderProjectList(projects []models.Project) string {
	var b strings.Builder
	for _, project := range projects {
		line := fmt.Sprintf("%s [%s] - %s",
			tui.NameStyle.Render(project.Name()),
			tui.KindStyle.Render(string(project.Kind)),
			project.Path)
		if project.Metadata.EstimatedSize != nil {
			line += " " + tui.SubtleStyle.Render(
				fmt.Sprintf("(%s)", humanize.IBytes(uint64(*project.Metadata.EstimatedSize))))
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\nTotal: %s projects\n",
		tui.SuccessStyle.Render(fmt.Sprintf("%d", len(projects))))
	return b.String()
}

func freedSize(size *int64) string {
	if size == nil {
		return humanize.IBytes(0)
	}
	return humanize.IBytes(uint64(*size))
}
