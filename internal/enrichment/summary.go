package enrichment

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
)

const (
	summaryDividerConstant                = "============================================================"
	summaryHeadingConstant                = "DEPLOYMENT SUMMARY"
	summaryRepositoriesTemplateConstant   = "Repositories: %d\n"
	summarySuccessRateTemplateConstant    = "Success Rate: %s\n"
	summarySuccessRateValueTemplateConst  = "%d/%d (%.0f%%)"
	summaryTotalFilesTemplateConstant     = "Total Files: %d\n"
	summaryTotalLinesTemplateConstant     = "Total Lines: %d\n"
	summaryTotalTimeTemplateConstant      = "Total Time: %.1fs\n"
	summaryVelocityTemplateConstant       = "Velocity: %s\n"
	summaryVelocityValueTemplateConstant  = "%.0f lines/min"
	summaryVelocityUnavailableConstant    = "n/a"
	summaryMeanTimeTemplateConstant       = "Mean Repo Time: %.1fs\n"
	summaryMedianTimeTemplateConstant     = "Median Repo Time: %.1fs\n"
	summarySuccessMarkerConstant          = "OK"
	summaryFailureMarkerConstant          = "FAILED"
	summaryStatusLineTemplateConstant     = "%s %s\n"
	summaryCountsLineTemplateConstant     = "   %d files, %d lines\n"
	summaryBranchLineTemplateConstant     = "   %s\n"
	summaryErrorLineTemplateConstant      = "   Error: %s\n"
	secondsPerMinuteConstant              = 60.0
)

// BatchSummary aggregates deployment results for one batch run.
type BatchSummary struct {
	RepositoryCount int
	SuccessCount    int
	TotalFiles      int
	TotalLines      int
	TotalSeconds    float64
	MeanSeconds     float64
	MedianSeconds   float64
}

// ComputeBatchSummary derives batch aggregates from per-repository results.
// Summary sums always equal the sums over the individual results.
func ComputeBatchSummary(results []DeploymentResult) BatchSummary {
	summary := BatchSummary{RepositoryCount: len(results)}

	perRepositorySeconds := make([]float64, 0, len(results))
	for _, result := range results {
		if result.Success {
			summary.SuccessCount++
		}
		summary.TotalFiles += result.FilesDeployed
		summary.TotalLines += result.LinesDeployed
		summary.TotalSeconds += result.ExecutionSeconds
		perRepositorySeconds = append(perRepositorySeconds, result.ExecutionSeconds)
	}

	if meanSeconds, meanError := stats.Mean(perRepositorySeconds); meanError == nil {
		summary.MeanSeconds = meanSeconds
	}
	if medianSeconds, medianError := stats.Median(perRepositorySeconds); medianError == nil {
		summary.MedianSeconds = medianSeconds
	}

	return summary
}

// SuccessRate renders the batch success rate as "N/M (P%)" with the percentage
// rounded to a whole number. An empty batch reports "0/0 (0%)".
func (summary BatchSummary) SuccessRate() string {
	successPercentage := 0.0
	if summary.RepositoryCount > 0 {
		successPercentage = 100 * float64(summary.SuccessCount) / float64(summary.RepositoryCount)
	}
	return fmt.Sprintf(summarySuccessRateValueTemplateConst, summary.SuccessCount, summary.RepositoryCount, successPercentage)
}

// Velocity renders lines deployed per minute, or "n/a" when no time elapsed.
func (summary BatchSummary) Velocity() string {
	if summary.TotalSeconds <= 0 {
		return summaryVelocityUnavailableConstant
	}
	linesPerMinute := float64(summary.TotalLines) / (summary.TotalSeconds / secondsPerMinuteConstant)
	return fmt.Sprintf(summaryVelocityValueTemplateConstant, linesPerMinute)
}

// WriteBatchSummary renders the aggregate block and per-repository status lines.
func WriteBatchSummary(writer io.Writer, results []DeploymentResult) {
	summary := ComputeBatchSummary(results)

	fmt.Fprintf(writer, "\n%s\n", summaryDividerConstant)
	fmt.Fprintf(writer, "%s\n", summaryHeadingConstant)
	fmt.Fprintf(writer, "%s\n\n", summaryDividerConstant)

	fmt.Fprintf(writer, summaryRepositoriesTemplateConstant, summary.RepositoryCount)
	fmt.Fprintf(writer, summarySuccessRateTemplateConstant, summary.SuccessRate())
	fmt.Fprintf(writer, summaryTotalFilesTemplateConstant, summary.TotalFiles)
	fmt.Fprintf(writer, summaryTotalLinesTemplateConstant, summary.TotalLines)
	fmt.Fprintf(writer, summaryTotalTimeTemplateConstant, summary.TotalSeconds)
	fmt.Fprintf(writer, summaryVelocityTemplateConstant, summary.Velocity())
	fmt.Fprintf(writer, summaryMeanTimeTemplateConstant, summary.MeanSeconds)
	fmt.Fprintf(writer, summaryMedianTimeTemplateConstant, summary.MedianSeconds)
	fmt.Fprintln(writer)

	for _, result := range results {
		statusMarker := summaryFailureMarkerConstant
		if result.Success {
			statusMarker = summarySuccessMarkerConstant
		}
		fmt.Fprintf(writer, summaryStatusLineTemplateConstant, statusMarker, result.Repository)
		if result.Success {
			fmt.Fprintf(writer, summaryCountsLineTemplateConstant, result.FilesDeployed, result.LinesDeployed)
			fmt.Fprintf(writer, summaryBranchLineTemplateConstant, result.BranchURL)
		} else {
			fmt.Fprintf(writer, summaryErrorLineTemplateConstant, result.Error)
		}
	}

	fmt.Fprintf(writer, "\n%s\n", summaryDividerConstant)
}
