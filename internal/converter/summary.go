package converter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatSummary renders the human-readable per-file lines and the trailing
// summary line for a conversion job.
func FormatSummary(job *Job) string {
	var sb strings.Builder
	for _, r := range job.Results {
		if r.Status == StatusSuccess {
			fmt.Fprintf(&sb, "- %s: OK (%s)\n", r.Document.Filename, r.Output.Filename)
		} else {
			fmt.Fprintf(&sb, "- %s: FAILED (%s)\n", r.Document.Filename, r.Message)
		}
	}
	fmt.Fprintf(&sb, "Processed: %d | Succeeded: %d | Failed: %d",
		job.Total, job.Succeeded, job.Failed)
	return sb.String()
}

type jsonSummary struct {
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	DurationMs int64    `json:"durationMs"`
	Total      int      `json:"total"`
	Succeeded  int      `json:"succeeded"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// SummaryJSON renders the machine-readable form of a conversion job.
func SummaryJSON(job *Job) ([]byte, error) {
	results := job.Results
	if results == nil {
		results = []Result{}
	}
	return json.MarshalIndent(jsonSummary{
		StartTime:  job.StartTime.Format("2006-01-02T15:04:05.000Z07:00"),
		EndTime:    job.EndTime.Format("2006-01-02T15:04:05.000Z07:00"),
		DurationMs: job.DurationMs(),
		Total:      job.Total,
		Succeeded:  job.Succeeded,
		Failed:     job.Failed,
		Results:    results,
	}, "", "  ")
}
