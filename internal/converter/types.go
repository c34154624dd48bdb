package converter

import "time"

// Status of a single PDF conversion.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Document identifies a source PDF file.
type Document struct {
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
}

// OutputArtifact describes a generated Markdown file.
type OutputArtifact struct {
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Result is the outcome of converting one document. Output is set on
// success; Message carries the failure reason otherwise.
type Result struct {
	Document Document        `json:"document"`
	Status   Status          `json:"status"`
	Message  string          `json:"message,omitempty"`
	Output   *OutputArtifact `json:"output,omitempty"`
}

// Job aggregates the results of a batch conversion.
type Job struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Results   []Result  `json:"results"`
}

// AddResult appends a result and updates the counters.
func (j *Job) AddResult(r Result) {
	j.Results = append(j.Results, r)
	j.Total++
	if r.Status == StatusSuccess {
		j.Succeeded++
	} else {
		j.Failed++
	}
}

// DurationMs is the wall-clock duration of the job in milliseconds.
func (j *Job) DurationMs() int64 {
	return j.EndTime.Sub(j.StartTime).Milliseconds()
}
