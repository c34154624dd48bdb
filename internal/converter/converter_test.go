package converter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeExtractor returns canned text per base filename, or an error when the
// name appears in fail.
type fakeExtractor struct {
	text map[string]string
	fail map[string]error
}

func (f *fakeExtractor) Extract(path string) (string, error) {
	name := filepath.Base(path)
	if err, ok := f.fail[name]; ok {
		return "", err
	}
	if text, ok := f.text[name]; ok {
		return text, nil
	}
	return "default text", nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.pdf", "a.PDF", "notes.txt", "c.pdf.bak")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, filepath.Join(dir, "nested"), "inner.pdf")

	files, err := FindPDFs(dir)
	if err != nil {
		t.Fatalf("FindPDFs: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %v", len(files), files)
	}
	// Sorted, extension matched case-insensitively, subdirectories skipped.
	if filepath.Base(files[0]) != "a.PDF" || filepath.Base(files[1]) != "b.pdf" {
		t.Errorf("files = %v", files)
	}
}

func TestFindPDFs_MissingDir(t *testing.T) {
	if _, err := FindPDFs(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestConvertBatch(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	writeFiles(t, inputDir, "good.pdf", "bad.pdf")

	extractor := &fakeExtractor{
		text: map[string]string{"good.pdf": "Extracted body."},
		fail: map[string]error{"bad.pdf": errors.New("file is encrypted with a password")},
	}
	c := NewWithExtractor(extractor, nil)

	job, err := c.ConvertBatch(inputDir, outputDir)
	if err != nil {
		t.Fatalf("ConvertBatch: %v", err)
	}
	if job.Total != 2 || job.Succeeded != 1 || job.Failed != 1 {
		t.Fatalf("total=%d succeeded=%d failed=%d", job.Total, job.Succeeded, job.Failed)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "good.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "Extracted body.\n" {
		t.Errorf("output = %q", data)
	}

	var failure Result
	for _, r := range job.Results {
		if r.Status == StatusFailure {
			failure = r
		}
	}
	if failure.Message != "Encrypted PDF not supported" {
		t.Errorf("failure message = %q", failure.Message)
	}
	if failure.Output != nil {
		t.Error("failed result should carry no output artifact")
	}
}

func TestConvertFile_OverwritesExistingOutput(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeFiles(t, inputDir, "doc.pdf")
	outPath := filepath.Join(outputDir, "doc.md")
	if err := os.WriteFile(outPath, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewWithExtractor(&fakeExtractor{text: map[string]string{"doc.pdf": "fresh"}}, nil)
	result := c.ConvertFile(filepath.Join(inputDir, "doc.pdf"), outPath)
	if result.Status != StatusSuccess {
		t.Fatalf("status = %s (%s)", result.Status, result.Message)
	}

	data, _ := os.ReadFile(outPath)
	if string(data) != "fresh\n" {
		t.Errorf("output = %q, want overwritten content", data)
	}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  string
		want string
	}{
		{"file is encrypted", "Encrypted PDF not supported"},
		{"password required", "Encrypted PDF not supported"},
		{"malformed PDF: corrupt xref table", "Corrupted or invalid PDF file"},
		{"invalid trailer", "Corrupted or invalid PDF file"},
		{"unexpected EOF", "PDF parsing error: unexpected EOF"},
	}
	for _, tt := range tests {
		if got := describeError(errors.New(tt.err)); got != tt.want {
			t.Errorf("describeError(%q) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestFormatSummary(t *testing.T) {
	job := &Job{}
	job.AddResult(Result{
		Document: Document{Filename: "a.pdf"},
		Status:   StatusSuccess,
		Output:   &OutputArtifact{Filename: "a.md"},
	})
	job.AddResult(Result{
		Document: Document{Filename: "b.pdf"},
		Status:   StatusFailure,
		Message:  "Corrupted or invalid PDF file",
	})

	out := FormatSummary(job)
	if !strings.Contains(out, "- a.pdf: OK (a.md)") {
		t.Errorf("missing success line:\n%s", out)
	}
	if !strings.Contains(out, "- b.pdf: FAILED (Corrupted or invalid PDF file)") {
		t.Errorf("missing failure line:\n%s", out)
	}
	if !strings.HasSuffix(out, "Processed: 2 | Succeeded: 1 | Failed: 1") {
		t.Errorf("missing summary line:\n%s", out)
	}
}

func TestSummaryJSON(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeFiles(t, inputDir, "doc.pdf")

	c := NewWithExtractor(&fakeExtractor{}, nil)
	job, err := c.ConvertBatch(inputDir, outputDir)
	if err != nil {
		t.Fatalf("ConvertBatch: %v", err)
	}

	data, err := SummaryJSON(job)
	if err != nil {
		t.Fatalf("SummaryJSON: %v", err)
	}

	var decoded struct {
		StartTime  string   `json:"startTime"`
		EndTime    string   `json:"endTime"`
		DurationMs *int64   `json:"durationMs"`
		Total      int      `json:"total"`
		Succeeded  int      `json:"succeeded"`
		Failed     int      `json:"failed"`
		Results    []Result `json:"results"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.StartTime == "" || decoded.EndTime == "" || decoded.DurationMs == nil {
		t.Error("timing fields missing")
	}
	if decoded.Total != 1 || decoded.Succeeded != 1 {
		t.Errorf("total=%d succeeded=%d", decoded.Total, decoded.Succeeded)
	}
	if len(decoded.Results) != 1 || decoded.Results[0].Document.Filename != "doc.pdf" {
		t.Errorf("results = %+v", decoded.Results)
	}
}
