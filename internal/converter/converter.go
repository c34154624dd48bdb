package converter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Converter turns PDF files into Markdown files on disk.
type Converter struct {
	extractor TextExtractor
	logger    *slog.Logger
}

// New creates a Converter using the default PDF extractor.
func New(logger *slog.Logger) *Converter {
	return NewWithExtractor(NewPDFExtractor(), logger)
}

// NewWithExtractor creates a Converter with a custom extractor.
func NewWithExtractor(extractor TextExtractor, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{extractor: extractor, logger: logger}
}

// FindPDFs lists the PDF files directly inside dir, matched case-insensitively
// by extension and returned in sorted order. Subdirectories are not searched.
func FindPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ConvertBatch converts every PDF in inputDir, writing Markdown files into
// outputDir. Per-file failures are recorded in the job; only problems with
// the directories themselves are returned as an error.
func (c *Converter) ConvertBatch(inputDir, outputDir string) (*Job, error) {
	job := &Job{StartTime: time.Now().UTC()}

	files, err := FindPDFs(inputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	for _, path := range files {
		result := c.ConvertFile(path, outputPath(path, outputDir))
		job.AddResult(result)
	}

	job.EndTime = time.Now().UTC()
	c.logger.Info("conversion finished",
		"total", job.Total, "succeeded", job.Succeeded, "failed", job.Failed,
		"duration_ms", job.DurationMs())
	return job, nil
}

// ConvertFile converts a single PDF to Markdown, overwriting any existing
// output file. Failures never abort the caller; they come back in the Result.
func (c *Converter) ConvertFile(inputPath, outPath string) Result {
	doc := Document{
		Filename: filepath.Base(inputPath),
		Path:     inputPath,
	}
	if info, err := os.Stat(inputPath); err == nil {
		doc.SizeBytes = info.Size()
	}

	text, err := c.extractor.Extract(inputPath)
	if err != nil {
		c.logger.Warn("conversion failed", "file", doc.Filename, "error", err)
		return Result{Document: doc, Status: StatusFailure, Message: describeError(err)}
	}

	if err := os.WriteFile(outPath, []byte(text+"\n"), 0o644); err != nil {
		return Result{
			Document: doc,
			Status:   StatusFailure,
			Message:  fmt.Sprintf("writing output file: %s", err.Error()),
		}
	}

	artifact := &OutputArtifact{
		Filename: filepath.Base(outPath),
		Path:     outPath,
	}
	if info, err := os.Stat(outPath); err == nil {
		artifact.SizeBytes = info.Size()
	}

	c.logger.Debug("converted", "file", doc.Filename, "output", artifact.Filename)
	return Result{Document: doc, Status: StatusSuccess, Output: artifact}
}

func outputPath(pdfPath, outputDir string) string {
	base := filepath.Base(pdfPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".md")
}
