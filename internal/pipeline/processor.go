package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/pdfrag/internal/chunker"
	"github.com/avolkov/pdfrag/internal/retrieval"
)

// ProcessingResult is the outcome of ingesting one Markdown file.
type ProcessingResult struct {
	SourceFile    string
	Status        string
	ChunksAdded   int
	ChunksSkipped int
	Message       string
	Duration      time.Duration
}

// ProcessingJob aggregates per-file results for a processing run.
type ProcessingJob struct {
	StartTime    time.Time
	EndTime      time.Time
	TotalFiles   int
	Succeeded    int
	Failed       int
	TotalAdded   int
	TotalSkipped int
	Results      []ProcessingResult
}

func (j *ProcessingJob) add(r ProcessingResult) {
	j.Results = append(j.Results, r)
	j.TotalFiles++
	if r.Status == "success" {
		j.Succeeded++
	} else {
		j.Failed++
	}
	j.TotalAdded += r.ChunksAdded
	j.TotalSkipped += r.ChunksSkipped
}

// Processor splits Markdown files into chunks, embeds the new ones, and
// stores them in the vector database.
type Processor struct {
	splitter   *chunker.Splitter
	embedder   *retrieval.Embedder
	store      retrieval.VectorStore
	collection string
	logger     *slog.Logger
}

// NewProcessor wires the ingestion pipeline together.
func NewProcessor(splitter *chunker.Splitter, embedder *retrieval.Embedder, store retrieval.VectorStore, collection string, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		splitter:   splitter,
		embedder:   embedder,
		store:      store,
		collection: collection,
		logger:     logger,
	}
}

// ProcessFile ingests a single Markdown file. Chunks whose (source file,
// content) pair is already stored are skipped before any embedding call is
// made, so re-processing a file costs no model time.
func (p *Processor) ProcessFile(ctx context.Context, path string) ProcessingResult {
	start := time.Now()
	result := ProcessingResult{SourceFile: path}
	finish := func(r ProcessingResult) ProcessingResult {
		r.Duration = time.Since(start)
		return r
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Status = "failure"
		result.Message = fmt.Sprintf("reading file: %s", err.Error())
		return finish(result)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		result.Status = "success"
		result.Message = "File is empty"
		return finish(result)
	}

	chunks := p.splitter.Split(text)
	if len(chunks) == 0 {
		result.Status = "success"
		result.Message = "No chunks generated (file too small)"
		return finish(result)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	existing, err := p.store.ContentsBySource(ctx, p.collection, absPath)
	if err != nil {
		result.Status = "failure"
		result.Message = fmt.Sprintf("checking existing chunks: %s", err.Error())
		return finish(result)
	}

	// Within-file repeats also count as skipped; identity is (source, content).
	// Fresh chunks keep their ordinal in the split sequence even when earlier
	// chunks are skipped.
	type freshChunk struct {
		ordinal int
		content string
	}
	seen := make(map[string]bool, len(chunks))
	var fresh []freshChunk
	for i, chunk := range chunks {
		if existing[chunk] || seen[chunk] {
			result.ChunksSkipped++
			continue
		}
		seen[chunk] = true
		fresh = append(fresh, freshChunk{ordinal: i, content: chunk})
	}

	if len(fresh) == 0 {
		result.Status = "success"
		return finish(result)
	}

	texts := make([]string, len(fresh))
	for i, f := range fresh {
		texts[i] = f.content
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		result.Status = "failure"
		result.Message = fmt.Sprintf("embedding chunks: %s", err.Error())
		return finish(result)
	}

	now := time.Now().UTC()
	records := make([]retrieval.Record, len(fresh))
	for i, f := range fresh {
		records[i] = retrieval.Record{
			ID:         uuid.NewString(),
			SourceFile: absPath,
			ChunkIndex: f.ordinal,
			Content:    f.content,
			Embedding:  vectors[i],
			CreatedAt:  now,
		}
	}

	added, err := p.store.Insert(ctx, p.collection, records)
	if err != nil {
		result.Status = "failure"
		result.Message = fmt.Sprintf("storing chunks: %s", err.Error())
		return finish(result)
	}

	result.Status = "success"
	result.ChunksAdded = added
	result.ChunksSkipped += len(fresh) - added
	p.logger.Debug("processed file",
		"file", filepath.Base(path), "added", result.ChunksAdded, "skipped", result.ChunksSkipped)
	return finish(result)
}

// ProcessBatch ingests a Markdown file or every Markdown file directly
// inside a directory (no recursion), in sorted order.
func (p *Processor) ProcessBatch(ctx context.Context, path string) (*ProcessingJob, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = findMarkdownFiles(path)
		if err != nil {
			return nil, err
		}
	} else if !isMarkdown(path) {
		return nil, fmt.Errorf("not a Markdown file: %s", path)
	}

	job := &ProcessingJob{StartTime: time.Now().UTC()}
	for _, file := range files {
		job.add(p.ProcessFile(ctx, file))
	}
	job.EndTime = time.Now().UTC()

	p.logger.Info("processing finished",
		"files", job.TotalFiles, "added", job.TotalAdded, "skipped", job.TotalSkipped,
		"failed", job.Failed)
	return job, nil
}

func findMarkdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isMarkdown(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}
