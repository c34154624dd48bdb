package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avolkov/pdfrag/internal/chunker"
	"github.com/avolkov/pdfrag/internal/composer"
	"github.com/avolkov/pdfrag/internal/config"
	"github.com/avolkov/pdfrag/internal/converter"
	"github.com/avolkov/pdfrag/internal/ollama"
	"github.com/avolkov/pdfrag/internal/pipeline"
	"github.com/avolkov/pdfrag/internal/retrieval"
	"github.com/avolkov/pdfrag/internal/storage"
)

const defaultDBPath = "data/db"

// --- parse ---

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Convert PDF files to Markdown",
	Long: `Convert every PDF in the input directory to a Markdown file in the
output directory. Existing output files are overwritten. Per-file failures
are reported in the summary and do not abort the batch.

Examples:
  pdfrag parse --input docs/pdf --output docs/md
  pdfrag parse --input docs/pdf --output docs/md --json > report.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		asJSON, _ := cmd.Flags().GetBool("json")

		c := converter.New(nil)
		job, err := c.ConvertBatch(input, output)
		if err != nil {
			return err
		}

		if asJSON {
			data, err := converter.SummaryJSON(job)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(converter.FormatSummary(job))
		if job.Failed > 0 {
			printWarning("%d file(s) failed to convert", job.Failed)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().String("input", "", "directory containing PDF files")
	parseCmd.Flags().String("output", "", "directory for generated Markdown files")
	parseCmd.Flags().Bool("json", false, "emit a machine-readable JSON summary")
	parseCmd.MarkFlagRequired("input")
	parseCmd.MarkFlagRequired("output")
}

// --- process ---

var processCmd = &cobra.Command{
	Use:   "process <path>",
	Short: "Chunk and embed Markdown files into the vector database",
	Long: `Split Markdown files into chunks, embed them with the configured
Ollama embedding model, and store them in the SQLite vector database.
Already-stored chunks are skipped, so re-processing a file is cheap.

Examples:
  pdfrag process docs/md
  pdfrag process docs/md/report.md --db-path /var/lib/pdfrag`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		dbPath, _ := cmd.Flags().GetString("db-path")
		ctx := cmd.Context()

		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("input path '%s' does not exist", path)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client := ollama.New(cfg.Ollama.BaseURL)
		if err := ollama.CheckConnection(ctx, client); err != nil {
			return err
		}
		if err := ollama.CheckModel(ctx, client, cfg.Ollama.EmbedModel); err != nil {
			return err
		}

		store, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		splitter, err := chunker.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
		if err != nil {
			return err
		}

		processor := pipeline.NewProcessor(
			splitter,
			retrieval.NewEmbedder(client, cfg.Ollama.EmbedModel),
			retrieval.NewSQLiteStore(store.DB()),
			cfg.Database.Collection,
			nil,
		)

		printStep("Processing %s", path)
		job, err := processor.ProcessBatch(ctx, path)
		if err != nil {
			return err
		}

		for _, r := range job.Results {
			name := shortName(r.SourceFile)
			if r.Status == "success" {
				fmt.Printf("- %s: Added %d chunks (%d skipped - duplicates)\n",
					name, r.ChunksAdded, r.ChunksSkipped)
			} else {
				fmt.Printf("- %s: ERROR: %s\n", name, r.Message)
			}
		}
		fmt.Printf("Summary: Processed %d files | Added %d chunks | Skipped %d chunks\n",
			job.TotalFiles, job.TotalAdded, job.TotalSkipped)
		fmt.Printf("Database location: %s\n", dbPath)

		if job.Failed > 0 {
			return fmt.Errorf("%d file(s) failed to process", job.Failed)
		}
		printSuccess("Processed %d file(s)", job.TotalFiles)
		return nil
	},
}

// --- pull ---

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the configured Ollama models",
	Long: `Ensure the configured embedding and query models are available in the
local Ollama instance, pulling any that are missing.

Example:
  pdfrag pull`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client := ollama.New(cfg.Ollama.BaseURL)
		if err := ollama.CheckConnection(ctx, client); err != nil {
			return err
		}

		models := []string{cfg.Ollama.EmbedModel}
		if cfg.Ollama.QueryModel != cfg.Ollama.EmbedModel {
			models = append(models, cfg.Ollama.QueryModel)
		}

		failed := 0
		for _, model := range models {
			if err := ollama.EnsureModel(ctx, client, model, os.Stderr); err != nil {
				printError("%v", err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d model(s) failed to pull", failed)
		}
		printSuccess("All models ready")
		return nil
	},
}

// --- query ---

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Answer a question from the processed documents",
	Long: `Embed the question, retrieve the most similar stored chunks, and
generate an answer with the configured Ollama query model. The answer is
printed to stdout; diagnostics go to stderr.

Examples:
  pdfrag query "What does the contract say about termination?"
  pdfrag query "Summarize chapter 3" --db-path /var/lib/pdfrag`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("query text is empty")
		}
		dbPath, _ := cmd.Flags().GetString("db-path")
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("%w at '%s'. Run 'pdfrag process' first.",
				pipeline.ErrDatabaseNotFound, dbPath)
		}
		if !storage.Exists(dbPath) {
			return fmt.Errorf("%w. Process some documents first.", pipeline.ErrDatabaseEmpty)
		}

		client := ollama.New(cfg.Ollama.BaseURL)
		if err := ollama.CheckConnection(ctx, client); err != nil {
			return err
		}
		if err := ollama.CheckModel(ctx, client, cfg.Ollama.EmbedModel); err != nil {
			return err
		}
		if err := ollama.CheckModel(ctx, client, cfg.Ollama.QueryModel); err != nil {
			return err
		}

		store, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		vectorStore := retrieval.NewSQLiteStore(store.DB())
		answerer := pipeline.NewAnswerer(
			retrieval.NewRetriever(retrieval.NewEmbedder(client, cfg.Ollama.EmbedModel), vectorStore),
			vectorStore,
			composer.New(0),
			client,
			pipeline.AnswererConfig{
				QueryModel:    cfg.Ollama.QueryModel,
				Collection:    cfg.Database.Collection,
				TopK:          cfg.Retrieval.TopK,
				MinSimilarity: cfg.Retrieval.MinSimilarity,
			},
			nil,
		)

		answer, err := answerer.Answer(ctx, question)
		if err != nil {
			if errors.Is(err, pipeline.ErrDatabaseEmpty) {
				return fmt.Errorf("%w. Process some documents first.", pipeline.ErrDatabaseEmpty)
			}
			return err
		}

		fmt.Println(answer)
		return nil
	},
}

func init() {
	processCmd.Flags().String("db-path", defaultDBPath, "vector database directory")
	queryCmd.Flags().String("db-path", defaultDBPath, "vector database directory")
}

// shortName trims the path down to the base filename for per-file output.
func shortName(path string) string {
	return filepath.Base(path)
}
