package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:     "pdfrag",
	Short:   "Convert PDFs to Markdown and answer questions about them with local models",
	Version: version,
	Long: `pdfrag is a local document question answering pipeline.

It converts PDF files to Markdown, splits them into chunks, embeds the
chunks with a local Ollama model into a SQLite vector database, and
answers questions using retrieval augmented generation.

Typical flow:
  pdfrag parse --input docs/pdf --output docs/md
  pdfrag pull
  pdfrag process docs/md
  pdfrag query "What does the contract say about termination?"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; environment variables win either way.
		_ = godotenv.Load()
		setupLogging(os.Getenv("LOG_LEVEL"))
	},
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(queryCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
