package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	manifestPath string
	targetDSN    string
)

var rootCmd = &cobra.Command{
	Use:   "dumpshift <input.mysql|-> <output.sql|->",
	Short: "Convert a MySQL dump into warehouse-compatible PostgreSQL DDL",
	Long: `dumpshift rewrites a dump made with

  mysqldump --compatible=postgresql --default-character-set=utf8 -r db.mysql db

into a script for a PostgreSQL-based columnar warehouse. Use "-" for
standard input or standard output.`,
	Args:          cobra.ExactArgs(2),
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = versionString()
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	rootCmd.Flags().StringVar(&manifestPath, "manifest", "", "write a SQLite manifest of the conversion to this path")
	rootCmd.Flags().StringVar(&targetDSN, "target-dsn", "", "run the converted script against this PostgreSQL DSN")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg := defaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = loadConfig(configPath); err != nil {
			return err
		}
		cfg.Manifest = cfg.resolvePath(cfg.Manifest)
	}
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest = manifestPath
	}
	if cmd.Flags().Changed("target-dsn") {
		cfg.Target.DSN = targetDSN
	}
	if cfg.Target.DSN != "" && outputPath == stdioSentinel {
		return fmt.Errorf("applying to a target requires an output file, not standard output")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Progress shares the terminal with the output when writing to stdout.
	var progressOut io.Writer
	if cfg.Progress && outputPath != stdioSentinel {
		progressOut = os.Stderr
	}

	stats, report, err := convertFiles(inputPath, outputPath, cfg, progressOut)
	if err != nil {
		return err
	}

	log.Printf("converted %d tables, %d inserts, %d deferred statements in %s",
		stats.Tables, stats.Inserts, stats.Deferred, stats.Elapsed.Round(time.Millisecond))
	if stats.Unrecognized > 0 {
		log.Printf("skipped %d unrecognized lines", stats.Unrecognized)
	}
	if stats.DroppedColumns > 0 {
		log.Printf("dropped %d text/blob columns", stats.DroppedColumns)
	}
	for _, w := range collectDroppedColumnWarnings(report) {
		log.Printf("  WARN: %s", w)
	}
	for _, w := range collectPassthroughTypeWarnings(report) {
		log.Printf("  WARN: %s", w)
	}

	if cfg.Manifest != "" {
		log.Printf("writing manifest %s...", cfg.Manifest)
		if err := writeManifest(cfg.Manifest, report); err != nil {
			return err
		}
	}

	if cfg.Target.DSN != "" {
		log.Printf("applying %s to target...", outputPath)
		n, err := applyFile(ctx, cfg.Target.DSN, outputPath, cfg.Apply.IncludeInserts)
		if err != nil {
			return err
		}
		log.Printf("applied %d statements", n)
	}
	return nil
}

// runStats are the conversion counters plus wall time.
type runStats struct {
	Stats
	Elapsed time.Duration
}

// convertFiles opens both ends, converts, and closes them on every path.
func convertFiles(inputPath, outputPath string, cfg *ConvertConfig, progressOut io.Writer) (runStats, *Report, error) {
	total := int64(-1)
	if progressOut != nil {
		n, err := countLines(inputPath)
		if err != nil {
			return runStats{}, nil, err
		}
		total = n
	}

	in, err := openInput(inputPath)
	if err != nil {
		return runStats{}, nil, err
	}
	defer in.Close()

	out, err := openOutput(outputPath)
	if err != nil {
		return runStats{}, nil, err
	}

	tracker := newProgressTracker(progressOut, total)
	report, stats, err := convert(in, out, cfg.convertOptions(), tracker.update)
	tracker.finish()
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	return runStats{Stats: stats, Elapsed: tracker.elapsed()}, report, err
}
