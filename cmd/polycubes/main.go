// Command polycubes generates polycube list files for sizes 1..NMAX,
// escalating each from the previous via the enumeration engine.
//
// Usage: polycubes [-n|--maxcount NMAX] [-s|--seed FILE] [-h|--help] [OUTDIR]
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/tjol/gopolycubes/codec"
	"github.com/tjol/gopolycubes/coord"
	"github.com/tjol/gopolycubes/internal/config"
	"github.com/tjol/gopolycubes/internal/errs"
	"github.com/tjol/gopolycubes/internal/sizeclass"
	"github.com/tjol/gopolycubes/internal/timefmt"
	"github.com/tjol/gopolycubes/polycube"
	"github.com/tjol/gopolycubes/search"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("polycubes", pflag.ContinueOnError)

	maxCount := fs.IntP("maxcount", "n", 6, "Largest polycube size to generate")
	seedFile := fs.StringP("seed", "s", "", "Seed file to start from instead of the single 1-cube")
	configFile := fs.String("config", "", "Optional YAML config overriding worker count, chunk size, and log level/format")
	help := fs.BoolP("help", "h", false, "Display help text")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-n MAXCOUNT] [-s SEEDFILE] [--config FILE] [OUTDIR]\n", os.Args[0])
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fs.Usage()
		return 2
	}
	if *help {
		fs.Usage()
		return 0
	}

	outDir := "/tmp"
	if fs.NArg() > 0 {
		outDir = fs.Arg(0)
	}

	if *maxCount <= 0 {
		fmt.Fprintln(os.Stderr, "ERROR: maxcount must be positive!")
		return 2
	}
	if err := sizeclass.Validate(*maxCount); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 2
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			return 2
		}
	}

	logger := newLogger(cfg)

	if err := generateAll(logger, outDir, *maxCount, *seedFile, cfg); err != nil {
		var arg errs.ArgumentError
		if errors.As(err, &arg) {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			return 2
		}
		logger.Error("generation failed", "err", err)
		return 1
	}

	return 0
}

func newLogger(cfg config.Config) *log.Logger {
	opts := log.Options{ReportTimestamp: true}
	if cfg.LogFormat == "json" {
		opts.Formatter = log.JSONFormatter
	}
	logger := log.NewWithOptions(os.Stderr, opts)

	switch cfg.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

func generateAll(logger *log.Logger, outDir string, maxCount int, seedFile string, cfg config.Config) error {
	firstPath := filepath.Join(outDir, "polycubes_1.bin")

	if seedFile == "" {
		w, err := codec.Create(firstPath, 1)
		if err != nil {
			return err
		}
		if err := w.Write(polycube.New([]coord.Coord{{}})); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
	} else {
		firstPath = seedFile
	}

	for n := 2; n <= maxCount; n++ {
		inPath := filepath.Join(outDir, fmt.Sprintf("polycubes_%d.bin", n-1))
		if n == 2 {
			inPath = firstPath
		}
		outPath := filepath.Join(outDir, fmt.Sprintf("polycubes_%d.bin", n))

		reader, err := codec.Open(inPath)
		if err != nil {
			return err
		}
		if reader.CubeCount() != n-1 {
			reader.Close()
			return errs.BadSize{Want: n - 1, Got: reader.CubeCount()}
		}

		gen := &search.Generator{
			OutPath:      outPath,
			N:            n,
			Chunk:        cfg.Chunk,
			SearchParams: search.DefaultParams(n, cfg.SerialChunkBase, cfg.Workers),
			OnProgress: func(done, total int, elapsed time.Duration) {
				now := time.Now()
				progress := float64(done) / float64(total)
				eta := now.Add(time.Duration(float64(elapsed)/progress) - elapsed)
				logger.Info("generating",
					"size", n,
					"progress_pct", fmt.Sprintf("%.1f", progress*100),
					"done", done,
					"total", total,
					"at", timefmt.FormatLocal("%FT%T", now),
					"eta", timefmt.FormatLocal("%R", eta),
				)
			},
			OnQueueWarning: func(pending int) {
				logger.Warn("merge queue backed up; IO is slower than compute", "pending_batches", pending)
			},
		}

		result, err := gen.Run(reader)
		closeErr := reader.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}

		logger.Info("wrote list",
			"count", result.Count,
			"size", n,
			"path", outPath,
			"checksum", result.Checksum,
		)
	}

	return nil
}
