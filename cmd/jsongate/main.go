package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/jsongate"
	logAdapter "github.com/bft-labs/jsongate/internal/adapters/log"
	"github.com/bft-labs/jsongate/internal/cliconfig"
	"github.com/bft-labs/jsongate/internal/generate"
	"github.com/bft-labs/jsongate/internal/metrics"
	"github.com/bft-labs/jsongate/internal/report"
	"github.com/bft-labs/jsongate/internal/watch"
)

const longHelp = `Validate a directory of JSON user records and sort them.

Every record is checked against the user schema and copied, byte for byte,
into the valid or the invalid directory. A malformed or invalid record never
stops the batch; only unusable configuration or output directories do.

Configuration is read from $HOME/.jsongate/config.toml, then JSONGATE_*
environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  jsongate gen -v 10 -i 5 -d ./test_data
  jsongate --source ./test_data --workers 4 --report run.yaml
  jsongate watch --source ./inbox --debounce 1s
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := cliconfig.Logger()
		log.Error().Err(err).Msg("jsongate")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "jsongate",
		Short:         "Validate JSON user records and route them to valid/invalid directories",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := loadConfig(cmd, cfgPath, &cfg)
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()

			if _, err := runOnce(ctx, cfg, log, cmd.OutOrStdout()); err != nil {
				if errors.Is(err, context.Canceled) {
					log.Warn().Msg("run interrupted, remaining records skipped")
					return nil
				}
				return err
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.jsongate/config.toml)")
	pf.StringVar(&cfg.SourceDir, "source", cfg.SourceDir, "directory holding the records")
	pf.StringVar(&cfg.ValidDir, "valid-dir", cfg.ValidDir, "directory receiving valid records")
	pf.StringVar(&cfg.InvalidDir, "invalid-dir", cfg.InvalidDir, "directory receiving invalid records")
	pf.StringVar(&cfg.Suffix, "suffix", cfg.Suffix, `file name suffix of records ("*" for every file)`)
	pf.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	pf.BoolVar(&cfg.CreateDirs, "create-dirs", cfg.CreateDirs, "create missing output directories")
	pf.StringVar(&cfg.Report, "report", cfg.Report, "write a run report (.json, .yaml or .yml)")
	pf.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus textfile metrics after each run")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period before a watch re-run")

	root.AddCommand(newGenCmd(), newWatchCmd(&cfg, &cfgPath))
	return root
}

// loadConfig applies file, env and flag settings in that order of
// increasing precedence, then validates.
func loadConfig(cmd *cobra.Command, cfgPath string, cfg *cliconfig.Config) (zerolog.Logger, error) {
	log := cliconfig.Logger()

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return log, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return log, err
		}
	}
	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return log, err
	}
	if err := cfg.Validate(); err != nil {
		return log, err
	}

	level, err := cliconfig.ParseLevel(cfg.LogLevel)
	if err != nil {
		return log, err
	}
	log = log.Level(level)
	log.Debug().Interface("config", cfg).Msg("configuration")
	return log, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// runOnce performs one run and writes the optional report and metrics.
func runOnce(ctx context.Context, cfg cliconfig.Config, log zerolog.Logger, out io.Writer) (jsongate.Summary, error) {
	m := metrics.New()

	summary, err := jsongate.Run(ctx, jsongate.Config{
		SourceDir:    cfg.SourceDir,
		SourceSuffix: cfg.Suffix,
		ValidDir:     cfg.ValidDir,
		InvalidDir:   cfg.InvalidDir,
		CreateDirs:   cfg.CreateDirs,
		Workers:      cfg.Workers,
	},
		jsongate.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
		jsongate.WithObserver(m),
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		return summary, err
	}

	printSummary(out, summary)

	if cfg.Report != "" {
		if werr := report.WriteFile(cfg.Report, summary); werr != nil {
			log.Error().Err(werr).Str("path", cfg.Report).Msg("write report")
		}
	}
	if cfg.MetricsFile != "" {
		if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
			log.Error().Err(werr).Str("path", cfg.MetricsFile).Msg("write metrics")
		}
	}
	return summary, err
}

func printSummary(w io.Writer, s jsongate.Summary) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	bold.Fprintf(w, "Run %s finished in %s\n", s.RunID, s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  total:    %d (workers %d)\n", s.Total, s.Workers)
	green.Fprintf(w, "  valid:    %d\n", s.Valid)
	yellow.Fprintf(w, "  invalid:  %d\n", s.Invalid)
	if s.IOError > 0 {
		red.Fprintf(w, "  io error: %d\n", s.IOError)
	}
	if s.Canceled {
		red.Fprintf(w, "  canceled: %d skipped\n", s.Skipped)
	}
}

func newGenCmd() *cobra.Command {
	opts := generate.Options{Valid: 10, Invalid: 5, Dir: "./test_data"}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate sample valid and invalid user records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.Seed = uint64(os.Getpid())
			}
			files, err := generate.Files(opts)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
				"Generated %d valid and %d invalid records in %s\n", opts.Valid, opts.Invalid, opts.Dir)
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), " ", f)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Valid, "valid", "v", opts.Valid, "number of valid records")
	cmd.Flags().IntVarP(&opts.Invalid, "invalid", "i", opts.Invalid, "number of invalid records")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", opts.Dir, "output directory")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default: process id)")
	return cmd
}

func newWatchCmd(cfg *cliconfig.Config, cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run whenever records are added to the source directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := loadConfig(cmd, *cfgPath, cfg)
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()

			w := watch.New(watch.Config{
				Dir:        cfg.SourceDir,
				Suffix:     cfg.Suffix,
				Debounce:   cfg.Debounce,
				RunOnStart: true,
			}, func(ctx context.Context) error {
				_, err := runOnce(ctx, *cfg, log, cmd.OutOrStdout())
				return err
			}, logAdapter.NewZerologAdapterWithLogger(log))

			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			select {
			case <-ctx.Done():
				log.Info().Msg("received signal, stopping...")
			case <-w.Done():
				if w.State() == watch.StateCrashed {
					log.Error().Msg("watcher crashed")
				}
			}
			return w.Stop()
		},
	}
}
