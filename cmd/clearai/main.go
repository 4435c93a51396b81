package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hanpf2391/clear-ai-sub001/internal/config"
	"github.com/hanpf2391/clear-ai-sub001/internal/progress"
	"github.com/hanpf2391/clear-ai-sub001/internal/reporter"
	"github.com/hanpf2391/clear-ai-sub001/internal/scanner"
	"github.com/hanpf2391/clear-ai-sub001/internal/security"
	"github.com/hanpf2391/clear-ai-sub001/internal/ui"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  string
	recursive   bool
	maxDepth    int
	workers     int
	outputFmt   string
	interactive bool
	noColor     bool
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clearai",
	Short: "Filesystem cleanup assistant",
	Long: `ClearAI scans directory trees and condenses them into a small number of
homogeneous file clusters (same directory, extension and recency) for
review. It never deletes anything itself.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
}

var scanCmd = &cobra.Command{
	Use:   "scan [roots...]",
	Short: "Scan directories and group their files into clusters",
	Long: `Scans one or more root directories concurrently and reports the resulting
file clusters. A root that fails to scan does not affect the others;
partial results are still reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
		if err := config.GetDefault().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default ~/.config/clearai/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "include per-file entries in json/yaml output")

	scanCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	scanCmd.Flags().IntVarP(&maxDepth, "max-depth", "d", 1, "maximum recursion depth (with --recursive)")
	scanCmd.Flags().IntVarP(&workers, "workers", "w", 0, "scan worker count (0 = auto)")
	scanCmd.Flags().StringVarP(&outputFmt, "output", "o", "", "output format: summary, table, json, yaml")
	scanCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show live progress while scanning")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override file defaults only when set explicitly.
	if cmd.Flags().Changed("recursive") {
		cfg.Scan.Recursive = recursive
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.Scan.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("workers") {
		cfg.Scan.Workers = workers
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Format = outputFmt
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if noColor || cfg.Output.NoColor {
		color.NoColor = true
	}

	format := reporter.OutputFormat(cfg.Output.Format)

	roots := make([]string, len(args))
	for i, arg := range args {
		roots[i] = filepath.Clean(arg)
	}

	guard := security.NewPathGuard(append(security.DefaultProtectedPrefixes(), cfg.ProtectedPaths...))
	opts := scanner.Options{
		Recursive:         cfg.Scan.Recursive,
		MaxDepth:          cfg.Scan.MaxDepth,
		Workers:           cfg.Scan.Workers,
		ExcludeExtensions: cfg.ExcludeExts,
	}

	tracker := progress.NewTracker()
	tracker.Init(roots)

	useTUI := interactive && isatty.IsTerminal(os.Stdout.Fd())
	if !useTUI {
		// One line per root as it finishes, instead of the live view.
		tracker.Subscribe(func(ev progress.Event) {
			switch ev.State.Status {
			case progress.StatusCompleted, progress.StatusFailed:
				fmt.Fprintln(os.Stderr, progress.FormatState(ev.Root, ev.State))
			}
		})
	}

	// Roots scan fully independently; one failing root never blocks the rest.
	results := make([]*scanner.Result, len(roots))
	var g errgroup.Group
	ctx := cmd.Context()
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			s := scanner.New(guard, opts)
			s.SetTracker(tracker)
			results[i] = s.ScanAndCluster(ctx, root)
			return nil
		})
	}

	if useTUI {
		p := tea.NewProgram(ui.NewScanModel(tracker))
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "progress display failed: %v\n", err)
		}
	}

	_ = g.Wait()
	tracker.CompleteAll()

	rep := reporter.New(os.Stdout, format)
	rep.SetVerbose(cfg.Verbose)
	return rep.Report(results...)
}
