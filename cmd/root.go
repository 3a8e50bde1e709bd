package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/efermi/coolreader/internal/archive"
	"github.com/efermi/coolreader/internal/catalog"
	"github.com/efermi/coolreader/internal/config"
	"github.com/efermi/coolreader/internal/logging"
	"github.com/efermi/coolreader/internal/probe"
	"github.com/efermi/coolreader/internal/scan"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config

	sortName  string
	scanDepth int
	checksums bool
	hidden    bool
	logLevel  string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&sortName, "sort", "", "Sort order (FILENAME, TIMESTAMP, AUTHOR_TITLE, TITLE_AUTHOR, with _DESC variants)")
	pf.IntVar(&scanDepth, "depth", 0, "Directory levels to descend below the scanned directory")
	pf.BoolVar(&checksums, "checksums", false, "Compute CRC-32 fingerprints for plain files")
	pf.BoolVar(&hidden, "hidden", false, "Include dot-files")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

var rootCmd = &cobra.Command{
	Use:           "coolreader",
	Short:         "Catalog and browse a document library",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		flags := cmd.Flags()
		if flags.Changed("sort") {
			cfg.Sort = sortName
		}
		if flags.Changed("depth") {
			cfg.ScanDepth = scanDepth
		}
		if flags.Changed("checksums") {
			cfg.Checksums = checksums
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return logging.Init(logging.Config{
			Level:      cfg.LogLevel,
			Format:     cfg.LogFormat,
			OutputPath: "stderr",
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync() // ignore
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// library bundles what the subcommands need to load a directory.
type library struct {
	fs      *probe.FS
	scanner *scan.Scanner
	root    *catalog.Entry
}

func openLibrary() *library {
	fsys := probe.OS()
	zips := archive.NewZipIndex(fsys, cfg.ArchiveExts...)
	return &library{
		fs: fsys,
		scanner: scan.New(fsys, zips,
			scan.WithMaxDepth(cfg.ScanDepth),
			scan.WithChecksums(cfg.Checksums),
			scan.WithHidden(hidden),
		),
		root: catalog.NewVirtual(catalog.LibraryRoot, "", "Library"),
	}
}

// load resolves dir (the configured root when empty), hangs it below the
// library root and scans it with the given depth.
func (l *library) load(ctx context.Context, dir string, depth int) (*catalog.Entry, error) {
	if dir == "" {
		dir = cfg.Root
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	r := &catalog.Resolver{Probe: l.fs, Archives: l.scanner.Archives}
	e := r.FromFile(abs)
	e.SetParent(nil)
	l.root.AddDir(e)

	l.scanner.MaxDepth = depth
	if err := l.scanner.Scan(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
