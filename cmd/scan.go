package cmd

import (
	"fmt"
	"time"

	"github.com/efermi/coolreader/internal/catalog"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a library directory and print a summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		dir, err := openLibrary().load(cmd.Context(), argOrEmpty(args, 0), cfg.ScanDepth)
		if err != nil {
			return err
		}
		s := summarize(dir)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d directories, %d archives, %d documents (%d bytes) in %v\n",
			dir.Pathname, s.dirs, s.archives, s.docs, s.bytes, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

type summary struct {
	dirs, archives, docs int
	bytes                int64
}

func summarize(dir *catalog.Entry) summary {
	var s summary
	dir.Walk(func(e *catalog.Entry) bool {
		if e == dir {
			return true
		}
		switch e.Kind() {
		case catalog.KindDir:
			s.dirs++
		case catalog.KindArchive:
			s.archives++
		default:
			s.docs++
			s.bytes += e.Size
		}
		return true
	})
	return s
}

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List one directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := openLibrary().load(cmd.Context(), argOrEmpty(args, 0), 0)
		if err != nil {
			return err
		}
		if dir.AllowSorting() {
			dir.Sort(catalog.SortOrderFromName(cfg.Sort))
		}
		out := cmd.OutOrStdout()
		for i := 0; i < dir.ItemCount(); i++ {
			fmt.Fprintln(out, listLine(dir.Item(i)))
		}
		return nil
	},
}

func listLine(e *catalog.Entry) string {
	switch e.Kind() {
	case catalog.KindDir:
		return fmt.Sprintf("%-5s %10s  %s/", "DIR", "", e.FileName)
	case catalog.KindArchive:
		return fmt.Sprintf("%-5s %10d  %s (%d documents)", "ZIP", e.Size, e.FileName, e.FileCount())
	}
	line := fmt.Sprintf("%-5s %10d  %s", e.Format, e.Size, e.DisplayName())
	if meta := bookLabel(e); meta != "" {
		line += "  [" + meta + "]"
	}
	return line
}

// bookLabel is "Authors - Title" with whatever parts are known.
func bookLabel(e *catalog.Entry) string {
	authors := catalog.FormatAuthors(e.Authors)
	switch {
	case authors != "" && e.Title != "":
		return authors + " - " + e.Title
	case authors != "":
		return authors
	}
	return e.Title
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(lsCmd)
}
