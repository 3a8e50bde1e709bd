package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/efermi/coolreader/internal/catalog"
	"github.com/efermi/coolreader/internal/query"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var valuesOnly bool

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Print a directory subtree as JSON records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := openLibrary().load(cmd.Context(), argOrEmpty(args, 0), cfg.ScanDepth)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), catalog.ToRecord(dir))
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <dir> <jsonpath>",
	Short: "Filter the records below a directory with JSONPath",
	Long: `Evaluates a JSONPath expression against the array of entry records
below the directory, for example:

  coolreader query ~/Books '$[?(@.format == "FB2")]'
  coolreader query ~/Books '$[*].title' --values`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := openLibrary().load(cmd.Context(), args[0], cfg.ScanDepth)
		if err != nil {
			return err
		}
		records := query.Records(dir)
		if valuesOnly {
			vals, err := query.Values(records, args[1])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), vals)
		}
		hits, err := query.Select(records, args[1])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), hits)
	},
}

// writeJSON indents output meant for a terminal and keeps piped output
// compact.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if isTerminal(w) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	queryCmd.Flags().BoolVar(&valuesOnly, "values", false, "Print raw matches instead of whole records")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(queryCmd)
}
