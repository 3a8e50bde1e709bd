package cmd

import (
	"fmt"
	"strings"

	"github.com/efermi/coolreader/internal/catalog"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <dir> <text>",
	Short: "Search titles, authors, series and file names",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := openLibrary().load(cmd.Context(), args[0], cfg.ScanDepth)
		if err != nil {
			return err
		}
		results := search(dir, args[1])
		results.Sort(catalog.SortOrderFromName(cfg.Sort))

		out := cmd.OutOrStdout()
		for _, f := range results.Files() {
			fmt.Fprintln(out, f.CanonicalPath())
		}
		fmt.Fprintf(out, "%d found\n", results.FileCount())
		return nil
	},
}

// search collects copies of the documents below dir whose text fields
// contain text, ignoring case, into a search-results root.
func search(dir *catalog.Entry, text string) *catalog.Entry {
	needle := strings.ToLower(text)
	var hits []*catalog.Entry
	dir.Walk(func(e *catalog.Entry) bool {
		if e.IsDirectory || !matches(e, needle) {
			return true
		}
		hits = append(hits, e.Copy())
		return true
	})
	results := catalog.NewVirtual(catalog.SearchResultsRoot, "", "Search results")
	results.SetItems(hits)
	return results
}

func matches(e *catalog.Entry, needle string) bool {
	for _, field := range []string{e.Title, e.Authors, e.Series, e.FileName, e.ArcName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(findCmd)
}
