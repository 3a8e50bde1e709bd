package cmd

import (
	"fmt"
	"strings"

	"github.com/efermi/coolreader/internal/catalog"
	"github.com/efermi/coolreader/internal/group"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups <dir> <dimension>",
	Short: "Show the books below a directory grouped by author, series, genre, rating, state or title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dim, ok := group.ParseDimension(args[1])
		if !ok {
			var names []string
			for _, d := range group.Dimensions() {
				names = append(names, d.String())
			}
			return fmt.Errorf("unknown dimension %q (want one of %s)", args[1], strings.Join(names, ", "))
		}
		dir, err := openLibrary().load(cmd.Context(), args[0], cfg.ScanDepth)
		if err != nil {
			return err
		}
		order := catalog.SortOrderFromName(cfg.Sort)
		root := group.Build(dir).Root(dim, order)
		fmt.Fprint(cmd.OutOrStdout(), renderTree(root, order))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}
