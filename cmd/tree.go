package cmd

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
	"github.com/efermi/coolreader/internal/catalog"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [dir]",
	Short: "Print a directory subtree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := openLibrary().load(cmd.Context(), argOrEmpty(args, 0), cfg.ScanDepth)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderTree(dir, catalog.SortOrderFromName(cfg.Sort)))
		return nil
	},
}

// renderTree sorts every sortable plain directory below e and draws it.
// Virtual directories keep the order they were built with.
func renderTree(e *catalog.Entry, order catalog.SortOrder) string {
	label := e.Pathname
	if e.Title != "" {
		label = e.Title
	}
	t := gotree.New(label)
	addChildren(t, e, order)
	return t.Print()
}

func addChildren(t gotree.Tree, e *catalog.Entry, order catalog.SortOrder) {
	if e.AllowSorting() && !e.IsSpecialDir() {
		e.Sort(order)
	}
	for _, d := range e.Dirs() {
		name := d.FileName + "/"
		if d.IsSpecialDir() {
			name = d.Title
		}
		addChildren(t.Add(name), d, order)
	}
	for _, f := range e.Files() {
		t.Add(fileLabel(f))
	}
}

func fileLabel(e *catalog.Entry) string {
	if meta := bookLabel(e); meta != "" && meta != e.FileName {
		return e.DisplayName() + " (" + meta + ")"
	}
	return e.DisplayName()
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
