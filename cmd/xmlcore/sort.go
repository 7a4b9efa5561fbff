package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucidxml/xmlcore/xmlcore"
)

var (
	sortDesc      bool
	sortCheckOnly bool
)

var sortCmd = &cobra.Command{
	Use:   "sort [file] [xpath] [sort-spec]",
	Short: "Sort the element children matched by xpath per sort-spec",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc, err := xmlcore.Parse(data, parseFlagsFromCLI())
		if err != nil {
			return err
		}
		parent, _, err := doc.Query(args[1])
		if err != nil {
			return err
		}
		keys := xmlcore.ParseSortSpec(args[2])
		if sortDesc {
			for i := range keys {
				keys[i].Desc = !keys[i].Desc
			}
		}
		if sortCheckOnly && doc.IsSorted(parent, keys) {
			fmt.Println("already sorted")
			return nil
		}
		if err := doc.SortChildren(parent, keys); err != nil {
			return err
		}
		out, err := xmlcore.Serialize(doc, xmlcore.Readable)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().BoolVar(&sortDesc, "desc", false, "reverse every key's direction")
	sortCmd.Flags().BoolVar(&sortCheckOnly, "check-sort", false, "skip sorting if already in order")
}
