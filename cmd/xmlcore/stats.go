package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucidxml/xmlcore/xmlcore"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Print a shape summary of a parsed document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc, err := xmlcore.Parse(data, parseFlagsFromCLI())
		if err != nil {
			return err
		}
		s := doc.Stats()
		fmt.Printf("tags:         %d\n", s.TotalTags)
		fmt.Printf("elements:     %d\n", s.Elements)
		fmt.Printf("content:      %d\n", s.ContentNodes)
		fmt.Printf("comments:     %d\n", s.Comments)
		fmt.Printf("instructions: %d\n", s.Instructions)
		fmt.Printf("max depth:    %d\n", s.MaxDepth)
		fmt.Printf("instance id:  %s\n", doc.InstanceID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
