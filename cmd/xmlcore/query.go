package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucidxml/xmlcore/xmlcore"
)

var queryCmd = &cobra.Command{
	Use:   "query [file] [xpath]",
	Short: "Evaluate an xpath against a file and print every match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc, err := xmlcore.Parse(data, parseFlagsFromCLI())
		if err != nil {
			return err
		}
		count := 0
		err = doc.QueryAll(args[1], func(t *xmlcore.Tag, attr string) bool {
			count++
			if attr != "" {
				v, _ := t.Attrib(attr)
				fmt.Printf("%d: @%s=%q\n", count, attr, v)
				return true
			}
			out, serr := xmlcore.SerializeTag(doc, t, 0)
			if serr != nil {
				fmt.Printf("%d: <error: %v>\n", count, serr)
				return true
			}
			fmt.Printf("%d: %s\n", count, string(out))
			return true
		})
		if err != nil {
			return err
		}
		if count == 0 {
			fmt.Println("no matches")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
