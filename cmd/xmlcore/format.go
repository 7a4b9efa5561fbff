package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucidxml/xmlcore/xmlcore"
)

var (
	formatReadable   bool
	formatStripCDATA bool
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Parse a file and re-serialize it",
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
		var sf xmlcore.SerializeFlag
		if formatReadable {
			sf |= xmlcore.Readable
		}
		if formatStripCDATA {
			sf |= xmlcore.StripCDATA
		}
		out, err := xmlcore.Serialize(doc, sf)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().BoolVar(&formatReadable, "readable", false, "indent nested elements")
	formatCmd.Flags().BoolVar(&formatStripCDATA, "strip-cdata", false, "emit CDATA sections as plain escaped text")
}
