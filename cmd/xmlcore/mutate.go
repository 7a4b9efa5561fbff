package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucidxml/xmlcore/xmlcore"
)

var (
	mutateInsertXML   string
	mutateInsertXPath string
	mutateSetAttrib   string
	mutateRemoveAttr  bool
	mutateRemoveXPath string
)

var mutateCmd = &cobra.Command{
	Use:   "mutate [file]",
	Short: "Apply one mutation to a file and print the result",
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

		switch {
		case mutateInsertXML != "":
			parts := strings.SplitN(mutateInsertXML, ",", 3)
			if len(parts) != 3 {
				return fmt.Errorf("--insert-xml wants target-id,where,xml")
			}
			id, err := strconv.ParseUint(parts[0], 10, 32)
			if err != nil {
				return err
			}
			where, err := parseWhere(parts[1])
			if err != nil {
				return err
			}
			if _, err := doc.InsertXML(uint32(id), where, parts[2], parseFlagsFromCLI()); err != nil {
				return err
			}
		case mutateInsertXPath != "":
			parts := strings.SplitN(mutateInsertXPath, ",", 3)
			if len(parts) != 3 {
				return fmt.Errorf("--insert-xpath wants xpath,where,xml")
			}
			where, err := parseWhere(parts[1])
			if err != nil {
				return err
			}
			if _, err := doc.InsertXPath(parts[0], where, parts[2], parseFlagsFromCLI()); err != nil {
				return err
			}
		case mutateSetAttrib != "":
			parts := strings.SplitN(mutateSetAttrib, ",", 3)
			if len(parts) != 3 {
				return fmt.Errorf("--set-attrib wants xpath,name,value")
			}
			t, _, err := doc.Query(parts[0])
			if err != nil {
				return err
			}
			if mutateRemoveAttr {
				idx, ok := t.AttribFold(parts[1])
				if !ok {
					return fmt.Errorf("attribute %q not present", parts[1])
				}
				if err := doc.SetAttrib(t, idx, parts[1], nil); err != nil {
					return err
				}
				break
			}
			if err := doc.SetAttrib(t, int(xmlcore.AttribUpdate), parts[1], &parts[2]); err != nil {
				return err
			}
		case mutateRemoveXPath != "":
			if _, err := doc.RemoveXPath(mutateRemoveXPath, 0); err != nil {
				return err
			}
		default:
			return fmt.Errorf("one of --insert-xml, --insert-xpath, --set-attrib, --remove is required")
		}

		out, err := xmlcore.Serialize(doc, 0)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func parseWhere(s string) (xmlcore.Where, error) {
	switch strings.ToUpper(s) {
	case "PREV":
		return xmlcore.Prev, nil
	case "NEXT":
		return xmlcore.Next, nil
	case "CHILD":
		return xmlcore.Child, nil
	case "CHILD_END":
		return xmlcore.ChildEnd, nil
	case "END":
		return xmlcore.End, nil
	default:
		return 0, fmt.Errorf("unknown where-code %q", s)
	}
}

func init() {
	rootCmd.AddCommand(mutateCmd)
	mutateCmd.Flags().StringVar(&mutateInsertXML, "insert-xml", "", "target-id,where,xml")
	mutateCmd.Flags().StringVar(&mutateInsertXPath, "insert-xpath", "", "xpath,where,xml")
	mutateCmd.Flags().StringVar(&mutateSetAttrib, "set-attrib", "", "xpath,name,value")
	mutateCmd.Flags().BoolVar(&mutateRemoveAttr, "remove-attrib-value", false, "with --set-attrib, remove the named attribute instead of setting it")
	mutateCmd.Flags().StringVar(&mutateRemoveXPath, "remove", "", "xpath of tag(s) or @attr to remove")
}
