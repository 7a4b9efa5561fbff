package cmd

import "github.com/lucidxml/xmlcore/xmlcore"

var (
	flagWellFormed      bool
	flagIncludeComments bool
	flagLowerCase       bool
	flagUpperCase       bool
	flagAllContent      bool
	flagStripHeaders    bool
	flagParseEntity     bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagWellFormed, "well-formed", false, "fail on unbalanced or malformed XML instead of tolerating it")
	rootCmd.PersistentFlags().BoolVar(&flagIncludeComments, "include-comments", false, "retain comments in the parsed tree")
	rootCmd.PersistentFlags().BoolVar(&flagLowerCase, "lower-case", false, "fold tag and attribute names to lower case")
	rootCmd.PersistentFlags().BoolVar(&flagUpperCase, "upper-case", false, "fold tag and attribute names to upper case")
	rootCmd.PersistentFlags().BoolVar(&flagAllContent, "all-content", false, "retain whitespace-only content runs")
	rootCmd.PersistentFlags().BoolVar(&flagStripHeaders, "strip-headers", false, "omit processing instructions and DOCTYPE from the tree")
	rootCmd.PersistentFlags().BoolVar(&flagParseEntity, "parse-entity", false, "retain DOCTYPE entity and notation declarations")
}

func parseFlagsFromCLI() xmlcore.ParseFlag {
	var f xmlcore.ParseFlag
	if flagWellFormed {
		f |= xmlcore.WellFormed
	}
	if flagIncludeComments {
		f |= xmlcore.IncludeComments
	}
	if flagLowerCase {
		f |= xmlcore.LowerCase
	}
	if flagUpperCase {
		f |= xmlcore.UpperCase
	}
	if flagAllContent {
		f |= xmlcore.AllContent
	}
	if flagStripHeaders {
		f |= xmlcore.StripHeaders
	}
	if flagParseEntity {
		f |= xmlcore.ParseEntity
	}
	return f
}
