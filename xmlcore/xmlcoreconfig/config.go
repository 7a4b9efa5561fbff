// Package xmlcoreconfig loads engine-wide default parse and serialize
// flags from a TOML file, so a host can pin its defaults in one place
// instead of passing the same flag combination to every Parse call.
package xmlcoreconfig

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lucidxml/xmlcore/xmlcore"
)

// Config is the on-disk shape of an engine defaults file.
//
//	[parse]
//	well_formed = true
//	include_comments = true
//	lower_case = false
//
//	[serialize]
//	readable = true
//
//	[sentinel]
//	prefix = "$FLUID"
type Config struct {
	Parse struct {
		WellFormed      bool `toml:"well_formed"`
		IncludeComments bool `toml:"include_comments"`
		StripContent    bool `toml:"strip_content"`
		LowerCase       bool `toml:"lower_case"`
		UpperCase       bool `toml:"upper_case"`
		NoEscape        bool `toml:"no_escape"`
		AllContent      bool `toml:"all_content"`
		StripHeaders    bool `toml:"strip_headers"`
		ParseEntity     bool `toml:"parse_entity"`
	} `toml:"parse"`

	Serialize struct {
		Readable     bool `toml:"readable"`
		StripCDATA   bool `toml:"strip_cdata"`
		StripHeaders bool `toml:"strip_headers"`
	} `toml:"serialize"`

	Sentinel struct {
		Prefix string `toml:"prefix"`
	} `toml:"sentinel"`
}

// Load reads and decodes a TOML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseFlags translates the [parse] section into a xmlcore.ParseFlag
// bitmask suitable as a starting point for xmlcore.Parse. Any flag passed
// explicitly to Parse by the caller still takes precedence: combine with
// bitwise OR on top of this value, never in place of it.
func (c *Config) ParseFlags() xmlcore.ParseFlag {
	var f xmlcore.ParseFlag
	if c.Parse.WellFormed {
		f |= xmlcore.WellFormed
	}
	if c.Parse.IncludeComments {
		f |= xmlcore.IncludeComments
	}
	if c.Parse.StripContent {
		f |= xmlcore.StripContent
	}
	if c.Parse.LowerCase {
		f |= xmlcore.LowerCase
	}
	if c.Parse.UpperCase {
		f |= xmlcore.UpperCase
	}
	if c.Parse.NoEscape {
		f |= xmlcore.NoEscape
	}
	if c.Parse.AllContent {
		f |= xmlcore.AllContent
	}
	if c.Parse.StripHeaders {
		f |= xmlcore.StripHeaders
	}
	if c.Parse.ParseEntity {
		f |= xmlcore.ParseEntity
	}
	return f
}

// SerializeFlags translates the [serialize] section into a
// xmlcore.SerializeFlag bitmask.
func (c *Config) SerializeFlags() xmlcore.SerializeFlag {
	var f xmlcore.SerializeFlag
	if c.Serialize.Readable {
		f |= xmlcore.Readable
	}
	if c.Serialize.StripCDATA {
		f |= xmlcore.StripCDATA
	}
	if c.Serialize.StripHeaders {
		f |= xmlcore.SerializeStripHeaders
	}
	return f
}

// SentinelPrefix returns the configured lead-comment sentinel, trimmed of
// surrounding whitespace, falling back to xmlcore's own default when unset.
func (c *Config) SentinelPrefix() string {
	p := strings.TrimSpace(c.Sentinel.Prefix)
	if p == "" {
		return "$FLUID"
	}
	return p
}
