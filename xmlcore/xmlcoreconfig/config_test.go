package xmlcoreconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucidxml/xmlcore/xmlcore"
)

func TestLoad_TranslatesFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xmlcore.toml")
	contents := `
[parse]
well_formed = true
include_comments = true

[serialize]
readable = true

[sentinel]
prefix = "-- $FLUID"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	pf := cfg.ParseFlags()
	require.NotZero(t, pf&xmlcore.WellFormed)
	require.NotZero(t, pf&xmlcore.IncludeComments)
	require.Zero(t, pf&xmlcore.LowerCase)

	sf := cfg.SerializeFlags()
	require.NotZero(t, sf&xmlcore.Readable)

	require.Equal(t, "-- $FLUID", cfg.SentinelPrefix())
}

func TestConfig_SentinelPrefixDefault(t *testing.T) {
	cfg := &Config{}
	require.Equal(t, "$FLUID", cfg.SentinelPrefix())
}
