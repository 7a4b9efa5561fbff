package xmlschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucidxml/xmlcore/xmlcore"
)

func TestValidate_RequiredAndNumericRange(t *testing.T) {
	doc, err := xmlcore.Parse([]byte(`<order><total>150</total></order>`), 0)
	require.NoError(t, err)

	errs := Validate(doc, []Rule{
		{Path: "/order/total", Required: true, Type: "int", Min: 0, Max: 100},
		{Path: "/order/missing", Required: true},
	})

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "greater than maximum")
	assert.Contains(t, errs[1], "missing")
}

func TestValidate_EnumAndRegex(t *testing.T) {
	doc, err := xmlcore.Parse([]byte(`<order><status>pending</status><code>AB12</code></order>`), 0)
	require.NoError(t, err)

	errs := Validate(doc, []Rule{
		{Path: "/order/status", Type: "string", Enum: []string{"paid", "shipped"}},
		{Path: "/order/code", Type: "string", Regex: `^[A-Z]{2}\d{2}$`},
	})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "invalid value")
}

func TestValidate_Passes(t *testing.T) {
	doc, err := xmlcore.Parse([]byte(`<order><total>42</total></order>`), 0)
	require.NoError(t, err)

	errs := Validate(doc, []Rule{
		{Path: "/order/total", Required: true, Type: "int", Min: 0, Max: 100},
	})
	assert.Empty(t, errs)
}
