package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/interval/internal/interval"
)

func TestDemoCommand_Golden(t *testing.T) {
	out, err := execute(NewDemoCommand(&RootOptions{Format: "text"}))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "demo", []byte(out))
}

func TestDemo_Values(t *testing.T) {
	sections := Demo()
	require.Len(t, sections, 4)

	byTitle := make(map[string][]DemoLine)
	for _, s := range sections {
		byTitle[s.Title] = s.Lines
	}

	constructors := byTitle["constructors"]
	require.Len(t, constructors, 3)
	assert.Equal(t, constructors[0].Value, constructors[2].Value, "p is a copy of x")

	assign := byTitle["assignment arithmetic"]
	require.Len(t, assign, 4)
	// p -= a after p += a recovers a superset of x.
	assert.True(t, assign[1].Value.ContainsInterval(interval.New(3, 3.1)))

	mixed := byTitle["mixed scalar arithmetic"]
	require.Len(t, mixed, 8)
	for i := 0; i < len(mixed); i += 2 {
		if i == 2 || i == 6 {
			continue // subtraction and division are not commutative
		}
		assert.Equal(t, mixed[i].Value, mixed[i+1].Value, "%s and %s", mixed[i].Name, mixed[i+1].Name)
	}
}

func TestDemoCommand_JSON(t *testing.T) {
	out, err := execute(NewDemoCommand(&RootOptions{Format: "json"}))
	require.NoError(t, err)

	var sections []DemoSection
	resp := decodeData(t, out, &sections)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, Demo(), sections)
}
