package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	p, ok := c.FindProgram("high_school", "grade_9")
	require.True(t, ok)
	assert.Equal(t, 1000.0, p.BasePrice)

	course, ok := p.FindCourse("science_9")
	require.True(t, ok)
	assert.Equal(t, 120.0, course.Price)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
levels:
  - id: kg
    name: Kindergarten
    programs:
      - id: daycare
        base_price: 300
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	_, ok := c.FindProgram("kg", "daycare")
	assert.True(t, ok)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "duplicate level", yaml: "levels: [{id: a}, {id: a}]"},
		{name: "level without id", yaml: "levels: [{name: x}]"},
		{name: "duplicate program", yaml: "levels: [{id: a, programs: [{id: p}, {id: p}]}]"},
		{name: "negative price", yaml: "levels: [{id: a, programs: [{id: p, base_price: -1}]}]"},
		{name: "duplicate course", yaml: "levels: [{id: a, programs: [{id: p, courses: [{id: c}, {id: c}]}]}]"},
		{name: "not yaml", yaml: "levels: [::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
