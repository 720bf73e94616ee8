package parser

import (
	"testing"

	"github.com/c360studio/pslspec/psl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader_Basic(t *testing.T) {
	header, err := ParseHeader(`!psl v0.1
context: kitchen
goal: transform basic borscht into masterpiece
constraints: time<=90min; budget<=12usd`)
	require.NoError(t, err)

	assert.Equal(t, "0.1", header.Version)
	assert.Equal(t, "kitchen", header.Context)
	assert.Equal(t, "transform basic borscht into masterpiece", header.Goal)
	assert.Equal(t, []string{"time<=90min", "budget<=12usd"}, header.Constraints)
	assert.Empty(t, header.Resources)
	assert.Empty(t, header.Skill)
}

func TestParseHeader_OptionalFields(t *testing.T) {
	header, err := ParseHeader(`!psl v0.1
context: woodworking
goal: create invisible joint
constraints: time<=40min; tools=2; damage=0
resources: [saw, sandpaper, glue]
skill: hobbyist`)
	require.NoError(t, err)

	assert.Len(t, header.Constraints, 3)
	assert.Equal(t, "[saw, sandpaper, glue]", header.Resources)
	assert.Equal(t, "hobbyist", header.Skill)
}

func TestParseHeader_TrimsWhitespace(t *testing.T) {
	header, err := ParseHeader(`
  !psl v0.1
  context:   kitchen
  goal:  test goal
  constraints:  time<=10min ;  budget<=5usd ;
`)
	require.NoError(t, err)

	assert.Equal(t, "kitchen", header.Context)
	assert.Equal(t, "test goal", header.Goal)
	assert.Equal(t, []string{"time<=10min", "budget<=5usd"}, header.Constraints)
}

func TestParseHeader_MissingMandatoryField(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
	}{
		{
			name:  "no version declaration",
			text:  "context: kitchen\ngoal: g\nconstraints: time<=10min",
			field: "version",
		},
		{
			name:  "no context",
			text:  "!psl v0.1\ngoal: g\nconstraints: time<=10min",
			field: "context",
		},
		{
			name:  "empty goal value",
			text:  "!psl v0.1\ncontext: kitchen\ngoal:\nconstraints: time<=10min",
			field: "goal",
		},
		{
			name:  "no constraints",
			text:  "!psl v0.1\ncontext: kitchen\ngoal: g",
			field: "constraints",
		},
		{
			name:  "empty constraints value",
			text:  "!psl v0.1\ncontext: kitchen\ngoal: g\nconstraints: ; ;",
			field: "constraints",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.text)
			require.Error(t, err)
			assert.True(t, psl.IsParseError(err, psl.KindMissingHeaderField))

			var pe *psl.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestParseHeader_MalformedVersionDeclaration(t *testing.T) {
	for _, decl := range []string{"!psl", "!psl 0.1", "!psl version 0.1", "!pslv0.1"} {
		_, err := ParseHeader(decl + "\ncontext: k\ngoal: g\nconstraints: time<=10min")
		require.Error(t, err, "declaration %q", decl)
		assert.True(t, psl.IsParseError(err, psl.KindMalformedVersionDeclaration), "declaration %q", decl)
	}
}

func TestParseHeader_Deterministic(t *testing.T) {
	text := "!psl v0.1\ncontext: kitchen\ngoal: g\nconstraints: time<=10min"
	a, err := ParseHeader(text)
	require.NoError(t, err)
	b, err := ParseHeader(text)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
