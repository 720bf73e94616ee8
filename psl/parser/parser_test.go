package parser

import (
	"testing"

	"github.com/c360studio/pslspec/psl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `!psl v0.1
context: kitchen
goal: transform basic borscht into family masterpiece
constraints: time<=90min; budget<=12usd
skill: novice

[FACT]
- Broth: beef brisket 600g, onion, carrot, bay leaf, 70 min.
- Saute: beetroot 400g with tomato paste for stable color.

[TECHNIQUE]
- Sequence: broth, potatoes, cabbage, saute, rest.
- Control: taste salt and acidity before rest.

[HYP]
- Baking the beetroot gives a richer flavor.

[ROLLBACK]
- If beetroot tastes earthy, return to stewing.

[SAFETY]
- Dairy and vinegar allergies: warn before serving.

[CHECKLIST]
- time within limit; budget within limit; taste stable.

[3C]
clear: yes cheap: yes safe: yes

[GLOSS]
Ritual delivering stable taste: order, timing, acidity control.
`

func TestParse_WellFormed(t *testing.T) {
	doc, issues, err := Parse(wellFormed)
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.Equal(t, "0.1", doc.Header.Version)
	assert.Equal(t, "kitchen", doc.Header.Context)
	assert.Equal(t, "novice", doc.Header.Skill)
	assert.Len(t, doc.Sections, 8)

	fact := doc.Section(psl.TagFact)
	require.NotNil(t, fact)
	assert.Len(t, fact.Lines, 2)
	assert.Equal(t, "- Broth: beef brisket 600g, onion, carrot, bay leaf, 70 min.", fact.Lines[0])

	require.NotNil(t, doc.ThreeC)
	assert.True(t, doc.ThreeC.Clear)
	assert.True(t, doc.ThreeC.Cheap)
	assert.True(t, doc.ThreeC.Safe)

	assert.Equal(t, "Ritual delivering stable taste: order, timing, acidity control.", doc.Gloss)
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, text := range []string{"", "   \n\t\n  "} {
		_, _, err := Parse(text)
		require.Error(t, err)
		assert.True(t, psl.IsParseError(err, psl.KindEmptyDocument))
	}
}

func TestParse_HeaderErrorIsFatal(t *testing.T) {
	doc, issues, err := Parse("!psl v0.1\ngoal: g\nconstraints: time<=10min\n\n[FACT]\n- a\n")
	require.Error(t, err)
	assert.True(t, psl.IsParseError(err, psl.KindMissingHeaderField))
	assert.Nil(t, doc)
	assert.Nil(t, issues)
}

func TestParse_UnknownSectionTag(t *testing.T) {
	text := `!psl v0.1
context: kitchen
goal: g
constraints: time<=10min

[FACT]
- a verified claim

[NOTES]
- this region is skipped
- and so is this line

[TECHNIQUE]
- do the thing
`
	doc, issues, err := Parse(text)
	require.NoError(t, err)

	var unknown []psl.Issue
	for _, i := range issues {
		if i.Code == psl.CodeUnknownSectionTag {
			unknown = append(unknown, i)
		}
	}
	require.Len(t, unknown, 1)
	assert.Equal(t, psl.SeverityWarning, unknown[0].Severity)
	assert.Contains(t, unknown[0].Message, "NOTES")

	// Skipped region's lines belong to no section.
	fact := doc.Section(psl.TagFact)
	require.NotNil(t, fact)
	assert.Len(t, fact.Lines, 1)

	technique := doc.Section(psl.TagTechnique)
	require.NotNil(t, technique)
	assert.Len(t, technique.Lines, 1)
}

func TestParse_MissingMandatorySections(t *testing.T) {
	text := `!psl v0.1
context: kitchen
goal: g
constraints: time<=10min

[FACT]
- a
`
	doc, issues, err := Parse(text)
	require.NoError(t, err)
	require.NotNil(t, doc)

	missing := map[psl.SectionTag]bool{}
	for _, i := range issues {
		if i.Code == psl.CodeMissingMandatorySection {
			assert.Equal(t, psl.SeverityError, i.Severity)
			missing[i.Section] = true
		}
	}
	assert.Len(t, missing, 7)
	assert.False(t, missing[psl.TagFact])
	assert.False(t, missing[psl.TagAssumptions])
	assert.True(t, missing[psl.TagGloss])
}

func TestParse_SectionsOutOfOrder(t *testing.T) {
	text := `!psl v0.1
context: kitchen
goal: g
constraints: time<=10min

[TECHNIQUE]
- do the thing

[FACT]
- a verified claim
`
	_, issues, err := Parse(text)
	require.NoError(t, err)

	var order []psl.Issue
	for _, i := range issues {
		if i.Code == psl.CodeSectionsOutOfOrder {
			order = append(order, i)
		}
	}
	require.Len(t, order, 1)
	assert.Equal(t, psl.SeverityError, order[0].Severity)
	assert.Equal(t, psl.TagTechnique, order[0].Section)
	assert.Contains(t, order[0].Message, "index 0")
	assert.Contains(t, order[0].Message, "expected index 1")
}

func TestParse_DuplicateTagMergesIntoFirst(t *testing.T) {
	text := `!psl v0.1
context: kitchen
goal: g
constraints: time<=10min

[FACT]
- first claim

[TECHNIQUE]
- step

[FACT]
- second claim
`
	doc, _, err := Parse(text)
	require.NoError(t, err)

	var factCount int
	for _, s := range doc.Sections {
		if s.Tag == psl.TagFact {
			factCount++
		}
	}
	assert.Equal(t, 1, factCount)

	fact := doc.Section(psl.TagFact)
	require.NotNil(t, fact)
	assert.Equal(t, []string{"- first claim", "- second claim"}, fact.Lines)
}

func TestParse_ThreeCVariants(t *testing.T) {
	base := `!psl v0.1
context: k
goal: g
constraints: time<=10min

[3C]
`
	tests := []struct {
		name  string
		lines string
		want  psl.ThreeC
	}{
		{"single line", "clear: yes cheap: yes safe: yes", psl.ThreeC{Clear: true, Cheap: true, Safe: true}},
		{"one per line", "clear: yes\ncheap: no\nsafe: yes", psl.ThreeC{Clear: true, Safe: true}},
		{"true false", "clear: true\ncheap: false\nsafe: true", psl.ThreeC{Clear: true, Safe: true}},
		{"all no", "clear: no cheap: no safe: no", psl.ThreeC{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _, err := Parse(base + tt.lines + "\n")
			require.NoError(t, err)
			require.NotNil(t, doc.ThreeC)
			assert.Equal(t, tt.want, *doc.ThreeC)
		})
	}
}

func TestParse_SourcePositions(t *testing.T) {
	doc, _, err := Parse(wellFormed)
	require.NoError(t, err)

	fact := doc.Section(psl.TagFact)
	require.NotNil(t, fact)
	assert.Equal(t, 7, fact.Line)

	technique := doc.Section(psl.TagTechnique)
	require.NotNil(t, technique)
	assert.Equal(t, 11, technique.Line)
}
