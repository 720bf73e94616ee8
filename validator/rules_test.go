package validator

import (
	"fmt"
	"testing"

	"github.com/c360studio/pslspec/psl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docWith builds a minimal parseable document and replaces one section's body.
func docWith(t *testing.T, tag psl.SectionTag, body string) *psl.Document {
	t.Helper()
	return mustParse(t, fmt.Sprintf(`!psl v0.1
context: kitchen
goal: g
constraints: time<=90min

[%s]
%s
`, tag, body))
}

func issuesWithCode(issues []psl.Issue, code string) []psl.Issue {
	var out []psl.Issue
	for _, i := range issues {
		if i.Code == code {
			out = append(out, i)
		}
	}
	return out
}

func TestOrderRule_SwappedSections(t *testing.T) {
	doc := mustParse(t, `!psl v0.1
context: kitchen
goal: g
constraints: time<=90min

[TECHNIQUE]
- step

[FACT]
- claim
`)

	issues := NewOrderRule().Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, psl.SeverityError, issues[0].Severity)
	assert.Equal(t, "L-01", issues[0].Code)
	assert.Equal(t, psl.TagTechnique, issues[0].Section)
	assert.Contains(t, issues[0].Message, "index 0")
	assert.Contains(t, issues[0].Message, "expected index 1")
}

func TestOrderRule_CanonicalOrderPasses(t *testing.T) {
	doc := mustParse(t, wellFormed)
	assert.Empty(t, NewOrderRule().Check(doc))
}

func TestPairingRule_MissingRollback(t *testing.T) {
	doc := mustParse(t, `!psl v0.1
context: kitchen
goal: g
constraints: time<=90min

[HYP]
- first idea
- second idea

[ROLLBACK]
- single recovery path
`)

	issues := NewPairingRule().Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-02", issues[0].Code)
	assert.Equal(t, psl.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "1 rollback entries for 2 hypotheses")
}

func TestPairingRule_NoHypothesesPasses(t *testing.T) {
	doc := docWith(t, psl.TagFact, "- claim")
	assert.Empty(t, NewPairingRule().Check(doc))
}

func TestPairingRule_ExtraRollbacksPass(t *testing.T) {
	doc := mustParse(t, `!psl v0.1
context: kitchen
goal: g
constraints: time<=90min

[HYP]
- idea

[ROLLBACK]
- recovery one
- recovery two
`)
	assert.Empty(t, NewPairingRule().Check(doc))
}

func TestNumbersRule_NumberInTechnique(t *testing.T) {
	doc := mustParse(t, `!psl v0.1
context: kitchen
goal: g
constraints: time<=90min

[FACT]
- brisket 600g simmered 70 min

[TECHNIQUE]
- bake beetroot 45 min
`)

	issues := NewNumbersRule().Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-03", issues[0].Code)
	assert.Equal(t, psl.SeverityWarning, issues[0].Severity)
	assert.Equal(t, psl.TagTechnique, issues[0].Section)
	assert.Contains(t, issues[0].Message, "45 min")
}

func TestNumbersRule_FactNumbersPass(t *testing.T) {
	doc := docWith(t, psl.TagFact, "- brisket 600g simmered 70 min")
	assert.Empty(t, NewNumbersRule().Check(doc))
}

func TestUnitsRule_UnrecognizedUnit(t *testing.T) {
	doc := docWith(t, psl.TagFact, "- takes 3 zorp to finish")

	issues := NewUnitsRule(nil).Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-04", issues[0].Code)
	assert.Equal(t, psl.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, `"zorp"`)
}

func TestUnitsRule_RecognizedUnitsPass(t *testing.T) {
	doc := docWith(t, psl.TagFact, "- 600g brisket, 70 min, 12 usd, 2 tbsp paste, 150 kcal")
	assert.Empty(t, NewUnitsRule(nil).Check(doc))
}

func TestUnitsRule_CustomUnitSet(t *testing.T) {
	doc := docWith(t, psl.TagFact, "- 3 zorp of effort")
	assert.Empty(t, NewUnitsRule([]string{"zorp"}).Check(doc))
}

func TestPredicateRule_UnparseableConstraint(t *testing.T) {
	doc := mustParse(t, `!psl v0.1
context: kitchen
goal: g
constraints: time<=90min; tools=basic

[FACT]
- claim
`)

	issues := NewPredicateRule().Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-05", issues[0].Code)
	assert.Equal(t, psl.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "tools=basic")
}

func TestChecklistLinkRule_UnreferencedConstraint(t *testing.T) {
	doc := mustParse(t, `!psl v0.1
context: kitchen
goal: g
constraints: time<=90min; budget<=12usd

[CHECKLIST]
- time within limit; taste stable
`)

	issues := NewChecklistLinkRule().Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-06", issues[0].Code)
	assert.Contains(t, issues[0].Message, `"budget"`)
}

func TestThreeCCompletenessRule_MissingFlag(t *testing.T) {
	doc := docWith(t, psl.TagThreeC, "clear: yes cheap: yes")

	issues := NewThreeCCompletenessRule().Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-07", issues[0].Code)
	assert.Contains(t, issues[0].Message, "safe")
}

func TestThreeCCompletenessRule_ExplicitNoPasses(t *testing.T) {
	doc := docWith(t, psl.TagThreeC, "clear: yes cheap: no safe: yes")
	assert.Empty(t, NewThreeCCompletenessRule().Check(doc))
}

func TestSafetyRule_RiskWithoutSafetyNotes(t *testing.T) {
	doc := mustParse(t, `!psl v0.1
context: kitchen
goal: g
constraints: time<=90min

[FACT]
- contains peanut allergens, a known allergy trigger
`)

	issues := NewSafetyRule().Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-08", issues[0].Code)
}

func TestSafetyRule_PopulatedSafetyPasses(t *testing.T) {
	doc := mustParse(t, `!psl v0.1
context: kitchen
goal: g
constraints: time<=90min

[FACT]
- contains peanut allergens

[SAFETY]
- warn about nut allergies before serving
`)
	assert.Empty(t, NewSafetyRule().Check(doc))
}

func TestDuplicateRule_RepeatedEntry(t *testing.T) {
	doc := docWith(t, psl.TagChecklist, "- taste stable\n- Taste Stable")

	issues := NewDuplicateRule().Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-09", issues[0].Code)
	assert.Equal(t, psl.TagChecklist, issues[0].Section)
}

func TestClarityRule_OverlongEntry(t *testing.T) {
	long := "- "
	for i := 0; i < 30; i++ {
		long += "a very long clause "
	}
	doc := docWith(t, psl.TagTechnique, long)

	issues := NewClarityRule(0).Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "L-10", issues[0].Code)

	assert.Empty(t, NewClarityRule(10000).Check(doc))
}
