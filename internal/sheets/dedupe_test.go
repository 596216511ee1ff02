package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletenessScoring(t *testing.T) {
	assert.Equal(t, 0, Completeness(Client{Name: "Unknown", Company: "Not provided", Email: "nope", Phone: "123"}))
	assert.Equal(t, 5, Completeness(Client{
		Name: "Jane", Email: "jane@x.com", Phone: "9998887777", Company: "Acme", City: "Pune",
	}))
	assert.Equal(t, 1, Completeness(Client{Name: "Jane"}))
}

func TestDedupeKeepsHigherScore(t *testing.T) {
	sparse := Client{Name: "Jane Doe", Phone: "999-888-7777"}
	full := Client{Name: "jane doe", Phone: "9998887777", Email: "jane@x.com", City: "Pune", Company: "Acme"}
	out := Dedupe([]Client{sparse, full})
	require.Len(t, out, 1)
	assert.Equal(t, "jane@x.com", out[0].Email)
}

func TestDedupeTieKeepsFirst(t *testing.T) {
	first := Client{Name: "Jane", Phone: "123456", Email: "first@x.com"}
	second := Client{Name: "jane", Phone: "12 34 56", Email: "second@x.com"}
	out := Dedupe([]Client{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, "first@x.com", out[0].Email)
}

func TestDedupeEqualScoreLowerNeverReplaces(t *testing.T) {
	a := Client{Name: "Jane", Phone: "123456", Email: "a@x.com", City: "Pune"}
	b := Client{Name: "Jane", Phone: "123456", Email: "b@x.com"}
	out := Dedupe([]Client{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, "a@x.com", out[0].Email)
}

func TestDedupeDistinctClientsSurvive(t *testing.T) {
	out := Dedupe([]Client{
		{Name: "Jane", Phone: "111111"},
		{Name: "Jane", Phone: "222222"},
		{Name: "Raj", Phone: "111111"},
	})
	assert.Len(t, out, 3)
}

func TestDedupePreservesFirstSeenOrder(t *testing.T) {
	out := Dedupe([]Client{
		{Name: "B", Phone: "2"},
		{Name: "A", Phone: "1"},
		{Name: "b", Phone: "2", Email: "b@x.com", City: "Pune"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "b@x.com", out[0].Email)
	assert.Equal(t, "A", out[1].Name)
}
