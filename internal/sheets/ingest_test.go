package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeaders = []string{"Client", "Requirement Type", "Col C", "Location", "Description", "Email", "Phone", "Company", "Col I", "Col J", "Client City"}

func row(name, reqType, colC, colD, colE, email, phone, company, city string) []string {
	return []string{name, reqType, colC, colD, colE, email, phone, company, "", "", city}
}

func TestIngestClassifiesTenantVariants(t *testing.T) {
	for _, variant := range []string{"findTenant", "find tenant", "Finding Tenant", "FINDTENANT urgently"} {
		rows := [][]string{testHeaders, row("Jane", variant, "", "", "", "jane@x.com", "999", "", "")}
		res, err := Ingest(rows, DefaultLayout())
		require.NoError(t, err)
		require.Len(t, res.Properties, 1, "variant %q", variant)
		assert.Empty(t, res.Inquiries, "variant %q", variant)
		assert.Equal(t, "property", res.Properties[0].Type)
	}
}

func TestIngestClassifiesSpaceVariants(t *testing.T) {
	for _, variant := range []string{"findSpace", "find space", "Finding Space"} {
		rows := [][]string{testHeaders, row("Raj", variant, "", "", "", "raj@x.com", "888", "", "")}
		res, err := Ingest(rows, DefaultLayout())
		require.NoError(t, err)
		require.Len(t, res.Inquiries, 1, "variant %q", variant)
		assert.Empty(t, res.Properties, "variant %q", variant)
	}
}

func TestIngestDualMatchLandsInBothLists(t *testing.T) {
	rows := [][]string{testHeaders, row("Both", "findtenant and findspace", "", "", "", "b@x.com", "777", "", "")}
	res, err := Ingest(rows, DefaultLayout())
	require.NoError(t, err)
	assert.Len(t, res.Properties, 1)
	assert.Len(t, res.Inquiries, 1)
}

func TestIngestUnmatchedRowStillContributesClient(t *testing.T) {
	rows := [][]string{testHeaders, row("Lee", "just browsing", "", "", "", "lee@x.com", "555", "", "")}
	res, err := Ingest(rows, DefaultLayout())
	require.NoError(t, err)
	assert.Empty(t, res.Properties)
	assert.Empty(t, res.Inquiries)
	require.Len(t, res.Clients, 1)
	assert.Equal(t, "lee@x.com", res.Clients[0].Email)
}

func TestIngestClientNeedsNameAndEmail(t *testing.T) {
	rows := [][]string{
		testHeaders,
		row("", "findtenant", "", "", "", "anon@x.com", "1", "", ""),
		row("NoMail", "findtenant", "", "", "", "", "2", "", ""),
	}
	res, err := Ingest(rows, DefaultLayout())
	require.NoError(t, err)
	assert.Len(t, res.Properties, 2)
	assert.Empty(t, res.Clients)
}

func TestIngestClientDedupFirstWins(t *testing.T) {
	rows := [][]string{
		testHeaders,
		row("Jane Doe", "findtenant", "", "", "", "jane@x.com", "111", "", "Pune"),
		row("jane doe", "findspace", "", "", "", "JANE@x.com", "222", "", "Delhi"),
	}
	res, err := Ingest(rows, DefaultLayout())
	require.NoError(t, err)
	require.Len(t, res.Clients, 1)
	assert.Equal(t, "111", res.Clients[0].Phone)
	assert.Equal(t, "Pune", res.Clients[0].City)
	assert.Equal(t, "jane doe_jane@x.com", res.Clients[0].UniqueKey)
}

func TestIngestSkipsEmptyRowsAndAssignsPerListIDs(t *testing.T) {
	rows := [][]string{
		testHeaders,
		row("A", "findtenant", "", "", "", "a@x.com", "1", "", ""),
		{},
		{"", "", "", ""},
		row("B", "findspace", "", "", "", "b@x.com", "2", "", ""),
		row("C", "findtenant", "", "", "", "c@x.com", "3", "", ""),
	}
	res, err := Ingest(rows, DefaultLayout())
	require.NoError(t, err)
	require.Len(t, res.Properties, 2)
	require.Len(t, res.Inquiries, 1)
	assert.Equal(t, 1, res.Properties[0].ID)
	assert.Equal(t, 2, res.Properties[1].ID)
	assert.Equal(t, 1, res.Inquiries[0].ID)
}

func TestIngestDetailsAndPassthroughColumns(t *testing.T) {
	rows := [][]string{
		testHeaders,
		row("Jane Doe", "Finding Tenant", "warehouse", "2000 sq ft, India", "₹50/sqft, India", "jane@x.com", "9998887777", "Acme", "Bangalore"),
	}
	res, err := Ingest(rows, DefaultLayout())
	require.NoError(t, err)
	require.Len(t, res.Properties, 1)
	p := res.Properties[0]
	assert.Contains(t, p.Details.ColD, "India")
	assert.Equal(t, "warehouse", p.Details.ColC)
	assert.Equal(t, "₹50/sqft, India", p.Details.ColE)
	assert.Equal(t, "Jane Doe", p.ClientName)
	assert.Equal(t, "jane@x.com", p.Columns["Email"])
	assert.Equal(t, "Bangalore", p.Columns["Client City"])
}

func TestIngestEmptyInput(t *testing.T) {
	res, err := Ingest(nil, DefaultLayout())
	require.NoError(t, err)
	assert.Empty(t, res.Properties)
	assert.Empty(t, res.Inquiries)
	assert.Empty(t, res.Clients)
	assert.NotNil(t, res.Properties)
}

func TestIngestRejectsShortHeaderRow(t *testing.T) {
	rows := [][]string{{"OnlyOneColumn"}}
	_, err := Ingest(rows, DefaultLayout())
	require.Error(t, err)
	assert.Equal(t, KindMalformed, KindOf(err))
}
