package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSheets_Production(t *testing.T) {
	sheets := newTestService().BuildSheets(sampleRecord())

	require.Len(t, sheets, 3)
	prod := sheets[2]
	assert.Equal(t, SheetProduction, prod.Name)
	require.Len(t, prod.Rows, 4)
	assert.Len(t, prod.Rows[0], 15)

	assert.Equal(t, []any{
		"Verde 13-2HZ NBRR", "138366-1", "12/01/2021", "GAS",
		10.0, "MCF", 60.0, 600.0, 90.0, 30.0, 480.0,
		"0.187500000", "1.035", "03/15/2024", "Acme",
	}, prod.Rows[1])

	assert.Equal(t, "OIL", prod.Rows[2][3])
	assert.Equal(t, "0.125000000", prod.Rows[2][11])

	assert.Equal(t, []any{
		"TOTAL", "", "", "",
		15.0, "", "",
		1000.0, 150.0, 50.0, 800.0,
		"", "", "", "",
	}, prod.Rows[3])
}

func TestBuildSheets_RevenueAndSummary(t *testing.T) {
	sheets := newTestService().BuildSheets(sampleRecord())

	rev := sheets[0]
	assert.Equal(t, SheetRevenue, rev.Name)
	assert.Equal(t, []any{"Company:", "Acme"}, rev.Rows[2])
	assert.Equal(t, []any{"Generated:", "03/15/2024"}, rev.Rows[4])
	assert.Equal(t, []any{"Net Revenue", "", "", 800.0}, rev.Rows[len(rev.Rows)-1])

	sum := sheets[1]
	assert.Equal(t, SheetSummary, sum.Name)
	assert.Contains(t, sum.Rows, []any{"Total Revenue Items", 2})
	assert.Equal(t, []any{"Crude sales", 400.0}, sum.Rows[len(sum.Rows)-1])
}

func TestBuildSheets_DefaultsWithoutPeriodOrCompany(t *testing.T) {
	rec := sampleRecord()
	rec.Company = ""
	rec.Period = "statement"

	prod := newTestService().BuildSheets(rec)[2]

	assert.Equal(t, "03/15/2024", prod.Rows[1][2])
	assert.Equal(t, unknownOperator, prod.Rows[1][14])
}
