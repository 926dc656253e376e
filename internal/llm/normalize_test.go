package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

func TestNormalize_DefaultsMissingOptionalFields(t *testing.T) {
	n := NewNormalizer(nil)

	got, err := n.Normalize(`{"company":"Acme","period":"Q4 2023","totalRevenue":1000}`)

	require.NoError(t, err)
	assert.Equal(t, entity.RevenueRecord{
		Company:      "Acme",
		Period:       "Q4 2023",
		TotalRevenue: 1000,
		LineItems:    []entity.LineItem{},
		Taxes:        0,
		NetRevenue:   1000,
	}, got.Record)
	assert.Empty(t, got.Warnings)
}

func TestNormalize_LineItemDefaults(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name string
		item string
		want entity.LineItem
	}{
		{"description only", `{"description":"Well A"}`, entity.LineItem{Description: "Well A", Quantity: 1, Rate: 0, Amount: 0}},
		{"rate falls back to amount", `{"description":"Well B","amount":250.5}`, entity.LineItem{Description: "Well B", Quantity: 1, Rate: 250.5, Amount: 250.5}},
		{"all present", `{"description":"Well C","quantity":10,"rate":3.5,"amount":35}`, entity.LineItem{Description: "Well C", Quantity: 10, Rate: 3.5, Amount: 35}},
		{"wrong types", `{"description":"Well D","quantity":"lots","rate":null,"amount":"$1,200.00"}`, entity.LineItem{Description: "Well D", Quantity: 1, Rate: 1200, Amount: 1200}},
		{"missing description", `{"amount":5}`, entity.LineItem{Description: "Unknown Item", Quantity: 1, Rate: 5, Amount: 5}},
		{"not an object", `"Verde 13-2HZ NBRR GAS"`, entity.LineItem{Description: "Verde 13-2HZ NBRR GAS", Quantity: 1, Rate: 0, Amount: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"company":"Acme","period":"December 2021","totalRevenue":0,"lineItems":[` + tt.item + `]}`

			got, err := n.Normalize(raw)

			require.NoError(t, err)
			require.Len(t, got.Record.LineItems, 1)
			assert.Equal(t, tt.want, got.Record.LineItems[0])
		})
	}
}

func TestNormalize_CoercesTopLevelFields(t *testing.T) {
	n := NewNormalizer(nil)

	got, err := n.Normalize(`{"company":"  Acme Energy ","period":"Q1 2023","totalRevenue":"$618.52",
		"lineItems":{"oops":true},"taxes":"n/a","netRevenue":"(12.00)"}`)

	require.NoError(t, err)
	assert.Equal(t, "Acme Energy", got.Record.Company)
	assert.Equal(t, 618.52, got.Record.TotalRevenue)
	assert.Equal(t, []entity.LineItem{}, got.Record.LineItems)
	assert.Equal(t, 0.0, got.Record.Taxes)
	assert.Equal(t, -12.0, got.Record.NetRevenue)
	assert.Contains(t, got.Adjustments, "lineItems(not an array)")
	assert.Contains(t, got.Adjustments, "taxes(non-numeric)")
	assert.Contains(t, got.Adjustments, "totalRevenue(coerced)")
}

func TestNormalize_NetDefaultsToTotalMinusTaxes(t *testing.T) {
	got, err := NewNormalizer(nil).Normalize(`{"company":"Acme","period":"Q4 2023","totalRevenue":1000,"taxes":50}`)

	require.NoError(t, err)
	assert.Equal(t, 950.0, got.Record.NetRevenue)
}

func TestNormalize_StripsFencesAndProse(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n{\"company\":\"Acme\",\"period\":\"Q4 2023\",\"totalRevenue\":10}\n```"},
		{"bare fence", "```\n{\"company\":\"Acme\",\"period\":\"Q4 2023\",\"totalRevenue\":10}\n```"},
		{"fence after prose", "Here is the data:\n\n```json\n{\"company\":\"Acme\",\"period\":\"Q4 2023\",\"totalRevenue\":10}\n```\n"},
		{"prose without fence", "Sure! {\"company\":\"Acme\",\"period\":\"Q4 2023\",\"totalRevenue\":10} Let me know."},
		{"trailing comma", "{\"company\":\"Acme\",\"period\":\"Q4 2023\",\"totalRevenue\":10,}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.raw)

			require.NoError(t, err)
			assert.Equal(t, "Acme", got.Record.Company)
			assert.Equal(t, 10.0, got.Record.TotalRevenue)
		})
	}
}

func TestNormalize_Failures(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name     string
		raw      string
		wantKind error
	}{
		{"unparsable text", "I could not read this statement.", common.ErrMalformedResponse},
		{"empty", "   ", common.ErrMalformedResponse},
		{"array", `[{"company":"Acme"}]`, common.ErrMalformedResponse},
		{"missing company", `{"period":"Q4 2023","totalRevenue":1000}`, common.ErrIncompleteExtraction},
		{"blank period", `{"company":"Acme","period":"  ","totalRevenue":1000}`, common.ErrIncompleteExtraction},
		{"non-numeric total", `{"company":"Acme","period":"Q4 2023","totalRevenue":"unknown"}`, common.ErrIncompleteExtraction},
		{"missing total", `{"company":"Acme","period":"Q4 2023"}`, common.ErrIncompleteExtraction},
		{"truncated mid line item", `{"company":"Acme","period":"Q4 2023","totalRevenue":1000,"lineItems":[{"description":"Verde 13-2HZ GAS","quantity":10,"rate":50,"amount":500},{"description":"Smith 4H","quantity":10,"rate":50,"amo`, common.ErrMalformedResponse},
		{"truncated inside string", `{"company":"Acme","period":"Q4 20`, common.ErrMalformedResponse},
		{"truncated after value", "```json\n{\"company\":\"Acme\",\"period\":\"Q4 2023\",\"totalRevenue\":1000,\"lineItems\":[", common.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.raw)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)

			var appErr *common.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.raw, appErr.Detail)
		})
	}
}

func TestNormalize_BalanceIsAdvisory(t *testing.T) {
	raw := `{"company":"Acme","period":"Q4 2023","totalRevenue":618.52,"taxes":-14.25,"netRevenue":700,
		"lineItems":[{"description":"Verde 13-2HZ NBRR GAS","amount":600}]}`

	got, err := NewNormalizer(nil).Normalize(raw)

	require.NoError(t, err)
	assert.Equal(t, 700.0, got.Record.NetRevenue)
	require.Len(t, got.Warnings, 2)
	assert.Contains(t, got.Warnings[0], "netRevenue exceeds")
	assert.Contains(t, got.Warnings[1], "line item amounts sum to 600.00")
}

func TestNormalize_RepairsSyntaxNoise(t *testing.T) {
	got, err := NewNormalizer(nil).Normalize(`{"company":"Acme","period":"Q4 2023","totalRevenue":10,"lineItems":[{"description":"Well A","amount":10},],}`)

	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Record.Company)
	require.Len(t, got.Record.LineItems, 1)
	assert.Equal(t, 10.0, got.Record.LineItems[0].Amount)
	require.NotEmpty(t, got.Adjustments)
	assert.Contains(t, got.Adjustments[0], "decoded via")
}

func TestCheckComplete(t *testing.T) {
	assert.NoError(t, checkComplete(`{"a":"x}]\"","b":[1,{"c":2}]}`))
	assert.Error(t, checkComplete(`{"a":[1,2}`))
	assert.Error(t, checkComplete(`{"a":"open`))
	assert.Error(t, checkComplete(`{"a":{"b":1}`))
}
