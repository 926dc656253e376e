package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

func TestConvertToAccounting(t *testing.T) {
	rec := sampleRecord()
	before := rec.Clone()

	doc, err := newTestService().ConvertToAccounting(rec, "dec-statement.pdf")

	require.NoError(t, err)
	assert.Equal(t, before, rec)
	require.Len(t, doc.Transactions, 4)

	wantIDs := []string{
		"TXN-1640908800000-0001",
		"TXN-1640908800000-0002",
		"TXN-1640908800000-0003",
		"TXN-1640908800000-0004",
	}
	wantAccounts := []string{AccountRevenue, AccountRevenue, AccountReceivables, AccountTaxes}
	for i, txn := range doc.Transactions {
		assert.Equal(t, wantIDs[i], txn.ID)
		assert.Equal(t, wantAccounts[i], txn.AccountCode)
		assert.Equal(t, "2021-12-31", txn.Date.Format("2006-01-02"))
		assert.Equal(t, "dec-statement", txn.DocumentReference)
		assert.True(t, txn.Debit.IsZero() || txn.Credit.IsZero(), "one side must be zero")
	}
	assert.Equal(t, "Accounts Receivable - Acme Revenue", doc.Transactions[2].Description)
	assert.Equal(t, "Tax Liability", doc.Transactions[3].Description)

	assert.Equal(t, "Acme", doc.Header.CompanyName)
	assert.Equal(t, CDEXDocumentType, doc.Header.DocumentType)
	assert.Equal(t, "2024-03-15", doc.Header.GeneratedDate.Format("2006-01-02"))
	assert.Equal(t, 4, doc.Summary.TransactionCount)
}

func TestConvertToAccounting_Totals(t *testing.T) {
	tests := []struct {
		name        string
		taxes       float64
		wantCredits string
		wantCount   int
	}{
		{"positive taxes are booked", 50, "1050", 4},
		{"zero taxes are skipped", 0, "1000", 3},
		{"negative taxes are skipped", -50, "1000", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			rec.Taxes = tt.taxes

			doc, err := newTestService().ConvertToAccounting(rec, "s.pdf")

			require.NoError(t, err)
			assert.True(t, doc.Summary.TotalDebits.Equal(decimal.NewFromFloat(rec.TotalRevenue)))
			assert.True(t, doc.Summary.TotalCredits.Equal(decimal.RequireFromString(tt.wantCredits)),
				"credits %s", doc.Summary.TotalCredits)
			assert.Equal(t, tt.wantCount, doc.Summary.TransactionCount)
		})
	}
}

func TestValidateForAccounting(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *entity.RevenueRecord)
		want   []string
	}{
		{"valid", func(r *entity.RevenueRecord) {}, nil},
		{"empty company", func(r *entity.RevenueRecord) { r.Company = "  " }, []string{"Company name is required"}},
		{"empty period", func(r *entity.RevenueRecord) { r.Period = "" }, []string{"Reporting period is required"}},
		{"negative total", func(r *entity.RevenueRecord) { r.TotalRevenue = -1 }, []string{"Valid total revenue amount is required"}},
		{"no line items", func(r *entity.RevenueRecord) { r.LineItems = []entity.LineItem{} }, []string{"At least one revenue line item is required"}},
		{"missing description", func(r *entity.RevenueRecord) { r.LineItems[1].Description = "" }, []string{"Line item 2: Description is required"}},
		{"negative amount", func(r *entity.RevenueRecord) { r.LineItems[0].Amount = -5 }, []string{"Line item 1: Valid amount is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			tt.mutate(&rec)

			got := ValidateForAccounting(rec)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)

			_, err := newTestService().ConvertToAccounting(rec, "s.pdf")
			assert.Error(t, err)
		})
	}
}

func TestEncodeAccountingXML(t *testing.T) {
	rec := sampleRecord()
	rec.Company = `Acme & Sons <Ltd>`
	rec.LineItems[0].Description = `Verde 'A' "North"`

	doc, err := newTestService().ConvertToAccounting(rec, "dec.pdf")
	require.NoError(t, err)

	out, err := EncodeAccountingXML(doc)
	require.NoError(t, err)
	s := string(out)

	assert.True(t, bytes.HasPrefix(out, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)))
	assert.Contains(t, s, `<cdex:AccountingDocument xmlns:cdex="http://cdex.org/schema/v1.0" version="1.0">`)
	assert.Contains(t, s, "<cdex:CompanyName>Acme &amp; Sons &lt;Ltd&gt;</cdex:CompanyName>")
	assert.Contains(t, s, "Verde &#39;A&#39; &#34;North&#34;")
	assert.Contains(t, s, "<cdex:DebitAmount>1000.00</cdex:DebitAmount>")
	assert.Contains(t, s, "<cdex:CreditAmount>600.00</cdex:CreditAmount>")
	assert.Contains(t, s, "<cdex:TotalCredits>1050.00</cdex:TotalCredits>")
	assert.Contains(t, s, "<cdex:GeneratedDate>2024-03-15</cdex:GeneratedDate>")

	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err, "document must be well-formed")
	}
}
