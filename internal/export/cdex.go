package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

// Ledger account codes.
const (
	AccountRevenue     = "4000"
	AccountTaxes       = "2200"
	AccountDeductions  = "6000" // reserved; deductions are not booked separately
	AccountReceivables = "1200"
)

const (
	CDEXNamespace    = "http://cdex.org/schema/v1.0"
	CDEXVersion      = "1.0"
	CDEXDocumentType = "Revenue Statement"
)

type Header struct {
	CompanyName     string
	ReportingPeriod string
	GeneratedDate   time.Time
	DocumentType    string
	Version         string
}

// Transaction carries either a debit or a credit; the other side is zero.
type Transaction struct {
	ID                string
	AccountCode       string
	Date              time.Time
	Debit             decimal.Decimal
	Credit            decimal.Decimal
	Description       string
	DocumentReference string
}

type Summary struct {
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	TransactionCount int
}

type AccountingDocument struct {
	Header       Header
	Transactions []Transaction
	Summary      Summary
}

// ValidateForAccounting returns every reason rec cannot be exported as a
// ledger document. An empty result means it can.
func ValidateForAccounting(rec entity.RevenueRecord) []string {
	v := common.NewValidator().
		Field("company", rec.Company, common.WithMessage(common.Required, "Company name is required")).
		Field("period", rec.Period, common.WithMessage(common.Required, "Reporting period is required")).
		Field("totalRevenue", rec.TotalRevenue, common.WithMessage(common.NonNegative, "Valid total revenue amount is required")).
		Field("lineItems", rec.LineItems, common.WithMessage(common.MinItems(1), "At least one revenue line item is required"))

	for i, item := range rec.LineItems {
		n := i + 1
		v.Field(fmt.Sprintf("lineItems[%d].description", i), item.Description,
			common.WithMessage(common.Required, fmt.Sprintf("Line item %d: Description is required", n)))
		v.Field(fmt.Sprintf("lineItems[%d].amount", i), item.Amount,
			common.WithMessage(common.NonNegative, fmt.Sprintf("Line item %d: Valid amount is required", n)))
	}
	return v.Messages()
}

func transactionID(periodEnd time.Time, seq int) string {
	return fmt.Sprintf("TXN-%d-%04d", periodEnd.UnixMilli(), seq)
}

// ConvertToAccounting builds the ledger view of rec: a revenue credit per line
// item, a receivables debit for the total and a tax liability credit when
// taxes are positive. It refuses records that fail ValidateForAccounting.
func (s *Service) ConvertToAccounting(rec entity.RevenueRecord, fileName string) (AccountingDocument, error) {
	if msgs := ValidateForAccounting(rec); len(msgs) > 0 {
		return AccountingDocument{}, common.ExportValidationError("CDEX", msgs)
	}
	rec = rec.Clone()

	now := s.now().UTC()
	date := PeriodEnd(rec.Period, now)
	ref := BaseName(fileName)

	txns := make([]Transaction, 0, len(rec.LineItems)+2)
	add := func(account string, debit, credit decimal.Decimal, desc string) {
		txns = append(txns, Transaction{
			ID:                transactionID(date, len(txns)+1),
			AccountCode:       account,
			Date:              date,
			Debit:             debit,
			Credit:            credit,
			Description:       desc,
			DocumentReference: ref,
		})
	}

	for _, item := range rec.LineItems {
		add(AccountRevenue, decimal.Zero, decimal.NewFromFloat(item.Amount), item.Description)
	}
	add(AccountReceivables, decimal.NewFromFloat(rec.TotalRevenue), decimal.Zero,
		fmt.Sprintf("Accounts Receivable - %s Revenue", rec.Company))
	if rec.Taxes > 0 {
		add(AccountTaxes, decimal.Zero, decimal.NewFromFloat(rec.Taxes), "Tax Liability")
	}

	debits, credits := decimal.Zero, decimal.Zero
	for _, t := range txns {
		debits = debits.Add(t.Debit)
		credits = credits.Add(t.Credit)
	}

	return AccountingDocument{
		Header: Header{
			CompanyName:     rec.Company,
			ReportingPeriod: rec.Period,
			GeneratedDate:   now,
			DocumentType:    CDEXDocumentType,
			Version:         CDEXVersion,
		},
		Transactions: txns,
		Summary: Summary{
			TotalDebits:      debits.Round(2),
			TotalCredits:     credits.Round(2),
			TransactionCount: len(txns),
		},
	}, nil
}

type xmlDocument struct {
	XMLName      xml.Name         `xml:"cdex:AccountingDocument"`
	Namespace    string           `xml:"xmlns:cdex,attr"`
	Version      string           `xml:"version,attr"`
	Header       xmlHeader        `xml:"cdex:Header"`
	Transactions []xmlTransaction `xml:"cdex:Transactions>cdex:Transaction"`
	Summary      xmlSummary       `xml:"cdex:Summary"`
}

type xmlHeader struct {
	CompanyName     string `xml:"cdex:CompanyName"`
	ReportingPeriod string `xml:"cdex:ReportingPeriod"`
	GeneratedDate   string `xml:"cdex:GeneratedDate"`
	DocumentType    string `xml:"cdex:DocumentType"`
	Version         string `xml:"cdex:Version"`
}

type xmlTransaction struct {
	TransactionID     string `xml:"cdex:TransactionId"`
	AccountCode       string `xml:"cdex:AccountCode"`
	TransactionDate   string `xml:"cdex:TransactionDate"`
	DebitAmount       string `xml:"cdex:DebitAmount"`
	CreditAmount      string `xml:"cdex:CreditAmount"`
	Description       string `xml:"cdex:Description"`
	DocumentReference string `xml:"cdex:DocumentReference"`
}

type xmlSummary struct {
	TotalDebits      string `xml:"cdex:TotalDebits"`
	TotalCredits     string `xml:"cdex:TotalCredits"`
	TransactionCount int    `xml:"cdex:TransactionCount"`
}

// EncodeAccountingXML renders doc under the cdex namespace. Text content is
// entity-escaped by encoding/xml.
func EncodeAccountingXML(doc AccountingDocument) ([]byte, error) {
	out := xmlDocument{
		Namespace: CDEXNamespace,
		Version:   doc.Header.Version,
		Header: xmlHeader{
			CompanyName:     doc.Header.CompanyName,
			ReportingPeriod: doc.Header.ReportingPeriod,
			GeneratedDate:   doc.Header.GeneratedDate.Format(time.DateOnly),
			DocumentType:    doc.Header.DocumentType,
			Version:         doc.Header.Version,
		},
		Summary: xmlSummary{
			TotalDebits:      doc.Summary.TotalDebits.StringFixed(2),
			TotalCredits:     doc.Summary.TotalCredits.StringFixed(2),
			TransactionCount: doc.Summary.TransactionCount,
		},
	}
	for _, t := range doc.Transactions {
		out.Transactions = append(out.Transactions, xmlTransaction{
			TransactionID:     t.ID,
			AccountCode:       t.AccountCode,
			TransactionDate:   t.Date.Format(time.DateOnly),
			DebitAmount:       t.Debit.StringFixed(2),
			CreditAmount:      t.Credit.StringFixed(2),
			Description:       t.Description,
			DocumentReference: t.DocumentReference,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode cdex: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode cdex: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
