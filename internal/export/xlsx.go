package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/revenue-parser/internal/derive"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

const (
	SheetRevenue    = "Revenue Analysis"
	SheetSummary    = "Summary"
	SheetProduction = "Oil & Gas Production"

	usDate          = "01/02/2006"
	unknownOperator = "Unknown Operator"
)

var productionHeaders = []string{
	"Property Name",
	"Property Number",
	"Production Date",
	"Product Type",
	"Volume",
	"Unit",
	"Price",
	"Gross Value",
	"Deductions",
	"Taxes",
	"Net Value",
	"Owner Interest",
	"BTU Factor",
	"Check Date",
	"Operator",
}

// Sheet is a finished row matrix plus the presentation hints excelize needs.
// A nil row is left blank.
type Sheet struct {
	Name      string
	Rows      [][]any
	Widths    []float64 // per column, starting at A
	HeaderRow int       // 1-based row to style, 0 for none
	TitleCell string    // cell styled as a title, "" for none
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// BuildSheets lays out the workbook. It never fails: defaulting already
// happened during normalization.
func (s *Service) BuildSheets(rec entity.RevenueRecord) []Sheet {
	rec = rec.Clone()
	derived := s.calc.Derive(rec)
	now := s.now()

	return []Sheet{
		revenueSheet(rec, now.Format(usDate)),
		summarySheet(rec),
		productionSheet(rec, derived, now.Format(usDate), productionDate(rec.Period, now)),
	}
}

func revenueSheet(rec entity.RevenueRecord, generated string) Sheet {
	rows := [][]any{
		{"Revenue Statement Analysis"},
		nil,
		{"Company:", rec.Company},
		{"Period:", rec.Period},
		{"Generated:", generated},
		nil,
		{"LINE ITEMS"},
		{"Description", "Quantity", "Rate", "Amount"},
	}
	for _, item := range rec.LineItems {
		rows = append(rows, []any{item.Description, item.Quantity, item.Rate, item.Amount})
	}
	rows = append(rows,
		nil,
		[]any{"SUMMARY"},
		[]any{"Gross Revenue", "", "", rec.TotalRevenue},
		[]any{"Taxes & Deductions", "", "", rec.Taxes},
		[]any{"Net Revenue", "", "", rec.NetRevenue},
	)
	return Sheet{Name: SheetRevenue, Rows: rows, Widths: []float64{30, 12, 12, 15}, TitleCell: "A1"}
}

func summarySheet(rec entity.RevenueRecord) Sheet {
	rows := [][]any{
		{"Revenue Summary"},
		nil,
		{"Company", rec.Company},
		{"Period", rec.Period},
		nil,
		{"Financial Summary"},
		{"Metric", "Amount"},
		{"Total Revenue Items", len(rec.LineItems)},
		{"Gross Revenue", rec.TotalRevenue},
		{"Total Taxes/Deductions", rec.Taxes},
		{"Net Revenue", rec.NetRevenue},
		nil,
		{"Revenue Breakdown by Type"},
	}
	for _, item := range rec.LineItems {
		rows = append(rows, []any{item.Description, item.Amount})
	}
	return Sheet{Name: SheetSummary, Rows: rows, Widths: []float64{25, 20}, TitleCell: "A1"}
}

// productionDate is the first day of the reporting month or quarter, or the
// check date when the period names neither.
func productionDate(period string, now time.Time) string {
	if start, ok := PeriodStart(period, now); ok {
		return start.Format(usDate)
	}
	return now.Format(usDate)
}

func productionSheet(rec entity.RevenueRecord, d derive.Result, checkDate, prodDate string) Sheet {
	operator := rec.Company
	if operator == "" {
		operator = unknownOperator
	}

	header := make([]any, len(productionHeaders))
	for i, h := range productionHeaders {
		header[i] = h
	}
	rows := [][]any{header}

	var volume float64
	for _, row := range d.Rows {
		volume += row.Item.Quantity
		rows = append(rows, []any{
			row.Property.Name,
			row.Property.Number,
			prodDate,
			string(row.Property.Product),
			row.Item.Quantity,
			row.Property.Unit,
			row.Item.Rate,
			row.Share.Gross.InexactFloat64(),
			round2(row.Share.Deductions),
			round2(row.Share.Taxes),
			round2(row.Share.Net),
			row.Property.OwnerInterest,
			fmt.Sprintf("%.3f", row.Property.BTUFactor),
			checkDate,
			operator,
		})
	}

	rows = append(rows, []any{
		"TOTAL", "", "", "",
		volume,
		"", "",
		rec.TotalRevenue,
		round2(d.Totals.OtherDeductions),
		round2(d.Totals.Taxes),
		rec.NetRevenue,
		"", "", "", "",
	})

	return Sheet{
		Name:      SheetProduction,
		Rows:      rows,
		Widths:    []float64{25, 15, 15, 15, 12, 8, 12, 15, 12, 10, 15, 15, 12, 12, 20},
		HeaderRow: 1,
	}
}

// encodeXLSX writes sheets into a workbook, in order.
func encodeXLSX(sheets []Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return nil, fmt.Errorf("new sheet %q: %w", sh.Name, err)
		}

		for r, row := range sh.Rows {
			if len(row) == 0 {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			values := row
			if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
				return nil, fmt.Errorf("%s row %d: %w", sh.Name, r+1, err)
			}
		}

		for c, w := range sh.Widths {
			col, _ := excelize.ColumnNumberToName(c + 1)
			_ = f.SetColWidth(sh.Name, col, col, w)
		}
		if sh.TitleCell != "" {
			_ = f.SetCellStyle(sh.Name, sh.TitleCell, sh.TitleCell, titleStyle)
		}
		if sh.HeaderRow > 0 && sh.HeaderRow <= len(sh.Rows) && len(sh.Rows[sh.HeaderRow-1]) > 0 {
			first, _ := excelize.CoordinatesToCellName(1, sh.HeaderRow)
			last, _ := excelize.CoordinatesToCellName(len(sh.Rows[sh.HeaderRow-1]), sh.HeaderRow)
			_ = f.SetCellStyle(sh.Name, first, last, headerStyle)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
