package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/printprofit/internal/pricing"
)

const (
	summarySheet = "Profitability"
	inputSheet   = "Job"
)

// XLSX returns a workbook with the report figures and the job input that
// produced them. Amounts are written as numbers rounded to two decimals.
func (f Formatter) XLSX(in pricing.JobCostInput, r pricing.CostReport) ([]byte, error) {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := book.NewSheet(inputSheet); err != nil {
		return nil, fmt.Errorf("create input sheet: %w", err)
	}

	summary := [][]any{
		{"Item", "Amount (" + f.CurrencySymbol + ")"},
		{"Target Selling Price", amount(r.SellingPrice)},
		{"Material Cost (" + r.MaterialName + ")", amount(r.MaterialCost)},
		{"Electricity Cost", amount(r.ElectricityCost)},
		{"Labor Cost (Accounted for: " + YesNo(r.IncludeLabor) + ")", amount(r.LaborCost)},
		{"Other Per-Print Costs", amount(r.OtherCosts)},
		{"Estimated Total Cost", amount(r.TotalCost)},
		{ProfitLabel(r), amount(r.Profit)},
		{"Profit Margin (%)", r.ProfitMarginPercent.Round(1).InexactFloat64()},
	}
	if err := writeRows(book, summarySheet, summary); err != nil {
		return nil, err
	}

	job := [][]any{
		{"Field", "Value"},
		{"Selling price", amount(in.SellingPrice)},
		{"Material", in.MaterialName},
		{"Spool cost (1 kg)", amount(in.MaterialSpoolCost)},
		{"Material used (g)", in.MaterialUsedGrams.InexactFloat64()},
		{"Print duration (h)", in.PrintDurationHours.InexactFloat64()},
		{"Printer wattage (W)", in.PrinterWattage},
		{"Electricity cost per kWh", amount(in.ElectricityCostPerKWh)},
		{"Include labor", YesNo(in.IncludeLabor)},
		{"Labor hours", in.LaborHours.InexactFloat64()},
		{"Labor hourly rate", amount(in.LaborHourlyRate)},
		{"Other costs", amount(in.OtherCosts)},
	}
	if err := writeRows(book, inputSheet, job); err != nil {
		return nil, err
	}

	widths := []struct {
		sheet string
		col   string
		width float64
	}{
		{summarySheet, "A", 42},
		{summarySheet, "B", 18},
		{inputSheet, "A", 28},
		{inputSheet, "B", 22},
	}
	for _, w := range widths {
		if err := book.SetColWidth(w.sheet, w.col, w.col, w.width); err != nil {
			return nil, fmt.Errorf("set %s column %s width: %w", w.sheet, w.col, err)
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(book *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func amount(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}
