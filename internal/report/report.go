// Package report turns a pricing.CostReport into display values and
// downloadable documents. Rounding happens here and nowhere else.
package report

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/Simplici0/printprofit/internal/pricing"
)

const (
	profitLabel = "Estimated Profit"
	lossLabel   = "Estimated Loss"
)

// Line is one row of the cost breakdown.
type Line struct {
	Label  string
	Amount string
	Note   string
}

// View is a CostReport with every figure already formatted.
type View struct {
	SellingPrice string
	TotalCost    string
	ProfitLabel  string
	Profit       string
	Margin       string
	IsLoss       bool
	Breakdown    []Line
}

// ProfitLabel names the profit figure after its sign.
func ProfitLabel(r pricing.CostReport) string {
	if r.IsLoss() {
		return lossLabel
	}
	return profitLabel
}

// Build formats r for display.
func (f Formatter) Build(r pricing.CostReport) View {
	return View{
		SellingPrice: f.Currency(r.SellingPrice),
		TotalCost:    f.Currency(r.TotalCost),
		ProfitLabel:  ProfitLabel(r),
		Profit:       f.Currency(r.Profit),
		Margin:       f.Percent(r.ProfitMarginPercent),
		IsLoss:       r.IsLoss(),
		Breakdown: []Line{
			{Label: fmt.Sprintf("Material Cost (%s)", r.MaterialName), Amount: f.Currency(r.MaterialCost)},
			{Label: "Electricity Cost", Amount: f.Currency(r.ElectricityCost)},
			{Label: "Labor Cost", Amount: f.Currency(r.LaborCost), Note: "Accounted for: " + YesNo(r.IncludeLabor)},
			{Label: "Other Per-Print Costs", Amount: f.Currency(r.OtherCosts)},
		},
	}
}

// Text renders r as a plain-text summary.
func (f Formatter) Text(r pricing.CostReport) string {
	v := f.Build(r)

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PROFITABILITY ANALYSIS")
	fmt.Fprintf(&buf, "Target Selling Price: %s\n", v.SellingPrice)
	fmt.Fprintf(&buf, "Estimated Total Cost: %s\n", v.TotalCost)
	fmt.Fprintf(&buf, "%s: %s (%s)\n", v.ProfitLabel, v.Profit, v.Margin)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Detailed Cost Breakdown:")

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Component", "Amount", "Note"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, line := range v.Breakdown {
		table.Append([]string{line.Label, line.Amount, line.Note})
	}
	table.Render()

	return buf.String()
}
