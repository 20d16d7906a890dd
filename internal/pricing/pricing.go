package pricing

import "github.com/shopspring/decimal"

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// JobCostInput represents the caller-supplied parameters of one print job.
type JobCostInput struct {
	SellingPrice          decimal.Decimal `json:"selling_price"`
	MaterialName          string          `json:"material_name"`
	MaterialSpoolCost     decimal.Decimal `json:"material_spool_cost"`
	MaterialUsedGrams     decimal.Decimal `json:"material_used"`
	PrintDurationHours    decimal.Decimal `json:"print_duration_hours"`
	PrinterWattage        int64           `json:"printer_wattage"`
	ElectricityCostPerKWh decimal.Decimal `json:"electricity_cost_per_kwh"`
	IncludeLabor          bool            `json:"include_labor"`
	LaborHours            decimal.Decimal `json:"labor_hours"`
	LaborHourlyRate       decimal.Decimal `json:"labor_hourly_rate"`
	OtherCosts            decimal.Decimal `json:"other_costs"`
}

// CostReport contains the cost components and profitability of a job.
// SellingPrice, MaterialName and IncludeLabor echo the input for renderers.
type CostReport struct {
	SellingPrice        decimal.Decimal `json:"selling_price"`
	MaterialName        string          `json:"material_name"`
	IncludeLabor        bool            `json:"include_labor"`
	MaterialCost        decimal.Decimal `json:"material_cost"`
	ElectricityCost     decimal.Decimal `json:"electricity_cost"`
	LaborCost           decimal.Decimal `json:"labor_cost"`
	OtherCosts          decimal.Decimal `json:"other_costs"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	Profit              decimal.Decimal `json:"profit"`
	ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
}

// Compute derives the cost report for a job. It performs no validation:
// negative inputs flow through the arithmetic unchanged.
func Compute(in JobCostInput) CostReport {
	costPerGram := decimal.Zero
	if in.MaterialSpoolCost.IsPositive() {
		costPerGram = in.MaterialSpoolCost.Div(thousand)
	}
	materialCost := costPerGram.Mul(in.MaterialUsedGrams)

	energyKWh := decimal.NewFromInt(in.PrinterWattage).Div(thousand).Mul(in.PrintDurationHours)
	electricityCost := energyKWh.Mul(in.ElectricityCostPerKWh)

	laborCost := decimal.Zero
	if in.IncludeLabor {
		laborCost = in.LaborHours.Mul(in.LaborHourlyRate)
	}

	total := materialCost.Add(electricityCost).Add(laborCost).Add(in.OtherCosts)
	profit := in.SellingPrice.Sub(total)

	margin := decimal.Zero
	if in.SellingPrice.IsPositive() {
		margin = profit.Div(in.SellingPrice).Mul(hundred)
	}

	return CostReport{
		SellingPrice:        in.SellingPrice,
		MaterialName:        in.MaterialName,
		IncludeLabor:        in.IncludeLabor,
		MaterialCost:        materialCost,
		ElectricityCost:     electricityCost,
		LaborCost:           laborCost,
		OtherCosts:          in.OtherCosts,
		TotalCost:           total,
		Profit:              profit,
		ProfitMarginPercent: margin,
	}
}

// IsLoss reports whether the job sells below its total cost.
func (r CostReport) IsLoss() bool {
	return r.Profit.IsNegative()
}
