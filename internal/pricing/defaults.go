package pricing

import "github.com/shopspring/decimal"

// DefaultMaterial is the material preselected on a fresh form.
const DefaultMaterial = "PLA"

// Defaults returns the input record a fresh or reset form starts from.
func Defaults() JobCostInput {
	return JobCostInput{
		SellingPrice:          decimal.NewFromInt(500),
		MaterialName:          DefaultMaterial,
		MaterialSpoolCost:     decimal.NewFromInt(1200),
		MaterialUsedGrams:     decimal.NewFromInt(50),
		PrintDurationHours:    decimal.NewFromInt(3),
		PrinterWattage:        180,
		ElectricityCostPerKWh: decimal.NewFromInt(7),
		IncludeLabor:          false,
		LaborHours:            decimal.RequireFromString("0.5"),
		LaborHourlyRate:       decimal.NewFromInt(150),
		OtherCosts:            decimal.NewFromInt(20),
	}
}
