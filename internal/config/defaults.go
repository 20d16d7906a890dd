package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/printprofit/internal/materials"
	"github.com/Simplici0/printprofit/internal/pricing"
)

// defaultsFile mirrors the form fields. Omitted keys keep the built-in value.
type defaultsFile struct {
	SellingPrice          *float64 `yaml:"selling_price"`
	Material              *string  `yaml:"material"`
	MaterialSpoolCost     *float64 `yaml:"material_spool_cost"`
	MaterialUsed          *float64 `yaml:"material_used"`
	PrintDurationHours    *float64 `yaml:"print_duration_hours"`
	PrinterWattage        *int64   `yaml:"printer_wattage"`
	ElectricityCostPerKWh *float64 `yaml:"electricity_cost_per_kwh"`
	IncludeLabor          *bool    `yaml:"include_labor"`
	LaborHours            *float64 `yaml:"labor_hours"`
	LaborHourlyRate       *float64 `yaml:"labor_hourly_rate"`
	OtherCosts            *float64 `yaml:"other_costs"`
}

// LoadDefaults overlays the YAML file at path onto base. The result must pass
// pricing.Validate and name a selectable material.
func LoadDefaults(path string, base pricing.JobCostInput) (pricing.JobCostInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pricing.JobCostInput{}, fmt.Errorf("read defaults file: %w", err)
	}

	var file defaultsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return pricing.JobCostInput{}, fmt.Errorf("parse defaults file: %w", err)
	}

	out := base
	setDecimal(&out.SellingPrice, file.SellingPrice)
	setDecimal(&out.MaterialSpoolCost, file.MaterialSpoolCost)
	setDecimal(&out.MaterialUsedGrams, file.MaterialUsed)
	setDecimal(&out.PrintDurationHours, file.PrintDurationHours)
	setDecimal(&out.ElectricityCostPerKWh, file.ElectricityCostPerKWh)
	setDecimal(&out.LaborHours, file.LaborHours)
	setDecimal(&out.LaborHourlyRate, file.LaborHourlyRate)
	setDecimal(&out.OtherCosts, file.OtherCosts)
	if file.Material != nil {
		out.MaterialName = *file.Material
	}
	if file.PrinterWattage != nil {
		out.PrinterWattage = *file.PrinterWattage
	}
	if file.IncludeLabor != nil {
		out.IncludeLabor = *file.IncludeLabor
	}

	if !materials.Known(out.MaterialName) || out.MaterialName == materials.Other {
		return pricing.JobCostInput{}, fmt.Errorf("defaults file: material %q is not selectable", out.MaterialName)
	}
	if err := pricing.Validate(out); err != nil {
		return pricing.JobCostInput{}, fmt.Errorf("defaults file: %w", err)
	}

	return out, nil
}

func setDecimal(dst *decimal.Decimal, v *float64) {
	if v != nil {
		*dst = decimal.NewFromFloat(*v)
	}
}
