package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is matched by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError identifies the offending field of a rejected input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds an InvalidInputError for field.
func Invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

type amountField struct {
	name  string
	value decimal.Decimal
}

// Validate rejects negative amounts and a blank material name, reporting the
// first offending field in form order. Labor fields are skipped when labor
// is not included.
func Validate(in JobCostInput) error {
	if in.SellingPrice.IsNegative() {
		return Invalid("selling_price", "must be greater than or equal to 0")
	}
	if strings.TrimSpace(in.MaterialName) == "" {
		return Invalid("material_name", "is required")
	}

	fields := []amountField{
		{"material_spool_cost", in.MaterialSpoolCost},
		{"material_used", in.MaterialUsedGrams},
		{"print_duration_hours", in.PrintDurationHours},
		{"printer_wattage", decimal.NewFromInt(in.PrinterWattage)},
		{"electricity_cost_per_kwh", in.ElectricityCostPerKWh},
	}
	if in.IncludeLabor {
		fields = append(fields,
			amountField{"labor_hours", in.LaborHours},
			amountField{"labor_hourly_rate", in.LaborHourlyRate},
		)
	}
	fields = append(fields, amountField{"other_costs", in.OtherCosts})

	for _, f := range fields {
		if f.value.IsNegative() {
			return Invalid(f.name, "must be greater than or equal to 0")
		}
	}
	return nil
}

// ParseAmount parses a decimal form or flag value for field.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, Invalid(field, "is required")
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, Invalid(field, "must be numeric")
	}
	return v, nil
}

// ParseWatts parses a whole number of watts for field.
func ParseWatts(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Invalid(field, "is required")
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, Invalid(field, "must be a whole number")
	}
	return v, nil
}
