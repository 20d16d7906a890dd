package main

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Simplici0/printprofit/internal/materials"
	"github.com/Simplici0/printprofit/internal/pricing"
)

func TestParseJobForm_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = defaultForm()
	req.Form.Set("include_labor", "yes")

	in, err := parseJobForm(req, pricing.Defaults())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !in.IncludeLabor || in.PrinterWattage != 180 || in.MaterialName != "PLA" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.LaborHourlyRate.String() != "150" {
		t.Fatalf("unexpected labor rate: %s", in.LaborHourlyRate)
	}
}

func TestParseJobForm_OtherMaterialUsesManualName(t *testing.T) {
	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = defaultForm()
	req.Form.Set("material", materials.Other)
	req.Form.Set("material_other", "Wood PLA")

	in, err := parseJobForm(req, pricing.Defaults())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in.MaterialName != "Wood PLA" {
		t.Fatalf("MaterialName = %q, want Wood PLA", in.MaterialName)
	}

	req.Form.Set("material_other", " ")
	if _, err := parseJobForm(req, pricing.Defaults()); !errors.Is(err, pricing.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank manual material, got %v", err)
	}
}

func TestParseJobForm_InvalidNumbers(t *testing.T) {
	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = defaultForm()
	req.Form.Set("material_used", "abc")

	_, err := parseJobForm(req, pricing.Defaults())
	var invalid *pricing.InvalidInputError
	if !errors.As(err, &invalid) || invalid.Field != "material_used" {
		t.Fatalf("expected material_used error, got %v", err)
	}
}

func TestParseJobForm_LaborFieldsFallBackWhenExcluded(t *testing.T) {
	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = defaultForm()
	req.Form.Set("labor_hours", "")
	req.Form.Set("labor_hourly_rate", "n/a")

	fallback := pricing.Defaults()
	in, err := parseJobForm(req, fallback)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !in.LaborHours.Equal(fallback.LaborHours) || !in.LaborHourlyRate.Equal(fallback.LaborHourlyRate) {
		t.Fatalf("expected fallback labor values, got %+v", in)
	}

	req.Form.Set("include_labor", "yes")
	if _, err := parseJobForm(req, fallback); !errors.Is(err, pricing.ErrInvalidInput) {
		t.Fatalf("expected error once labor is included, got %v", err)
	}
}

func TestFormFromInputRoundTripsManualMaterial(t *testing.T) {
	in := pricing.Defaults()
	in.MaterialName = "Glow PETG"

	form, selected := formFromInput(in)
	if selected != materials.Other || form.MaterialOther != "Glow PETG" {
		t.Fatalf("unexpected selection: %q %q", selected, form.MaterialOther)
	}
	if form.SellingPrice != "500" || form.LaborHours != "0.5" || form.PrinterWattage != "180" {
		t.Fatalf("unexpected form values: %+v", form)
	}
}
