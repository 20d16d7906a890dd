package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/printprofit/internal/pricing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDefaultsPrintTextReport(t *testing.T) {
	out, err := execute(t)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, expected := range []string{"Estimated Total Cost: ₹83.78", "Estimated Profit: ₹416.22 (83.2%)", "Material Cost (PLA)"} {
		if !strings.Contains(out, expected) {
			t.Fatalf("expected output to contain %q, got:\n%s", expected, out)
		}
	}
}

func TestJSONWithLabor(t *testing.T) {
	out, err := execute(t, "--labor", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var got struct {
		Report pricing.CostReport `json:"report"`
		Label  string             `json:"label"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.Report.LaborCost.String() != "75" || got.Report.Profit.String() != "341.22" {
		t.Fatalf("unexpected report: %+v", got.Report)
	}
}

func TestZeroSellingPriceIsLoss(t *testing.T) {
	out, err := execute(t, "--selling-price", "0")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "Estimated Loss: ₹-83.78 (0.0%)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestManualMaterial(t *testing.T) {
	out, err := execute(t, "--material", "Other (Manual Input)", "--material-other", "Silk PLA")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "Material Cost (Silk PLA)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRejectsInvalidInput(t *testing.T) {
	cases := [][]string{
		{"--other-costs", "-5"},
		{"--wattage", "180.5"},
		{"--duration", "soon"},
		{"--material", "Unobtainium"},
		{"--material", "Other (Manual Input)"},
	}
	for _, args := range cases {
		if _, err := execute(t, args...); !errors.Is(err, pricing.ErrInvalidInput) {
			t.Fatalf("%v: expected invalid input, got %v", args, err)
		}
	}

	if _, err := execute(t, "--format", "pdf"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestDefaultsFileOverridesUnsetFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte("selling_price: 1000\nother_costs: 0\n"), 0o600); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	out, err := execute(t, "--defaults-file", path, "--other-costs", "20")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "Target Selling Price: ₹1,000.00") || !strings.Contains(out, "Estimated Total Cost: ₹83.78") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestXLSXWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.xlsx")
	out, err := execute(t, "--format", "xlsx", "--out", path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Fatalf("unexpected output: %s", out)
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer book.Close()
	if idx, _ := book.GetSheetIndex("Profitability"); idx < 0 {
		t.Fatalf("expected Profitability sheet")
	}
}

func TestLaborFlagsIgnoredWhenLaborExcluded(t *testing.T) {
	out, err := execute(t, "--labor-hours", "lots", "--labor-rate", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "Estimated Profit: ₹416.22 (83.2%)") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, err := execute(t, "--labor", "--labor-hours", "lots"); !errors.Is(err, pricing.ErrInvalidInput) {
		t.Fatalf("expected invalid input once labor is included, got %v", err)
	}
}
