package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/printprofit/internal/materials"
	"github.com/Simplici0/printprofit/internal/pricing"
	"github.com/Simplici0/printprofit/internal/report"
)

const maxJobBodyBytes = 64 << 10

// Labor fields carry no minimum here: they are only checked when labor is
// included, which pricing.Validate handles.
const jobSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "selling_price":            {"type": ["number", "string"], "minimum": 0},
    "material_name":            {"type": "string", "minLength": 1},
    "material_spool_cost":      {"type": ["number", "string"], "minimum": 0},
    "material_used":            {"type": ["number", "string"], "minimum": 0},
    "print_duration_hours":     {"type": ["number", "string"], "minimum": 0},
    "printer_wattage":          {"type": "integer", "minimum": 0},
    "electricity_cost_per_kwh": {"type": ["number", "string"], "minimum": 0},
    "include_labor":            {"type": "boolean"},
    "labor_hours":              {"type": ["number", "string"]},
    "labor_hourly_rate":        {"type": ["number", "string"]},
    "other_costs":              {"type": ["number", "string"], "minimum": 0}
  }
}`

type apiError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type apiCalculateResponse struct {
	Input  pricing.JobCostInput `json:"input"`
	Report pricing.CostReport   `json:"report"`
	Label  string               `json:"label"`
}

func compileJobSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("job.json", strings.NewReader(jobSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add job schema: %w", err)
	}
	schema, err := compiler.Compile("job.json")
	if err != nil {
		return nil, fmt.Errorf("compile job schema: %w", err)
	}
	return schema, nil
}

// decodeJob validates body against the job schema and overlays it onto the
// defaults, so omitted fields keep their default value.
func (s *server) decodeJob(body []byte) (pricing.JobCostInput, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return pricing.JobCostInput{}, pricing.Invalid("body", "must be a JSON object")
	}
	if err := s.jobSchema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			leaf := deepestCause(verr)
			return pricing.JobCostInput{}, pricing.Invalid(fieldFromLocation(leaf.InstanceLocation), leaf.Message)
		}
		return pricing.JobCostInput{}, pricing.Invalid("body", err.Error())
	}

	job := jobBody{JobCostInput: s.defaults}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&job); err != nil {
		return pricing.JobCostInput{}, pricing.Invalid("body", "has a value of the wrong type")
	}
	in := job.JobCostInput
	if job.PrinterWattage != nil {
		watts, err := wholeWatts(*job.PrinterWattage)
		if err != nil {
			return pricing.JobCostInput{}, err
		}
		in.PrinterWattage = watts
	}

	in.MaterialName = strings.TrimSpace(in.MaterialName)
	if in.MaterialName == materials.Other {
		return pricing.JobCostInput{}, pricing.Invalid("material_name", "must name the material when Other is chosen")
	}

	if err := pricing.Validate(in); err != nil {
		return pricing.JobCostInput{}, err
	}
	return in, nil
}

// jobBody reads printer_wattage as a raw number, since JSON Schema counts
// 180.0 as an integer but encoding/json will not decode it into an int64.
type jobBody struct {
	pricing.JobCostInput
	PrinterWattage *json.Number `json:"printer_wattage"`
}

func wholeWatts(n json.Number) (int64, error) {
	v, err := decimal.NewFromString(n.String())
	if err != nil || !v.IsInteger() {
		return 0, pricing.Invalid("printer_wattage", "must be a whole number")
	}
	return v.IntPart(), nil
}

func deepestCause(verr *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	return verr
}

func fieldFromLocation(location string) string {
	field := strings.TrimPrefix(location, "/")
	if field == "" {
		return "body"
	}
	return field
}

func (s *server) handleAPICalculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJobBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, apiError{Error: "request body too large"})
		return
	}

	in, err := s.decodeJob(body)
	if err != nil {
		var invalid *pricing.InvalidInputError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, apiError{Error: invalid.Error(), Field: invalid.Field})
			return
		}
		s.log.Error("decode job", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
		return
	}

	result := pricing.Compute(in)
	writeJSON(w, http.StatusOK, apiCalculateResponse{
		Input:  in,
		Report: result,
		Label:  report.ProfitLabel(result),
	})
}

func (s *server) handleAPIDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.defaults)
}

func (s *server) handleAPIMaterials(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalog.List(r.Context(), false)
	if err != nil {
		s.log.Error("list materials", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to load materials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"selectable": materials.Names,
		"other":      materials.Other,
		"catalog":    catalog,
	})
}
