package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/printprofit/internal/materials"
	"github.com/Simplici0/printprofit/internal/pricing"
	"github.com/Simplici0/printprofit/internal/report"
	"github.com/Simplici0/printprofit/internal/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// formValues holds the calculator fields as the browser shows them.
type formValues struct {
	SellingPrice          string
	MaterialOther         string
	MaterialSpoolCost     string
	MaterialUsed          string
	PrintDurationHours    string
	PrinterWattage        string
	ElectricityCostPerKWh string
	IncludeLabor          bool
	LaborHours            string
	LaborHourlyRate       string
	OtherCosts            string
}

type materialOption struct {
	Name      string
	Selected  bool
	Suggested string
}

type calculatorViewData struct {
	baseViewData
	Form      formValues
	Materials []materialOption
	Report    *report.View
}

func formFromInput(in pricing.JobCostInput) (formValues, string) {
	selected, manual := materials.Selection(in.MaterialName)
	return formValues{
		SellingPrice:          in.SellingPrice.String(),
		MaterialOther:         manual,
		MaterialSpoolCost:     in.MaterialSpoolCost.String(),
		MaterialUsed:          in.MaterialUsedGrams.String(),
		PrintDurationHours:    in.PrintDurationHours.String(),
		PrinterWattage:        strconv.FormatInt(in.PrinterWattage, 10),
		ElectricityCostPerKWh: in.ElectricityCostPerKWh.String(),
		IncludeLabor:          in.IncludeLabor,
		LaborHours:            in.LaborHours.String(),
		LaborHourlyRate:       in.LaborHourlyRate.String(),
		OtherCosts:            in.OtherCosts.String(),
	}, selected
}

func formFromRequest(r *http.Request) (formValues, string) {
	return formValues{
		SellingPrice:          r.FormValue("selling_price"),
		MaterialOther:         r.FormValue("material_other"),
		MaterialSpoolCost:     r.FormValue("material_spool_cost"),
		MaterialUsed:          r.FormValue("material_used"),
		PrintDurationHours:    r.FormValue("print_duration_hours"),
		PrinterWattage:        r.FormValue("printer_wattage"),
		ElectricityCostPerKWh: r.FormValue("electricity_cost_per_kwh"),
		IncludeLabor:          r.FormValue("include_labor") == "yes",
		LaborHours:            r.FormValue("labor_hours"),
		LaborHourlyRate:       r.FormValue("labor_hourly_rate"),
		OtherCosts:            r.FormValue("other_costs"),
	}, r.FormValue("material")
}

// parseJobForm reads the calculator form. Labor fields that fail to parse
// while labor is excluded keep their value from fallback.
func parseJobForm(r *http.Request, fallback pricing.JobCostInput) (pricing.JobCostInput, error) {
	in := pricing.JobCostInput{
		MaterialName: materials.Resolve(r.FormValue("material"), r.FormValue("material_other"), pricing.DefaultMaterial),
		IncludeLabor: r.FormValue("include_labor") == "yes",
	}

	amounts := []struct {
		field string
		dst   *decimal.Decimal
	}{
		{"selling_price", &in.SellingPrice},
		{"material_spool_cost", &in.MaterialSpoolCost},
		{"material_used", &in.MaterialUsedGrams},
		{"print_duration_hours", &in.PrintDurationHours},
		{"electricity_cost_per_kwh", &in.ElectricityCostPerKWh},
		{"other_costs", &in.OtherCosts},
	}
	for _, a := range amounts {
		v, err := pricing.ParseAmount(a.field, r.FormValue(a.field))
		if err != nil {
			return in, err
		}
		*a.dst = v
	}

	watts, err := pricing.ParseWatts("printer_wattage", r.FormValue("printer_wattage"))
	if err != nil {
		return in, err
	}
	in.PrinterWattage = watts

	in.LaborHours, err = pricing.ParseAmount("labor_hours", r.FormValue("labor_hours"))
	if err != nil {
		if in.IncludeLabor {
			return in, err
		}
		in.LaborHours = fallback.LaborHours
	}
	in.LaborHourlyRate, err = pricing.ParseAmount("labor_hourly_rate", r.FormValue("labor_hourly_rate"))
	if err != nil {
		if in.IncludeLabor {
			return in, err
		}
		in.LaborHourlyRate = fallback.LaborHourlyRate
	}

	if err := pricing.Validate(in); err != nil {
		return in, err
	}
	return in, nil
}

func (s *server) materialOptions(ctx context.Context, selected string) []materialOption {
	suggested := make(map[string]decimal.Decimal)
	catalog, err := s.catalog.List(ctx, false)
	if err != nil {
		s.log.Warn("material catalog unavailable", zap.Error(err))
	}
	for _, m := range catalog {
		suggested[m.Name] = m.SpoolCost
	}

	options := make([]materialOption, 0, len(materials.Names))
	for _, name := range materials.Names {
		opt := materialOption{Name: name, Selected: name == selected}
		if cost, ok := suggested[name]; ok && cost.IsPositive() {
			opt.Suggested = s.format.Currency(cost)
		}
		options = append(options, opt)
	}
	return options
}

func (s *server) calculatorView(ctx context.Context, state session.State, form formValues, selected string) calculatorViewData {
	view := calculatorViewData{
		baseViewData: s.baseView(state),
		Form:         form,
		Materials:    s.materialOptions(ctx, selected),
	}
	if state.Report != nil {
		built := s.format.Build(*state.Report)
		view.Report = &built
	}
	return view
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	state := s.sessions.Load(w, r)
	form, selected := formFromInput(state.Input)
	s.renderTemplate(w, http.StatusOK, "calculator.html", s.calculatorView(r.Context(), state, form, selected))
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	state := s.sessions.Load(w, r)
	in, err := parseJobForm(r, state.Input)
	if err != nil {
		// The page shows the rejected values, so the last report is hidden
		// from it. The session keeps that report for the downloads.
		shown := state
		shown.Report = nil
		form, selected := formFromRequest(r)
		view := s.calculatorView(r.Context(), shown, form, selected)
		view.ErrorMessage = err.Error()
		s.renderTemplate(w, http.StatusBadRequest, "calculator.html", view)
		return
	}

	result := pricing.Compute(in)
	state = state.Calculated(in, result)
	s.sessions.Save(state)
	s.log.Debug("job calculated",
		zap.String("material", in.MaterialName),
		zap.String("total_cost", result.TotalCost.String()),
		zap.String("profit", result.Profit.String()),
	)

	form, selected := formFromInput(in)
	s.renderTemplate(w, http.StatusOK, "calculator.html", s.calculatorView(r.Context(), state, form, selected))
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	state := s.sessions.Load(w, r)
	s.sessions.Save(state.Reset(s.defaults))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleTheme(w http.ResponseWriter, r *http.Request) {
	state := s.sessions.Load(w, r)
	s.sessions.Save(state.ToggleTheme())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleReportText(w http.ResponseWriter, r *http.Request) {
	state := s.sessions.Load(w, r)
	if state.Report == nil {
		http.Error(w, "no report calculated yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.format.Text(*state.Report)))
}

func (s *server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	state := s.sessions.Load(w, r)
	if state.Report == nil {
		http.Error(w, "no report calculated yet", http.StatusNotFound)
		return
	}

	data, err := s.format.XLSX(state.Input, *state.Report)
	if err != nil {
		s.log.Error("build xlsx report", zap.Error(err))
		http.Error(w, "failed to build spreadsheet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="profitability.xlsx"`)
	_, _ = w.Write(data)
}
