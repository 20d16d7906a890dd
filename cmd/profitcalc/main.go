// Command profitcalc prints the profitability report of one print job.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printprofit/internal/config"
	"github.com/Simplici0/printprofit/internal/materials"
	"github.com/Simplici0/printprofit/internal/pricing"
	"github.com/Simplici0/printprofit/internal/report"
)

type options struct {
	sellingPrice    string
	material        string
	materialOther   string
	spoolCost       string
	materialUsed    string
	duration        string
	wattage         string
	electricityRate string
	labor           bool
	laborHours      string
	laborRate       string
	otherCosts      string

	defaultsFile string
	currency     string
	format       string
	out          string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	d := pricing.Defaults()

	cmd := &cobra.Command{
		Use:          "profitcalc",
		Short:        "Estimate the cost and profit of a 3D print job",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sellingPrice, "selling-price", d.SellingPrice.String(), "target selling price")
	f.StringVar(&opts.material, "material", d.MaterialName, "material type")
	f.StringVar(&opts.materialOther, "material-other", "", "material name when --material is \""+materials.Other+"\"")
	f.StringVar(&opts.spoolCost, "spool-cost", d.MaterialSpoolCost.String(), "cost of a 1kg spool")
	f.StringVar(&opts.materialUsed, "material-used", d.MaterialUsedGrams.String(), "material used in grams")
	f.StringVar(&opts.duration, "duration", d.PrintDurationHours.String(), "print duration in hours")
	f.StringVar(&opts.wattage, "wattage", strconv.FormatInt(d.PrinterWattage, 10), "printer power in watts")
	f.StringVar(&opts.electricityRate, "electricity-rate", d.ElectricityCostPerKWh.String(), "electricity cost per kWh")
	f.BoolVar(&opts.labor, "labor", d.IncludeLabor, "include labor cost")
	f.StringVar(&opts.laborHours, "labor-hours", d.LaborHours.String(), "total labor hours")
	f.StringVar(&opts.laborRate, "labor-rate", d.LaborHourlyRate.String(), "hourly labor rate")
	f.StringVar(&opts.otherCosts, "other-costs", d.OtherCosts.String(), "other costs per print")
	f.StringVar(&opts.defaultsFile, "defaults-file", "", "YAML file overriding the built-in defaults")
	f.StringVar(&opts.currency, "currency", "₹", "currency symbol")
	f.StringVarP(&opts.format, "format", "f", "text", "output format: text, json or xlsx")
	f.StringVarP(&opts.out, "out", "o", "profitability.xlsx", "output file for --format xlsx")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	base := pricing.Defaults()
	if opts.defaultsFile != "" {
		loaded, err := config.LoadDefaults(opts.defaultsFile, base)
		if err != nil {
			return err
		}
		base = loaded
		applyBase(cmd, opts, base)
	}

	in, err := opts.input(base)
	if err != nil {
		return err
	}

	result := pricing.Compute(in)
	format := report.Formatter{CurrencySymbol: opts.currency}
	return write(cmd.OutOrStdout(), format, opts, in, result)
}

// applyBase replaces flag values the user did not set with values from base.
func applyBase(cmd *cobra.Command, opts *options, base pricing.JobCostInput) {
	f := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if !f.Changed(name) {
			*dst = v
		}
	}
	set("selling-price", &opts.sellingPrice, base.SellingPrice.String())
	set("material", &opts.material, base.MaterialName)
	set("spool-cost", &opts.spoolCost, base.MaterialSpoolCost.String())
	set("material-used", &opts.materialUsed, base.MaterialUsedGrams.String())
	set("duration", &opts.duration, base.PrintDurationHours.String())
	set("wattage", &opts.wattage, strconv.FormatInt(base.PrinterWattage, 10))
	set("electricity-rate", &opts.electricityRate, base.ElectricityCostPerKWh.String())
	set("labor-hours", &opts.laborHours, base.LaborHours.String())
	set("labor-rate", &opts.laborRate, base.LaborHourlyRate.String())
	set("other-costs", &opts.otherCosts, base.OtherCosts.String())
	if !f.Changed("labor") {
		opts.labor = base.IncludeLabor
	}
}

// input parses the flags. Labor flags that fail to parse while labor is
// excluded take their value from fallback.
func (o *options) input(fallback pricing.JobCostInput) (pricing.JobCostInput, error) {
	if o.material != materials.Other && !materials.Known(o.material) {
		return pricing.JobCostInput{}, pricing.Invalid("material", fmt.Sprintf("must be one of the listed materials, got %q", o.material))
	}

	in := pricing.JobCostInput{
		MaterialName: materials.Resolve(o.material, o.materialOther, pricing.DefaultMaterial),
		IncludeLabor: o.labor,
	}

	var err error
	if in.SellingPrice, err = pricing.ParseAmount("selling-price", o.sellingPrice); err != nil {
		return in, err
	}
	if in.MaterialSpoolCost, err = pricing.ParseAmount("spool-cost", o.spoolCost); err != nil {
		return in, err
	}
	if in.MaterialUsedGrams, err = pricing.ParseAmount("material-used", o.materialUsed); err != nil {
		return in, err
	}
	if in.PrintDurationHours, err = pricing.ParseAmount("duration", o.duration); err != nil {
		return in, err
	}
	if in.PrinterWattage, err = pricing.ParseWatts("wattage", o.wattage); err != nil {
		return in, err
	}
	if in.ElectricityCostPerKWh, err = pricing.ParseAmount("electricity-rate", o.electricityRate); err != nil {
		return in, err
	}
	if in.LaborHours, err = pricing.ParseAmount("labor-hours", o.laborHours); err != nil {
		if o.labor {
			return in, err
		}
		in.LaborHours = fallback.LaborHours
	}
	if in.LaborHourlyRate, err = pricing.ParseAmount("labor-rate", o.laborRate); err != nil {
		if o.labor {
			return in, err
		}
		in.LaborHourlyRate = fallback.LaborHourlyRate
	}
	if in.OtherCosts, err = pricing.ParseAmount("other-costs", o.otherCosts); err != nil {
		return in, err
	}

	if err := pricing.Validate(in); err != nil {
		return in, err
	}
	return in, nil
}

func write(w io.Writer, format report.Formatter, opts *options, in pricing.JobCostInput, result pricing.CostReport) error {
	switch opts.format {
	case "text":
		_, err := io.WriteString(w, format.Text(result))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Input  pricing.JobCostInput `json:"input"`
			Report pricing.CostReport   `json:"report"`
			Label  string               `json:"label"`
		}{in, result, report.ProfitLabel(result)})
	case "xlsx":
		data, err := format.XLSX(in, result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.out, err)
		}
		_, err = fmt.Fprintf(w, "wrote %s\n", opts.out)
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, json or xlsx)", opts.format)
	}
}
