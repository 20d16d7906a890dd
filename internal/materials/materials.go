package materials

import "strings"

// Other is the selection that switches the material name to free text.
const Other = "Other (Manual Input)"

// Names lists the selectable materials in display order.
var Names = []string{
	"PLA",
	"PETG",
	"ABS",
	"ASA",
	"TPU (Flexible)",
	"PC (Polycarbonate)",
	"Nylon",
	"PVA (Support)",
	Other,
}

// Known reports whether name is one of the selectable materials.
func Known(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Resolve turns a form selection into the material name used for a job.
// Unknown selections fall back to fallback. Selecting Other yields the trimmed
// manual name, which may be empty.
func Resolve(selected, manual, fallback string) string {
	switch {
	case selected == Other:
		return strings.TrimSpace(manual)
	case Known(selected):
		return selected
	default:
		return fallback
	}
}

// Selection splits a material name back into the select value and the manual
// text field, so a stored input can be redisplayed in the form.
func Selection(name string) (selected, manual string) {
	if Known(name) && name != Other {
		return name, ""
	}
	return Other, name
}
