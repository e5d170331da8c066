package wizard

import (
	"slices"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

// ToggleModule adds the selection if absent and removes it if present
// (symmetric difference on the composite name+tier key). Selecting the same
// module at a second tier accumulates rather than replacing; the review step
// surfaces such drafts for the operator to resolve.
func (w *Wizard) ToggleModule(sel models.ModuleSelection) {
	for i, m := range w.Form.Modules {
		if m == sel {
			w.Form.Modules = append(w.Form.Modules[:i], w.Form.Modules[i+1:]...)
			w.record("deselect_module:%s", sel.Token())
			return
		}
	}
	w.Form.Modules = append(w.Form.Modules, sel)
	w.record("select_module:%s", sel.Token())
}

// ModuleSelected reports whether the exact name+tier selection is present.
func (w *Wizard) ModuleSelected(sel models.ModuleSelection) bool {
	return slices.Contains(w.Form.Modules, sel)
}

// DualTierModules returns the names of modules currently selected at more
// than one tier.
func (w *Wizard) DualTierModules() []string {
	counts := make(map[string]int)
	for _, m := range w.Form.Modules {
		counts[m.Name]++
	}
	var names []string
	for _, m := range w.Form.Modules {
		if counts[m.Name] > 1 && !slices.Contains(names, m.Name) {
			names = append(names, m.Name)
		}
	}
	return names
}

// TogglePlatform flips one of the named platform flags.
func (w *Wizard) TogglePlatform(name string) bool {
	switch name {
	case "teacherApp":
		w.Form.Platforms.TeacherApp = !w.Form.Platforms.TeacherApp
	case "studentApp":
		w.Form.Platforms.StudentApp = !w.Form.Platforms.StudentApp
	default:
		return false
	}
	w.record("toggle_platform:%s", name)
	return true
}

// ToggleOffice adds or removes a desktop office by name (set semantics).
func (w *Wizard) ToggleOffice(name string) {
	offices := w.Form.Platforms.DesktopOffices
	if i := slices.Index(offices, name); i >= 0 {
		w.Form.Platforms.DesktopOffices = append(offices[:i], offices[i+1:]...)
		w.record("remove_office:%s", name)
		return
	}
	w.Form.Platforms.DesktopOffices = append(offices, name)
	w.record("add_office:%s", name)
}
