package components

// Variant selects the color scheme of a toast.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantInfo    Variant = "info"
	VariantWarning Variant = "warning"
	VariantError   Variant = "error"
)

const toastClass = "fixed bottom-4 right-4 rounded-md border border-slate-300 bg-white px-4 py-3 text-sm text-slate-900 shadow"

var variantClasses = map[Variant]string{
	VariantSuccess: "border-emerald-300 bg-emerald-50 text-emerald-900",
	VariantInfo:    "border-sky-300 bg-sky-50 text-sky-900",
	VariantWarning: "border-amber-300 bg-amber-50 text-amber-900",
	VariantError:   "border-red-300 bg-red-50 text-red-900",
}

func (v Variant) classes() string {
	if cls, ok := variantClasses[v]; ok {
		return cls
	}
	return variantClasses[VariantSuccess]
}

// ParseVariant maps a form value to a Variant. Unknown values are success.
func ParseVariant(s string) Variant {
	switch s {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	}
	return VariantSuccess
}

// ToastProps configures Toast.
type ToastProps struct {
	Title       string
	Description string
	Variant     Variant
	Dismissible bool
}
