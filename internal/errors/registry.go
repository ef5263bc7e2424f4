package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E100-E199)
	// ============================================

	"E101": {
		Category: CategoryRuntime,
		Message:  "Unsupported element type",
		Detail:   "H accepts a host tag name (string) or a component factory (func() vdom.Component).",
	},
	"E102": {
		Category: CategoryRuntime,
		Message:  "Unsupported child",
		Detail:   "Children must be nil, strings, numbers, *vdom.VNode values, or slices of those.",
	},
	"E103": {
		Category: CategoryRuntime,
		Message:  "Component rendered nothing",
		Detail:   "Render must return a single element or text node.",
	},
	"E104": {
		Category: CategoryRuntime,
		Message:  "Component does not embed vdom.Base",
		Detail:   "Components constructed through H must embed vdom.Base so the renderer can track their state and range.",
	},

	// ============================================
	// Host Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryHost,
		Message:  "Nothing to mount",
		Detail:   "Mount was called with a nil root node.",
	},
	"E202": {
		Category: CategoryHost,
		Message:  "Mount container missing",
		Detail:   "Mount was called with a nil host container.",
	},
	"E203": {
		Category: CategoryHost,
		Message:  "Host document missing",
		Detail:   "Mount needs a host document to create nodes and ranges.",
	},

	// ============================================
	// Config Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
		Detail:   "The configuration file exists but could not be read.",
	},
	"E302": {
		Category: CategoryConfig,
		Message:  "Invalid config syntax",
		Detail:   "The configuration file could not be decoded.",
	},
	"E303": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range.",
	},

	// ============================================
	// CLI Errors (E400-E499)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		Detail:   "The requested demo application does not exist.",
	},
	"E402": {
		Category: CategoryCLI,
		Message:  "Inspector failed",
		Detail:   "The inspector HTTP server stopped with an error.",
	},
	"E403": {
		Category: CategoryCLI,
		Message:  "Invalid click target",
		Detail:   "Click targets are written tag:index, for example button:0.",
	},
	"E404": {
		Category: CategoryCLI,
		Message:  "Event dispatch failed",
		Detail:   "The target element does not exist or has no listener for the event.",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
