// Package catalog holds the fixed lookup tables consumed by report creation
// and delegation flows: service types, the coordinator roster, checklist task
// templates and per-service-type required document lists. These are external
// configuration data, not business logic; they constrain valid service_type
// values and the document checklists shown to TU users.
package catalog

// ServiceTypes is the fixed catalog of report service types.
var ServiceTypes = []string{
	"Administrative Services",
	"Financial Services",
	"Human Resources",
	"IT Services",
	"Legal Services",
	"Public Relations",
	"Procurement",
	"Security Services",
}

// Coordinators is the roster of coordinators a TU user may forward to.
var Coordinators = []string{
	"Suwarti, S.h",
	"Achamd Evianto",
	"Adi Sulaksono",
	"Yosi Yosandi",
}

// TodoTemplates are the task descriptions coordinators pick from when
// building assignment checklists.
var TodoTemplates = []string{
	"Review documentation",
	"Verify compliance",
	"Prepare summary report",
	"Conduct field inspection",
	"Update database records",
	"Schedule meetings",
	"Prepare presentations",
	"Coordinate with stakeholders",
	"Quality assurance check",
	"Final approval process",
}

// DocumentRequirements maps each service type to the documents that must be
// attached to a report of that type.
var DocumentRequirements = map[string][]string{
	"Administrative Services": {
		"Administrative Form",
		"Authorization Letter",
		"Identity Verification",
	},
	"Financial Services": {
		"Financial Statement",
		"Budget Authorization",
		"Audit Report",
		"Receipt Documentation",
	},
	"Human Resources": {
		"Personnel File",
		"Training Certificate",
		"Performance Evaluation",
	},
	"IT Services": {
		"Technical Specification",
		"Security Clearance",
		"System Documentation",
	},
	"Legal Services": {
		"Legal Brief",
		"Contract Documentation",
		"Compliance Certificate",
	},
	"Public Relations": {
		"Press Release",
		"Media Authorization",
		"Public Statement",
	},
	"Procurement": {
		"Vendor Documentation",
		"Price Quotation",
		"Quality Certificate",
		"Delivery Schedule",
	},
	"Security Services": {
		"Security Clearance",
		"Background Check",
		"Access Authorization",
	},
}

// ValidServiceType reports whether s is one of the catalog service types.
func ValidServiceType(s string) bool {
	for _, st := range ServiceTypes {
		if st == s {
			return true
		}
	}
	return false
}

// ValidCoordinator reports whether name is on the coordinator roster.
func ValidCoordinator(name string) bool {
	for _, c := range Coordinators {
		if c == name {
			return true
		}
	}
	return false
}

// RequiredDocuments returns the required document names for a service type,
// or nil when the service type is unknown.
func RequiredDocuments(serviceType string) []string {
	return DocumentRequirements[serviceType]
}
