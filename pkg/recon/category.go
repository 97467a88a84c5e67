package recon

import (
	"strconv"
	"strings"
)

// Canonical category labels shared across the fault sources.
const (
	CategoryRegulatory     = "Regulatory-mandated exclusion"
	CategoryRemodeling     = "Remodeling"
	CategoryVandalism      = "Vandalism"
	CategoryCommunications = "Communications"

	CategoryDispenser     = "Dispenser not paying"
	CategoryReceiptPrint  = "Receipt printer"
	CategoryDeposit       = "Deposit module"
	CategoryCashDrawers   = "Cash drawers unavailable"
	CategoryAppDown       = "Application out of service"
	CategoryCardReader    = "Card reader"
	CategoryOutOfPaper    = "Out of receipt paper"
	CategorySupervisor    = "Supervisor mode"
	CategoryCashOut       = "Cash out"
	CategoryHardware      = "Hardware failure / technical service"
)

// categoryRule maps a trigger substring to a canonical category label. Rules
// are evaluated in declaration order and the first match wins; descriptions
// can contain several trigger substrings, so ordering is significant.
type categoryRule struct {
	trigger string
	label   string
}

// codeCategories maps regulator exclusion codes to categories. The code is
// normalized to an integer-like string before lookup.
var codeCategories = map[string]string{
	"2": CategoryRegulatory,
	"6": CategoryRegulatory,
	"7": CategoryRegulatory,
	"5": CategoryRemodeling,
	"3": CategoryVandalism,
}

// summaryRules classify the generic fault log's free-text summaries.
var summaryRules = []categoryRule{
	{"dispenser failure", CategoryDispenser},
	{"receipt printer", CategoryReceiptPrint},
	{"deposit module", CategoryDeposit},
	{"cash drawer", CategoryCashDrawers},
	{"host down", CategoryAppDown},
	{"communication failure", CategoryCommunications},
	{"card reader", CategoryCardReader},
	{"out of paper", CategoryOutOfPaper},
	{"supervisor mode", CategorySupervisor},
	{"cash out", CategoryCashOut},
}

// vendorRules classify the vendor fault log's distinct vocabulary.
var vendorRules = []categoryRule{
	{"configuration failure", CategoryHardware},
	{"hardware", CategoryHardware},
	{"screen failure", CategoryHardware},
	{"card reader", CategoryCardReader},
	{"printer", CategoryReceiptPrint},
	{"dispenser", CategoryDispenser},
	{"deposit module", CategoryDeposit},
}

// CategoryByCode classifies an exclusion record by its numeric code. Values
// like "5", "5.0" and " 5 " all normalize to code 5. Unmapped codes fall back
// to Communications.
func CategoryByCode(code string) string {
	c := strings.TrimSpace(code)
	if f, err := strconv.ParseFloat(c, 64); err == nil {
		c = strconv.Itoa(int(f))
	}
	if label, ok := codeCategories[c]; ok {
		return label
	}
	return CategoryCommunications
}

// CategoryBySummary classifies a generic fault log summary. Defaults to
// Communications when no trigger matches.
func CategoryBySummary(summary string) string {
	return classify(summary, summaryRules, CategoryCommunications)
}

// CategoryByVendorFault classifies a vendor fault description. Defaults to
// hardware failure / technical service when no trigger matches.
func CategoryByVendorFault(fault string) string {
	return classify(fault, vendorRules, CategoryHardware)
}

func classify(text string, rules []categoryRule, fallback string) string {
	t := strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(t, r.trigger) {
			return r.label
		}
	}
	return fallback
}
