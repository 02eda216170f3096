package review

import (
	"strings"

	"contract-backend/internal/classify"
)

// Solution describes a product-level review preset: the contract type it
// targets and the stakeholder perspective the analysis is framed from.
type Solution struct {
	Key          string
	Title        string
	ContractType string
	Perspective  string
}

var solutions = map[string]Solution{
	"non_disclosure_agreement": {
		Key:          "non_disclosure_agreement",
		Title:        "Non-Disclosure Agreement Review",
		ContractType: classify.TypeNDA,
		Perspective:  "disclosing-party",
	},
	"data_processing_agreement": {
		Key:          "data_processing_agreement",
		Title:        "Data Processing Agreement Review",
		ContractType: classify.TypeDPA,
		Perspective:  "data-controller",
	},
	"software_license": {
		Key:          "software_license",
		Title:        "Software License Review",
		ContractType: classify.TypeEULA,
		Perspective:  "buyer",
	},
	"consultancy_agreement": {
		Key:          "consultancy_agreement",
		Title:        "Consultancy Agreement Review",
		ContractType: classify.TypeConsultancy,
		Perspective:  "seller",
	},
	"service_agreement": {
		Key:          "service_agreement",
		Title:        "Service Agreement Review",
		ContractType: classify.TypePSA,
		Perspective:  "buyer",
	},
}

// SolutionFor resolves a selected solution key, tolerating hyphen/case
// variants. The boolean reports whether the key matched a known solution.
func SolutionFor(key string) (Solution, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "-", "_")
	k = strings.ReplaceAll(k, " ", "_")
	sol, ok := solutions[k]
	return sol, ok
}
