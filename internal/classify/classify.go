package classify

import (
	"regexp"
	"strings"
)

// Contract type keys. TypeGeneral is the catch-all when no category scores.
const (
	TypeNDA           = "nda"
	TypeDPA           = "dpa"
	TypeEULA          = "eula"
	TypePrivacyPolicy = "privacy_policy"
	TypeRDA           = "rda"
	TypeConsultancy   = "consultancy"
	TypePSA           = "psa"
	TypeGeneral       = "general"
)

const (
	classifyWindow  = 4000
	filenameBonus   = 1.5
	minWinningScore = 1.0
)

// Classification is the classifier verdict handed to prompt construction.
type Classification struct {
	ContractType string  `json:"contractType"`
	Confidence   float64 `json:"confidence"`
}

type category struct {
	key      string
	patterns []*regexp.Regexp
}

// Declaration order breaks score ties, so more specific categories sit
// first.
var categories = []category{
	{key: TypeNDA, patterns: compileAll(
		`(?i)non[- ]?disclosure`,
		`(?i)confidentiality agreement`,
		`(?i)disclosing party`,
		`(?i)receiving party`,
		`(?i)confidential information`,
	)},
	{key: TypeDPA, patterns: compileAll(
		`(?i)data processing agreement`,
		`(?i)data (controller|processor)`,
		`(?i)sub-?processor`,
		`(?i)personal data`,
		`(?i)gdpr|general data protection`,
	)},
	{key: TypeEULA, patterns: compileAll(
		`(?i)end[- ]user licen[cs]e`,
		`(?i)software licen[cs]e`,
		`(?i)licensor`,
		`(?i)licensee`,
	)},
	{key: TypePrivacyPolicy, patterns: compileAll(
		`(?i)privacy policy`,
		`(?i)cookies?\b`,
		`(?i)we collect`,
		`(?i)your personal information`,
	)},
	{key: TypeRDA, patterns: compileAll(
		`(?i)research and development`,
		`(?i)r&d agreement`,
		`(?i)joint development`,
		`(?i)intellectual property arising`,
	)},
	{key: TypeConsultancy, patterns: compileAll(
		`(?i)consultan(t|cy)`,
		`(?i)independent contractor`,
		`(?i)statement of work`,
		`(?i)deliverables`,
	)},
	{key: TypePSA, patterns: compileAll(
		`(?i)professional services`,
		`(?i)services agreement`,
		`(?i)service levels?\b`,
		`(?i)master services`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// DetectContractType scores the first ~4000 characters of content against
// each category's pattern list (+1 per match) with a filename bonus (+1.5
// when the name contains the category key). Highest score wins; ties go to
// declaration order; anything under 1 is general. Deterministic for fixed
// inputs, and intentionally crude: it seeds prompts, it is not a legal
// determination.
func DetectContractType(content, fileName string) Classification {
	window := content
	if len(window) > classifyWindow {
		window = window[:classifyWindow]
	}
	loweredName := strings.ToLower(fileName)

	bestKey := TypeGeneral
	bestScore := 0.0
	for _, cat := range categories {
		score := 0.0
		for _, p := range cat.patterns {
			if p.MatchString(window) {
				score++
			}
		}
		if loweredName != "" && strings.Contains(loweredName, cat.key) {
			score += filenameBonus
		}
		if score > bestScore {
			bestScore = score
			bestKey = cat.key
		}
	}
	if bestScore < minWinningScore {
		return Classification{ContractType: TypeGeneral, Confidence: 0.3}
	}
	return Classification{ContractType: bestKey, Confidence: confidenceFor(bestScore)}
}

// confidenceFor maps a raw pattern score into a bounded confidence value.
func confidenceFor(score float64) float64 {
	conf := 0.5 + score*0.1
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

// NormalizeKey lowercases and underscores a requested contract type so
// caller-supplied values line up with playbook keys.
func NormalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	switch key {
	case "non_disclosure_agreement":
		return TypeNDA
	case "data_processing_agreement":
		return TypeDPA
	case "end_user_license_agreement":
		return TypeEULA
	case "privacy_policy", "ppc":
		return TypePrivacyPolicy
	case "research_development_agreement", "rda":
		return TypeRDA
	case "consultancy_agreement", "ca":
		return TypeConsultancy
	case "professional_services_agreement", "psa":
		return TypePSA
	case "":
		return TypeGeneral
	}
	return key
}
