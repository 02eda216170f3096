package playbook

import "contract-backend/internal/classify"

// A Playbook is a per-contract-type checklist of critical clauses,
// required language and red flags. It steers prompt construction and the
// post-hoc coverage critique.
type Playbook struct {
	Key             string
	Title           string
	Summary         string
	CriticalClauses []CriticalClause
	AnchorChecks    []AnchorCheck
	RedFlags        []string
}

// CriticalClause names a clause the contract type must address. Keywords
// are evidence that the clause was covered; MustInclude keywords are
// required language whose absence fails the check even with evidence.
type CriticalClause struct {
	Name           string
	Keywords       []string
	MustInclude    []string
	Recommendation string
}

// AnchorCheck is a lighter-weight coverage check with no required
// language.
type AnchorCheck struct {
	Name     string
	Keywords []string
}

var playbooks = map[string]Playbook{
	classify.TypeNDA: {
		Key:     classify.TypeNDA,
		Title:   "Non-Disclosure Agreement",
		Summary: "Protects confidential information exchanged between parties; focus on definition scope, permitted use, duration and return obligations.",
		CriticalClauses: []CriticalClause{
			{
				Name:           "Definition of Confidential Information",
				Keywords:       []string{"confidential information", "confidential material", "proprietary information"},
				MustInclude:    []string{"confidential"},
				Recommendation: "Define confidential information precisely, with carve-outs for public and independently developed material.",
			},
			{
				Name:           "Permitted Use and Purpose",
				Keywords:       []string{"permitted use", "purpose", "solely", "use of"},
				MustInclude:    []string{"purpose"},
				Recommendation: "Limit use of disclosed material to the stated purpose.",
			},
			{
				Name:           "Term and Survival",
				Keywords:       []string{"term", "survive", "duration", "expiry", "years"},
				Recommendation: "State how long confidentiality obligations run and what survives termination.",
			},
			{
				Name:           "Return or Destruction",
				Keywords:       []string{"return", "destroy", "destruction", "deletion"},
				Recommendation: "Require return or certified destruction of materials on request or termination.",
			},
		},
		AnchorChecks: []AnchorCheck{
			{Name: "Governing law", Keywords: []string{"governing law", "governed by"}},
			{Name: "Remedies", Keywords: []string{"injunctive", "remedies", "equitable relief"}},
		},
		RedFlags: []string{
			"Perpetual confidentiality with no carve-outs",
			"One-way obligations in a mutual exchange",
			"No exclusions for independently developed information",
		},
	},
	classify.TypeDPA: {
		Key:     classify.TypeDPA,
		Title:   "Data Processing Agreement",
		Summary: "Governs processing of personal data on behalf of a controller; focus on Article 28 mandatory content, sub-processing and international transfers.",
		CriticalClauses: []CriticalClause{
			{
				Name:           "Processing Instructions",
				Keywords:       []string{"documented instructions", "instructions of the controller", "processing instructions"},
				MustInclude:    []string{"instructions"},
				Recommendation: "Bind the processor to documented controller instructions only.",
			},
			{
				Name:           "Sub-processor Controls",
				Keywords:       []string{"sub-processor", "subprocessor", "subcontractor"},
				Recommendation: "Require prior authorization and flow-down obligations for sub-processors.",
			},
			{
				Name:           "Security Measures",
				Keywords:       []string{"technical and organisational", "technical and organizational", "security measures", "encryption"},
				MustInclude:    []string{"security"},
				Recommendation: "Specify concrete technical and organizational measures.",
			},
			{
				Name:           "Breach Notification",
				Keywords:       []string{"personal data breach", "breach notification", "without undue delay"},
				Recommendation: "Set a concrete breach notification window.",
			},
			{
				Name:           "International Transfers",
				Keywords:       []string{"third country", "standard contractual clauses", "transfer mechanism"},
				Recommendation: "Name a lawful transfer mechanism for any third-country processing.",
			},
		},
		AnchorChecks: []AnchorCheck{
			{Name: "Deletion on termination", Keywords: []string{"delete", "return", "end of the provision"}},
			{Name: "Audit rights", Keywords: []string{"audit", "inspection"}},
		},
		RedFlags: []string{
			"Processor may process data for its own purposes",
			"Unlimited sub-processing without notification",
			"No breach notification deadline",
		},
	},
	classify.TypeEULA: {
		Key:     classify.TypeEULA,
		Title:   "End-User License Agreement",
		Summary: "Grants software usage rights; focus on license scope, restrictions, IP ownership and warranty disclaimers.",
		CriticalClauses: []CriticalClause{
			{
				Name:           "License Grant and Scope",
				Keywords:       []string{"license", "licence", "grant", "non-exclusive"},
				MustInclude:    []string{"grant"},
				Recommendation: "State the license scope, territory and exclusivity explicitly.",
			},
			{
				Name:           "Usage Restrictions",
				Keywords:       []string{"restrictions", "shall not", "reverse engineer", "decompile"},
				Recommendation: "Enumerate prohibited uses, including reverse engineering.",
			},
			{
				Name:           "Intellectual Property",
				Keywords:       []string{"intellectual property", "ownership", "title"},
				Recommendation: "Reserve all IP not expressly licensed.",
			},
		},
		AnchorChecks: []AnchorCheck{
			{Name: "Warranty disclaimer", Keywords: []string{"as is", "disclaim", "warranty"}},
			{Name: "Termination", Keywords: []string{"terminate", "termination"}},
		},
		RedFlags: []string{
			"Implied perpetual license",
			"No restriction on redistribution",
		},
	},
	classify.TypePrivacyPolicy: {
		Key:     classify.TypePrivacyPolicy,
		Title:   "Privacy Policy",
		Summary: "Discloses data collection and use; focus on lawful basis, data subject rights and retention.",
		CriticalClauses: []CriticalClause{
			{
				Name:           "Data Collected and Purposes",
				Keywords:       []string{"we collect", "information we collect", "purposes"},
				Recommendation: "List categories of data and the purpose for each.",
			},
			{
				Name:           "Data Subject Rights",
				Keywords:       []string{"access", "rectification", "erasure", "your rights"},
				Recommendation: "Explain how users exercise access, correction and deletion rights.",
			},
			{
				Name:           "Retention",
				Keywords:       []string{"retain", "retention period", "as long as"},
				Recommendation: "State retention periods or the criteria used to set them.",
			},
		},
		AnchorChecks: []AnchorCheck{
			{Name: "Contact point", Keywords: []string{"contact", "data protection officer"}},
		},
		RedFlags: []string{
			"Open-ended sharing with unnamed third parties",
			"No retention limits",
		},
	},
	classify.TypeRDA: {
		Key:     classify.TypeRDA,
		Title:   "Research & Development Agreement",
		Summary: "Allocates rights in jointly developed work; focus on background/foreground IP split and publication rights.",
		CriticalClauses: []CriticalClause{
			{
				Name:           "Background IP",
				Keywords:       []string{"background", "pre-existing", "prior intellectual property"},
				Recommendation: "Keep each party's background IP with its owner.",
			},
			{
				Name:           "Foreground IP",
				Keywords:       []string{"foreground", "arising", "results", "developed under"},
				MustInclude:    []string{"intellectual property"},
				Recommendation: "Allocate ownership of results before work starts.",
			},
			{
				Name:           "Publication and Confidentiality",
				Keywords:       []string{"publication", "publish", "confidential"},
				Recommendation: "Balance publication rights against confidentiality review windows.",
			},
		},
		AnchorChecks: []AnchorCheck{
			{Name: "Funding and costs", Keywords: []string{"funding", "costs", "budget"}},
		},
		RedFlags: []string{
			"Joint ownership without an exploitation regime",
		},
	},
	classify.TypeConsultancy: {
		Key:     classify.TypeConsultancy,
		Title:   "Consultancy Agreement",
		Summary: "Engages an independent contractor; focus on deliverables, IP assignment, fees and status.",
		CriticalClauses: []CriticalClause{
			{
				Name:           "Scope and Deliverables",
				Keywords:       []string{"deliverables", "scope of work", "statement of work", "services"},
				Recommendation: "Tie payment to defined deliverables and acceptance.",
			},
			{
				Name:           "IP Assignment",
				Keywords:       []string{"assign", "assignment", "work product", "intellectual property"},
				MustInclude:    []string{"assign"},
				Recommendation: "Assign work product IP to the client on creation or payment.",
			},
			{
				Name:           "Independent Contractor Status",
				Keywords:       []string{"independent contractor", "not an employee", "no employment"},
				Recommendation: "State the relationship is not employment and allocate tax duties.",
			},
		},
		AnchorChecks: []AnchorCheck{
			{Name: "Fees and invoicing", Keywords: []string{"fees", "invoice", "payment"}},
			{Name: "Termination", Keywords: []string{"terminate", "notice"}},
		},
		RedFlags: []string{
			"IP vests in the consultant",
			"Unlimited expense reimbursement",
		},
	},
	classify.TypePSA: {
		Key:     classify.TypePSA,
		Title:   "Professional Services Agreement",
		Summary: "Frames ongoing service delivery; focus on service levels, liability caps and payment terms.",
		CriticalClauses: []CriticalClause{
			{
				Name:           "Service Levels",
				Keywords:       []string{"service level", "sla", "availability", "response time"},
				Recommendation: "Define measurable service levels with remedies.",
			},
			{
				Name:           "Limitation of Liability",
				Keywords:       []string{"limitation of liability", "liability cap", "aggregate liability"},
				MustInclude:    []string{"liability"},
				Recommendation: "Cap liability at a multiple of fees and carve out data/IP breaches.",
			},
			{
				Name:           "Payment Terms",
				Keywords:       []string{"payment", "fees", "invoice", "net 30"},
				Recommendation: "Set invoicing cadence, payment window and late-payment interest.",
			},
		},
		AnchorChecks: []AnchorCheck{
			{Name: "Termination for convenience", Keywords: []string{"termination for convenience", "terminate without cause"}},
			{Name: "Insurance", Keywords: []string{"insurance", "coverage"}},
		},
		RedFlags: []string{
			"Uncapped liability",
			"Automatic renewal with long lock-in",
		},
	},
	classify.TypeGeneral: {
		Key:     classify.TypeGeneral,
		Title:   "General Commercial Contract",
		Summary: "Generic commercial terms; focus on obligations, payment, liability, termination and dispute resolution.",
		CriticalClauses: []CriticalClause{
			{
				Name:           "Obligations of the Parties",
				Keywords:       []string{"shall", "obligations", "agrees to"},
				Recommendation: "Make each party's duties explicit and measurable.",
			},
			{
				Name:           "Termination",
				Keywords:       []string{"terminate", "termination", "breach"},
				Recommendation: "Add termination rights for material breach with a cure period.",
			},
			{
				Name:           "Liability",
				Keywords:       []string{"liability", "indemnif", "damages"},
				Recommendation: "Cap liability and exclude indirect damages where acceptable.",
			},
		},
		AnchorChecks: []AnchorCheck{
			{Name: "Governing law", Keywords: []string{"governing law", "governed by"}},
			{Name: "Dispute resolution", Keywords: []string{"dispute", "arbitration", "court"}},
		},
		RedFlags: []string{
			"No termination rights",
			"Unilateral amendment rights",
		},
	},
}

// ForContractType resolves the playbook for a normalized contract type
// key, falling back to the general playbook.
func ForContractType(key string) Playbook {
	if pb, ok := playbooks[key]; ok {
		return pb
	}
	return playbooks[classify.TypeGeneral]
}
