package reasoning

import (
	"fmt"
	"strings"

	"contract-backend/internal/fallback"
	"contract-backend/internal/llm"
	"contract-backend/internal/playbook"
	"contract-backend/internal/report"
)

// Contract excerpts are budgeted in characters. Truncation keeps most of
// the head and a slice of the tail so both recitals and boilerplate
// endings stay visible to the model.
const (
	contractExcerptBudget = 12000
	headShare             = 0.7
	tailShare             = 0.2

	truncationMarker = "\n\n[TRUNCATED]\n\n"
)

func truncateContract(content string, budget int) string {
	if budget <= 0 {
		budget = contractExcerptBudget
	}
	if len(content) <= budget {
		return content
	}
	head := int(float64(budget) * headShare)
	tail := int(float64(budget) * tailShare)
	return content[:head] + truncationMarker + content[len(content)-tail:]
}

func reviewFraming(reviewType string) string {
	switch fallback.NormalizeReviewType(reviewType) {
	case fallback.ReviewRisk:
		return "Focus on risk exposure: identify one-sided obligations, uncapped liabilities and cascading consequences."
	case fallback.ReviewCompliance:
		return "Focus on compliance: check the contract against the critical clause checklist and flag missing required language."
	case fallback.ReviewPerspective:
		return "Analyze the contract from the standpoint of the selected stakeholder perspective, weighing concerns against advantages."
	default:
		return "Produce an executive summary: key commercial terms, notable obligations and the most material issues."
	}
}

func buildStage1Messages(in Input, pb playbook.Playbook, compact bool) []llm.Message {
	var sys strings.Builder
	sys.WriteString("You are a senior contract lawyer reviewing a ")
	sys.WriteString(pb.Title)
	sys.WriteString(". ")
	sys.WriteString(reviewFraming(in.ReviewType))
	sys.WriteString("\nPlaybook guidance: ")
	sys.WriteString(pb.Summary)
	sys.WriteString("\nRespond with a single JSON object conforming to the provided schema. Cite clause ids consistently across findings, issues and edits.")
	if compact {
		sys.WriteString("\nCOMPACT MODE: return at most one entry per array and omit every optional field.")
	}

	var usr strings.Builder
	fmt.Fprintf(&usr, "Review type: %s\n", fallback.NormalizeReviewType(in.ReviewType))
	if in.FileName != "" {
		fmt.Fprintf(&usr, "File name: %s\n", in.FileName)
	}
	if in.DocumentFormat != "" {
		fmt.Fprintf(&usr, "Document format: %s\n", in.DocumentFormat)
	}
	fmt.Fprintf(&usr, "Detected contract type: %s (confidence %.2f)\n", in.Classification.ContractType, in.Classification.Confidence)
	if in.Perspective != "" {
		fmt.Fprintf(&usr, "Selected perspective: %s\n", in.Perspective)
	}
	if len(pb.CriticalClauses) > 0 {
		usr.WriteString("\nCritical clauses to check:\n")
		for _, cc := range pb.CriticalClauses {
			fmt.Fprintf(&usr, "- %s: %s\n", cc.Name, cc.Recommendation)
		}
	}
	if len(pb.RedFlags) > 0 {
		usr.WriteString("\nRed flags for this contract type:\n")
		for _, rf := range pb.RedFlags {
			fmt.Fprintf(&usr, "- %s\n", rf)
		}
	}
	if in.ClauseDigest != "" {
		usr.WriteString("\nClause digest from a prior pass over this document:\n")
		usr.WriteString(in.ClauseDigest)
		usr.WriteString("\n")
	}
	usr.WriteString("\nContract text:\n")
	usr.WriteString(truncateContract(in.ContractContent, contractExcerptBudget))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: sys.String()},
		{Role: llm.RoleUser, Content: usr.String()},
	}
}

func buildStage2Messages(in Input, core *report.AnalysisReport) []llm.Message {
	sys := "You are a senior contract lawyer producing supplementary analysis sections for a completed contract review. " +
		"Respond with a single JSON object conforming to the provided schema."

	var usr strings.Builder
	fmt.Fprintf(&usr, "Contract: %s (type %s)\n", core.ContractSummary.ContractName, in.Classification.ContractType)
	usr.WriteString("\nTop issues from the core review:\n")
	for i, iss := range core.IssuesToAddress {
		if i >= 2 {
			break
		}
		fmt.Fprintf(&usr, "- [%s] %s: %s\n", iss.Severity, iss.Title, iss.Recommendation)
	}
	usr.WriteString("\nTop clause findings:\n")
	for i, f := range core.ClauseFindings {
		if i >= 2 {
			break
		}
		fmt.Fprintf(&usr, "- %s (%s): %s\n", f.Title, f.RiskLevel, f.Summary)
	}
	usr.WriteString("\nContract snippet:\n")
	usr.WriteString(truncateContract(in.ContractContent, 2000))
	usr.WriteString("\n\nGenerate playbook insights, clause extractions, similarity analysis, deviation insights and action items grounded in the above.")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: sys},
		{Role: llm.RoleUser, Content: usr.String()},
	}
}
