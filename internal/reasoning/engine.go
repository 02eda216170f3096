package reasoning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contract-backend/internal/classify"
	"contract-backend/internal/llm"
	"contract-backend/internal/playbook"
	"contract-backend/internal/report"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/telemetry"
)

// Input is the per-request context for one analysis run.
type Input struct {
	ReviewType      string
	ContractContent string
	FileName        string
	DocumentFormat  string
	Perspective     string
	Classification  classify.Classification
	ClauseDigest    string
	Model           string
	ModelCategory   string
}

// Engine drives the two-stage analysis protocol against an LLM provider.
// Stage 1 produces the core report with one compact-mode retry under
// output-token pressure; stage 2 adds enhancement sections best-effort.
type Engine struct {
	provider llm.Provider

	stage1MaxTokens int
	stage2MaxTokens int
	critiquePolicy  playbook.CritiquePolicy
}

func New(provider llm.Provider) *Engine {
	return &Engine{
		provider:        provider,
		stage1MaxTokens: 4096,
		stage2MaxTokens: 2048,
		critiquePolicy:  playbook.DefaultCritiquePolicy(),
	}
}

// Analyze produces a validated v3 report or fails. Any error it returns is
// the caller's signal to switch to the deterministic fallback path.
func (e *Engine) Analyze(ctx context.Context, in Input) (*report.AnalysisReport, error) {
	pb := playbook.ForContractType(in.Classification.ContractType)

	core, usage, err := e.runStage1(ctx, in, pb)
	if err != nil {
		return nil, err
	}

	coverage, notes := playbook.Critique(pb, core, e.critiquePolicy)
	core.Metadata.PlaybookCoverage = &coverage
	core.Metadata.CritiqueNotes = append(core.Metadata.CritiqueNotes, notes...)

	enh, enhUsage, enhErr := e.runStage2(ctx, in, core)
	if enhErr != nil {
		telemetry.Info("enhancement stage degraded to synthesis", map[string]any{
			"error":         enhErr.Error(),
			"contract_type": in.Classification.ContractType,
		})
		enh = synthesizeEnhancements(core)
		core.Metadata.CritiqueNotes = append(core.Metadata.CritiqueNotes,
			"Enhancement sections synthesized from the core analysis after a model failure.")
	} else {
		usage.InputTokens += enhUsage.InputTokens
		usage.OutputTokens += enhUsage.OutputTokens
		usage.TotalTokens += enhUsage.TotalTokens
		core.Metadata.CritiqueNotes = append(core.Metadata.CritiqueNotes,
			"Enhancement sections generated by the model.")
	}
	mergeEnhancements(core, enh)
	report.BindEditsToExtractions(core)

	core.Metadata.Model = in.Model
	core.Metadata.ModelCategory = report.CoerceModelCategory(in.ModelCategory)
	core.Metadata.PlaybookKey = pb.Key
	core.Metadata.Classification = report.Classification{
		ContractType: in.Classification.ContractType,
		Confidence:   in.Classification.Confidence,
	}
	core.Metadata.Confidence = in.Classification.Confidence
	core.Metadata.TokenUsage = report.TokenUsage{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
	}
	core.Metadata.FallbackUsed = false
	core.Metadata.FallbackReason = ""
	if core.GeneratedAt.IsZero() {
		core.GeneratedAt = time.Now().UTC()
	}
	return core, nil
}

// runStage1 walks a fixed attempt list. The compact attempt runs only when
// the previous attempt failed specifically for lack of output tokens.
func (e *Engine) runStage1(ctx context.Context, in Input, pb playbook.Playbook) (*report.AnalysisReport, llm.Usage, error) {
	attempts := []bool{false, true}

	var usage llm.Usage
	for i, compact := range attempts {
		metrics.IncReasoningAttempt()
		resp, err := e.provider.Complete(ctx, llm.Request{
			Model:           in.Model,
			Messages:        buildStage1Messages(in, pb, compact),
			SchemaName:      stage1SchemaName,
			Schema:          stage1Schema,
			MaxOutputTokens: e.stage1MaxTokens,
		})
		if err != nil {
			var incomplete *llm.IncompleteError
			retryable := errors.As(err, &incomplete) &&
				incomplete.Reason == llm.ReasonMaxOutputTokens &&
				i < len(attempts)-1
			if retryable {
				telemetry.Info("core analysis retrying in compact mode", map[string]any{
					"attempt": i + 1,
					"reason":  incomplete.Reason,
				})
				continue
			}
			return nil, usage, err
		}
		usage.InputTokens += resp.Usage.InputTokens
		usage.OutputTokens += resp.Usage.OutputTokens
		usage.TotalTokens += resp.Usage.TotalTokens

		repaired, err := report.RepairRawReport(resp.Content)
		if err != nil {
			return nil, usage, err
		}
		validated, err := report.ValidateAnalysisReport(repaired)
		if err != nil {
			return nil, usage, err
		}
		return validated, usage, nil
	}
	return nil, usage, fmt.Errorf("core analysis attempts exhausted")
}

func (e *Engine) runStage2(ctx context.Context, in Input, core *report.AnalysisReport) (*enhancements, llm.Usage, error) {
	metrics.IncReasoningAttempt()
	resp, err := e.provider.Complete(ctx, llm.Request{
		Model:           in.Model,
		Messages:        buildStage2Messages(in, core),
		SchemaName:      stage2SchemaName,
		Schema:          stage2Schema,
		MaxOutputTokens: e.stage2MaxTokens,
	})
	if err != nil {
		return nil, llm.Usage{}, err
	}
	enh, err := parseEnhancements(resp.Content)
	if err != nil {
		return nil, resp.Usage, err
	}
	return enh, resp.Usage, nil
}
