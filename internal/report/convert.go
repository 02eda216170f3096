package report

// ConvertV2ReportToV3 upgrades a v2 report in place: the v3-only
// collections default to empty and draftMetadata stays unset. Nothing is
// dropped, nothing is inferred.
func ConvertV2ReportToV3(r *AnalysisReport) *AnalysisReport {
	out := *r
	out.Version = VersionV3
	out.PlaybookInsights = []PlaybookInsight{}
	out.ClauseExtractions = []ClauseExtraction{}
	out.SimilarityAnalysis = []SimilarityFinding{}
	out.DeviationInsights = []DeviationInsight{}
	out.ActionItems = []ActionItem{}
	out.DraftMetadata = nil
	ensureCollections(&out)
	return &out
}
