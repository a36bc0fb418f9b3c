package validation

// Score penalties per issue.
const (
	errorPenalty   = 15
	warningPenalty = 5
)

// QualityScore folds a validation report into a 0-100 number:
// 100 - 15 per error - 5 per warning, floored at zero.
func QualityScore(report Report) int {
	score := 100 - errorPenalty*len(report.Errors) - warningPenalty*len(report.Warnings)
	if score < 0 {
		return 0
	}
	return score
}
