package pipeline

import "github.com/c360studio/pslspec/metrics"

// QualityLevel buckets the aggregate quality score.
type QualityLevel string

const (
	QualityExcellent QualityLevel = "EXCELLENT"
	QualityGood      QualityLevel = "GOOD"
	QualityFair      QualityLevel = "FAIR"
	QualityPoor      QualityLevel = "POOR"
)

// Metric weights for the aggregate score. Rollback discipline weighs
// heaviest; the 3C self-assessment least.
const (
	weightCSR      = 0.3
	weightHRR      = 0.4
	weightCoverage = 0.2
	weightThreeC   = 0.1
)

// Quality aggregates the metrics report into a single weighted score in
// [0,1]. A metric that was not computed contributes zero, so a document
// without a judgment vector caps below EXCELLENT rather than being guessed
// in either direction.
func Quality(report metrics.Report) (float64, QualityLevel) {
	score := weightedScore(report.CSR, weightCSR) +
		weightedScore(report.HRR, weightHRR) +
		weightedScore(report.Coverage, weightCoverage) +
		weightedScore(report.ThreeCScore, weightThreeC)
	return score, levelFor(score)
}

func weightedScore(v metrics.Value, weight float64) float64 {
	if !v.Computed {
		return 0
	}
	return v.Score * weight
}

func levelFor(score float64) QualityLevel {
	switch {
	case score >= 0.9:
		return QualityExcellent
	case score >= 0.7:
		return QualityGood
	case score >= 0.5:
		return QualityFair
	default:
		return QualityPoor
	}
}
