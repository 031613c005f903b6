package report

import "math"

// Severity indicates how risky a classified score is.
type Severity int

const (
	SeverityNeutral Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

// String returns a short name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	}
	return "neutral"
}

// Classification labels a single integrity score.
type Classification struct {
	Label    string
	Severity Severity
}

// Score thresholds for classification. Below the fabricated threshold the
// content is considered manipulated; between the two it is inconclusive.
const (
	fabricatedBelow = 40.0
	suspiciousBelow = 70.0
)

const labelNotAnalyzed = "N/A"

// Classify maps an integrity score to a status label and severity.
// A non-finite value or an exact zero means the modality was not analyzed.
// Classify is total: it never fails, regardless of input.
func Classify(score float64) Classification {
	if math.IsNaN(score) || math.IsInf(score, 0) || score == 0 {
		return Classification{Label: labelNotAnalyzed, Severity: SeverityNeutral}
	}
	if score < fabricatedBelow {
		return Classification{Label: "Fabricated", Severity: SeverityHigh}
	}
	if score < suspiciousBelow {
		return Classification{Label: "Suspicious", Severity: SeverityMedium}
	}
	return Classification{Label: "Authentic", Severity: SeverityLow}
}
