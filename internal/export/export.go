// Package export maps a canonical report into the flat field set an
// external document generator needs, and writes portable artifacts on
// demand. Export never fails due to partial data: every absent field gets a
// safe default.
package export

import (
	"time"

	"github.com/Mdsinan09/hcis-project/internal/report"
	"github.com/Mdsinan09/hcis-project/internal/sanitize"
)

// Fields is the flat key set handed to a document generator. Scores travel
// with their classified labels so the generator needs no scoring logic.
type Fields struct {
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
	Timestamp string `json:"timestamp"`

	FusionScore float64 `json:"fusion_score"`
	FusionLabel string  `json:"fusion_label"`
	VideoScore  float64 `json:"video_score"`
	VideoLabel  string  `json:"video_label"`
	AudioScore  float64 `json:"audio_score"`
	AudioLabel  string  `json:"audio_label"`
	TextScore   float64 `json:"text_score"`
	TextLabel   string  `json:"text_label"`

	// Explanation is sanitized plain text; the untrusted markup from the
	// backend never reaches the document surface.
	Explanation string `json:"explanation"`
}

// Defaults substituted for absent report data.
const (
	defaultFileName    = "unknown file"
	defaultExplanation = "No explanation available."
)

// FieldsFor maps a report into the flat export field set. It is a pure
// function: calling it twice on the same report yields identical output.
// A nil report produces a fully defaulted field set.
func FieldsFor(rep *report.AnalysisReport) Fields {
	if rep == nil {
		rep = &report.AnalysisReport{}
	}

	f := Fields{
		FileName:    rep.FileName,
		FileSize:    rep.FileSize,
		FusionScore: rep.FusionScore,
		FusionLabel: report.Classify(rep.FusionScore).Label,
		VideoScore:  rep.VideoScore,
		VideoLabel:  report.Classify(rep.VideoScore).Label,
		AudioScore:  rep.AudioScore,
		AudioLabel:  report.Classify(rep.AudioScore).Label,
		TextScore:   rep.TextScore,
		TextLabel:   report.Classify(rep.TextScore).Label,
		Explanation: sanitize.Strip(rep.Explanation),
	}

	if f.FileName == "" {
		f.FileName = defaultFileName
	}
	if f.Explanation == "" {
		f.Explanation = defaultExplanation
	}
	if !rep.Timestamp.IsZero() {
		f.Timestamp = rep.Timestamp.Format(time.RFC3339)
	}
	return f
}
