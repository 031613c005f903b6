// Package report defines the canonical analysis report model along with the
// normalization and classification logic that turns raw backend payloads
// into stable, display-ready data.
package report

import (
	"time"
)

// Modality is one of the analyzed content channels.
type Modality string

const (
	ModalityVideo Modality = "video"
	ModalityAudio Modality = "audio"
	ModalityText  Modality = "text"
)

// AnalysisReport is the canonical, normalized result of one analysis.
// It is immutable once created by Normalize; downstream components
// (chat, history, export) only read from it.
type AnalysisReport struct {
	// ID is assigned by the server on first successful submission.
	// Empty until then.
	ID string `json:"id,omitempty"`

	FileName string `json:"file_name"`
	// FileSize is known only client-side; the server does not echo it.
	FileSize  int64     `json:"file_size"`
	Timestamp time.Time `json:"timestamp"`

	// Scores are in [0,100]. A value of exactly 0 means the modality was
	// not analyzed, not "0% integrity". ActiveModalities derives from that.
	FusionScore float64 `json:"fusion_score"`
	VideoScore  float64 `json:"video_score"`
	AudioScore  float64 `json:"audio_score"`
	TextScore   float64 `json:"text_score"`

	// Explanation is free text from the remote assistant. It may contain
	// markup and must be treated as untrusted display content.
	Explanation string `json:"explanation"`

	// FullReport retains the raw payload verbatim so later chat turns can
	// carry it as conversational context.
	FullReport map[string]any `json:"full_report,omitempty"`
}

// Score returns the score for a single modality.
func (r *AnalysisReport) Score(m Modality) float64 {
	switch m {
	case ModalityVideo:
		return r.VideoScore
	case ModalityAudio:
		return r.AudioScore
	case ModalityText:
		return r.TextScore
	}
	return 0
}

// ActiveModalities returns the modalities that were actually evaluated.
// A modality is active iff its score is strictly greater than zero.
func (r *AnalysisReport) ActiveModalities() []Modality {
	var active []Modality
	for _, m := range []Modality{ModalityVideo, ModalityAudio, ModalityText} {
		if r.Score(m) > 0 {
			active = append(active, m)
		}
	}
	return active
}
