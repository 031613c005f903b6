package report

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FileMeta carries client-side knowledge about the submitted file.
// The server is not guaranteed to echo either field back.
type FileMeta struct {
	Name string
	Size int64
}

// FallbackExplanation is substituted when the backend omits the
// chatbot explanation.
const FallbackExplanation = "No explanation was provided for this analysis."

// ValidationError indicates a malformed success response from the backend,
// i.e. one that lacks the minimal score container entirely. All lesser
// defects degrade to defaults instead.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid analysis response: %s", e.Reason)
}

// scoreKeys are the backend's snake_case score field names.
var scoreKeys = []string{"fusion_score", "video_score", "audio_score", "text_score"}

// Normalize maps a raw backend payload into a canonical AnalysisReport.
//
// The payload may be the /analyze response (scores nested under "results")
// or a /history entry (scores at the top level). Missing or invalid score
// fields default to 0; a missing explanation gets FallbackExplanation; the
// file name prefers the server-echoed value. Normalize fails only when no
// score container can be located at all.
func Normalize(raw map[string]any, meta FileMeta) (*AnalysisReport, error) {
	if raw == nil {
		return nil, &ValidationError{Reason: "empty payload"}
	}

	container, ok := findScoreContainer(raw)
	if !ok {
		return nil, &ValidationError{Reason: "no results container in payload"}
	}

	rep := &AnalysisReport{
		ID:          coerceString(firstPresent(raw, container, "id")),
		FileSize:    meta.Size,
		FusionScore: coerceScore(container["fusion_score"]),
		VideoScore:  coerceScore(container["video_score"]),
		AudioScore:  coerceScore(container["audio_score"]),
		TextScore:   coerceScore(container["text_score"]),
		FullReport:  raw,
	}

	rep.FileName = coerceString(container["fileName"])
	if rep.FileName == "" {
		rep.FileName = meta.Name
	}

	rep.Explanation = coerceString(container["chatbot_explanation"])
	if rep.Explanation == "" {
		rep.Explanation = FallbackExplanation
	}

	rep.Timestamp = coerceTime(firstPresent(raw, container, "timestamp"))
	if rep.Timestamp.IsZero() {
		rep.Timestamp = time.Now()
	}

	return rep, nil
}

// findScoreContainer locates the map holding the score fields. The /analyze
// response nests it under "results"; history entries are already flat.
func findScoreContainer(raw map[string]any) (map[string]any, bool) {
	if results, ok := raw["results"].(map[string]any); ok {
		return results, true
	}
	for _, key := range scoreKeys {
		if _, ok := raw[key]; ok {
			return raw, true
		}
	}
	return nil, false
}

// firstPresent returns the outer value for key, falling back to the inner
// container when the outer payload does not carry it.
func firstPresent(outer, inner map[string]any, key string) any {
	if v, ok := outer[key]; ok {
		return v
	}
	return inner[key]
}

// coerceScore converts an arbitrary JSON value into a score in [0,100].
// Anything that cannot be read as a finite number becomes 0, which the
// rest of the system treats as "not analyzed".
func coerceScore(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}

// coerceString reads a JSON value as a string, tolerating numeric IDs.
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers decode as float64; IDs are whole numbers.
		return strconv.FormatInt(int64(s), 10)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return ""
}

// coerceTime parses an ISO-8601 timestamp, returning the zero time on any
// failure so the caller can substitute the completion instant.
func coerceTime(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
