package models

import "strings"

// Segment is one timed caption unit as returned by the captioning service.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is an ordered sequence of segments, chronological by appearance.
type Transcript []Segment

// Text joins all segment texts with a single space separator. Joining is
// purely concatenative: no trimming, no deduplication, no normalization.
func (t Transcript) Text() string {
	texts := make([]string, len(t))
	for i, seg := range t {
		texts[i] = seg.Text
	}
	return strings.Join(texts, " ")
}
