// Package classifier implements the single-song heuristic that gates
// downloads.
//
// Classification is a pure score-and-compare pass over candidate metadata:
// rules accumulate red flags (compilation/album signals) and green flags
// (single-track signals), and the verdict compares the two tallies. It never
// performs I/O and never fails; malformed input degrades to a low-confidence
// allow rather than an error.
package classifier

import (
	"fmt"
	"regexp"
	"strings"
)

// AcceptOnTie resolves the tie case (equal red and green flags). Earlier
// drafts of this service accepted ties; current policy rejects them.
const AcceptOnTie = false

// Confidence buckets the flag margin of a verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Verdict is the result of classifying one candidate. Produced fresh per
// call, never persisted.
type Verdict struct {
	IsSingleSong bool       `json:"is_single_song"`
	Reasons      []string   `json:"reasons"`
	Confidence   Confidence `json:"confidence"`
	RedFlags     int        `json:"red_flags"`
	GreenFlags   int        `json:"green_flags"`
}

// compilationKeywords mark a title as an album/compilation. Scanning stops at
// the first match.
var compilationKeywords = []string{
	"best of",
	"greatest hits",
	"full album",
	"complete album",
	"entire album",
	"discography",
	"compilation",
	"anthology",
	"collection",
	"mixtape",
	"playlist",
	"nonstop",
	"non-stop",
	"mega mix",
	"megamix",
	"all songs",
	"album mix",
}

// trackCountPattern matches track-count phrasings like "15 songs",
// "20 tracks" or "[30 hits]".
var trackCountPattern = regexp.MustCompile(`\b\d+\s*(songs|tracks|hits)\b`)

// descriptionSignals are compilation markers counted in the description.
// Each counts at most once regardless of repetition.
var descriptionSignals = []string{
	"tracklist",
	"track list",
	"1.",
	"2.",
	"3.",
	"00:00",
	"01:",
	"02:",
	"full album",
	"all tracks",
}

// singleSongMarkers indicate an individual track in the title or description.
// Scanning stops at the first match.
var singleSongMarkers = []string{
	"official video",
	"official audio",
	"official music video",
	"lyric video",
	"lyrics",
	"visualizer",
	"single",
}

// Classify scores candidate metadata and decides whether it describes an
// individual track rather than a compilation or album.
//
// The function is deterministic and total: any combination of empty fields
// and zero duration yields a verdict, never an error.
func Classify(title string, duration int, description string) Verdict {
	v := Verdict{Reasons: []string{}}

	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	scoreDuration(&v, duration)
	scoreTitleKeywords(&v, titleLower)
	scoreTrackCount(&v, titleLower)
	scoreDescription(&v, descLower)
	scoreSingleMarkers(&v, titleLower, descLower)

	if AcceptOnTie {
		v.IsSingleSong = v.RedFlags <= v.GreenFlags
	} else {
		v.IsSingleSong = v.RedFlags < v.GreenFlags
	}

	switch diff := abs(v.RedFlags - v.GreenFlags); {
	case diff >= 2:
		v.Confidence = ConfidenceHigh
	case diff == 1:
		v.Confidence = ConfidenceMedium
	default:
		v.Confidence = ConfidenceLow
	}

	return v
}

func scoreDuration(v *Verdict, duration int) {
	switch {
	case duration <= 0:
		// Unknown duration contributes nothing
	case duration < 60:
		v.RedFlags++
		v.Reasons = append(v.Reasons, "Very short duration")
	case duration > 600:
		v.RedFlags += 2
		v.Reasons = append(v.Reasons, "Long duration suggests compilation")
	case duration >= 120 && duration <= 480:
		v.GreenFlags += 2
		v.Reasons = append(v.Reasons, "Good song length")
	default:
		v.GreenFlags++
		v.Reasons = append(v.Reasons, "Acceptable duration")
	}
}

func scoreTitleKeywords(v *Verdict, titleLower string) {
	for _, kw := range compilationKeywords {
		if strings.Contains(titleLower, kw) {
			v.RedFlags += 2
			v.Reasons = append(v.Reasons, fmt.Sprintf("Title contains '%s'", kw))
			return
		}
	}
}

func scoreTrackCount(v *Verdict, titleLower string) {
	if match := trackCountPattern.FindString(titleLower); match != "" {
		v.RedFlags += 2
		v.Reasons = append(v.Reasons, fmt.Sprintf("Title matches track count pattern '%s'", match))
	}
}

func scoreDescription(v *Verdict, descLower string) {
	if descLower == "" {
		return
	}

	found := 0
	for _, signal := range descriptionSignals {
		if strings.Contains(descLower, signal) {
			found++
		}
	}

	switch {
	case found >= 2:
		v.RedFlags += 2
		v.Reasons = append(v.Reasons, fmt.Sprintf("Description contains %d compilation signals", found))
	case found == 1:
		v.RedFlags++
		v.Reasons = append(v.Reasons, "Description contains a compilation signal")
	}
}

func scoreSingleMarkers(v *Verdict, titleLower, descLower string) {
	for _, marker := range singleSongMarkers {
		if strings.Contains(titleLower, marker) || strings.Contains(descLower, marker) {
			v.GreenFlags++
			v.Reasons = append(v.Reasons, fmt.Sprintf("Contains '%s'", marker))
			return
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
