package media

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/cookclip/internal/domain"
)

// json3Doc is the shape of YouTube's json3 caption format.
type json3Doc struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	TStartMs    int64      `json:"tStartMs"`
	DDurationMs int64      `json:"dDurationMs"`
	Segs        []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// parseJSON3 converts a json3 caption document into timed segments.
// Events without text segs (window/position events) are skipped.
func parseJSON3(data []byte) ([]domain.Segment, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal json3: %w", err)
	}

	var segments []domain.Segment
	for _, ev := range doc.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
		if text == "" {
			continue
		}
		start := float64(ev.TStartMs) / 1000.0
		segments = append(segments, domain.Segment{
			Text:     text,
			StartSec: start,
			EndSec:   start + float64(ev.DDurationMs)/1000.0,
		})
	}
	return segments, nil
}

var (
	vttTagRe  = regexp.MustCompile(`<[^>]+>`)
	vttTimeRe = regexp.MustCompile(`(\d+):(\d{2}):(\d{2})\.(\d{3})\s+-->\s+(\d+):(\d{2}):(\d{2})\.(\d{3})`)
)

// parseVTT converts WEBVTT subtitle text into timed segments, stripping
// cue tags and numeric cue identifiers.
func parseVTT(vtt string) ([]domain.Segment, error) {
	var segments []domain.Segment
	cur := domain.Segment{StartSec: -1}

	flush := func() {
		if cur.StartSec >= 0 && strings.TrimSpace(cur.Text) != "" {
			cur.Text = strings.TrimSpace(cur.Text)
			segments = append(segments, cur)
		}
		cur = domain.Segment{StartSec: -1}
	}

	for _, line := range strings.Split(vtt, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "WEBVTT"), strings.HasPrefix(line, "NOTE"),
			strings.HasPrefix(line, "Kind:"), strings.HasPrefix(line, "Language:"):
			// Header lines.
		case vttTimeRe.MatchString(line):
			flush()
			m := vttTimeRe.FindStringSubmatch(line)
			cur.StartSec = vttClock(m[1], m[2], m[3], m[4])
			cur.EndSec = vttClock(m[5], m[6], m[7], m[8])
		case isAllDigits(line):
			// Cue identifier.
		default:
			text := vttTagRe.ReplaceAllString(line, "")
			if text == "" {
				continue
			}
			if cur.Text != "" {
				cur.Text += " "
			}
			cur.Text += text
		}
	}
	flush()
	return dedupeSegments(segments), nil
}

// dedupeSegments drops consecutive duplicate lines, which auto-generated
// VTT produces constantly (rolling caption windows repeat text).
func dedupeSegments(in []domain.Segment) []domain.Segment {
	out := in[:0]
	prev := ""
	for _, s := range in {
		if s.Text == prev {
			continue
		}
		out = append(out, s)
		prev = s.Text
	}
	return out
}

func vttClock(h, m, s, ms string) float64 {
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	ss, _ := strconv.Atoi(s)
	mss, _ := strconv.Atoi(ms)
	return float64(hh)*3600 + float64(mm)*60 + float64(ss) + float64(mss)/1000
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
