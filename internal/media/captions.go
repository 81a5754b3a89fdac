package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/hammamikhairi/cookclip/internal/domain"
)

// Compile-time interface check.
var _ domain.CaptionSource = (*Runner)(nil)

// FetchCaptions retrieves the best caption track for a video and returns
// its plain text plus timed segments. Returns ("", nil, nil) when the
// video has no usable captions; an all-whitespace track counts as none.
func (r *Runner) FetchCaptions(ctx context.Context, url string) (string, []domain.Segment, error) {
	info, err := r.fetchInfo(ctx, url)
	if err != nil {
		return "", nil, fmt.Errorf("list caption tracks: %w", err)
	}

	track, lang, auto := selectTrack(info.Subtitles, info.AutomaticCaptions)
	if track == nil {
		r.log.Debug("captions: no tracks for video %s", info.ID)
		return "", nil, nil
	}
	r.log.Info("captions: video %s using lang=%s auto=%v ext=%s", info.ID, lang, auto, track.Ext)

	body, err := r.download(ctx, track.URL)
	if err != nil {
		return "", nil, fmt.Errorf("download caption track %s: %w", lang, err)
	}

	var segments []domain.Segment
	switch track.Ext {
	case "json3":
		segments, err = parseJSON3(body)
	default:
		segments, err = parseVTT(string(body))
	}
	if err != nil {
		return "", nil, fmt.Errorf("parse caption track %s: %w", lang, err)
	}

	text := joinSegments(segments)
	if strings.TrimSpace(text) == "" {
		r.log.Debug("captions: track %s is empty for video %s", lang, info.ID)
		return "", nil, nil
	}
	return text, segments, nil
}

// selectTrack picks the caption track to use. Manually authored tracks
// beat auto-generated ones; within each tier en-US beats generic en; when
// neither tier has English at all, the first available track wins (sorted
// by language code so the choice is deterministic).
func selectTrack(manual, auto map[string][]captionTrack) (*captionTrack, string, bool) {
	if t, lang := pickEnglish(manual); t != nil {
		return t, lang, false
	}
	if t, lang := pickEnglish(auto); t != nil {
		return t, lang, true
	}
	if t, lang := pickAny(manual); t != nil {
		return t, lang, false
	}
	if t, lang := pickAny(auto); t != nil {
		return t, lang, true
	}
	return nil, "", false
}

func pickEnglish(tracks map[string][]captionTrack) (*captionTrack, string) {
	for _, lang := range []string{"en-US", "en"} {
		if ts, ok := tracks[lang]; ok && len(ts) > 0 {
			return preferExt(ts), lang
		}
	}
	return nil, ""
}

func pickAny(tracks map[string][]captionTrack) (*captionTrack, string) {
	langs := make([]string, 0, len(tracks))
	for lang, ts := range tracks {
		if len(ts) > 0 {
			langs = append(langs, lang)
		}
	}
	if len(langs) == 0 {
		return nil, ""
	}
	sort.Strings(langs)
	lang := langs[0]
	return preferExt(tracks[lang]), lang
}

// preferExt picks json3 when offered (cleanest to parse), then vtt, then
// whatever comes first.
func preferExt(ts []captionTrack) *captionTrack {
	for _, want := range []string{"json3", "vtt"} {
		for i := range ts {
			if ts[i].Ext == want {
				return &ts[i]
			}
		}
	}
	return &ts[0]
}

// joinSegments concatenates caption chunks with single-space joins.
func joinSegments(segments []domain.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// download fetches a caption track URL over HTTP.
func (r *Runner) download(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption fetch returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
