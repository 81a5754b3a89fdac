package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// captionTrack is one downloadable subtitle rendition for a language.
type captionTrack struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ytdlpInfo is the subset of `yt-dlp --dump-json` output the pipeline
// consumes. Subtitles holds manually authored tracks; AutomaticCaptions
// holds auto-generated ones. Both map language code to renditions.
type ytdlpInfo struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Thumbnail         string                    `json:"thumbnail"`
	Uploader          string                    `json:"uploader"`
	Channel           string                    `json:"channel"`
	UploadDate        string                    `json:"upload_date"`
	Duration          float64                   `json:"duration"`
	Description       string                    `json:"description"`
	Subtitles         map[string][]captionTrack `json:"subtitles"`
	AutomaticCaptions map[string][]captionTrack `json:"automatic_captions"`
}

// fetchInfo runs `yt-dlp --dump-json` for the URL. yt-dlp sometimes
// prints warnings before the JSON line, so scan for the line that is
// actually an object.
func (r *Runner) fetchInfo(ctx context.Context, url string) (*ytdlpInfo, error) {
	out, err := r.run(ctx, r.ytdlp,
		"--dump-json",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		url,
	)
	if err != nil {
		return nil, err
	}

	var jsonLine string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "{") {
			jsonLine = line
			break
		}
	}
	if jsonLine == "" {
		return nil, fmt.Errorf("no JSON in yt-dlp output (%d bytes)", len(out))
	}

	var info ytdlpInfo
	if err := json.Unmarshal([]byte(jsonLine), &info); err != nil {
		return nil, fmt.Errorf("parse yt-dlp JSON: %w", err)
	}
	return &info, nil
}
