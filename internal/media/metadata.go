package media

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/cookclip/internal/domain"
)

// Compile-time interface check.
var _ domain.MetadataSource = (*Runner)(nil)

// FetchMetadata retrieves title/thumbnail/uploader/date/duration/
// description for a video. Returns (nil, nil) when the video has no
// usable metadata: a result without a title cannot seed a recipe.
func (r *Runner) FetchMetadata(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	videoID := ExtractVideoID(url)
	if videoID == "" {
		return nil, fmt.Errorf("could not extract video id from %q", url)
	}

	info, err := r.fetchInfo(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata for %s: %w", videoID, err)
	}

	if info.Title == "" {
		r.log.Warn("metadata: video %s has no title, discarding result", videoID)
		return nil, nil
	}

	uploader := info.Uploader
	if uploader == "" {
		uploader = info.Channel
	}
	if uploader == "" {
		uploader = "Unknown"
	}

	return &domain.VideoMetadata{
		VideoID:      videoID,
		Title:        info.Title,
		ThumbnailURL: info.Thumbnail,
		Uploader:     uploader,
		UploadDate:   formatUploadDate(info.UploadDate),
		DurationSec:  int(info.Duration),
		Description:  info.Description,
	}, nil
}

// formatUploadDate turns yt-dlp's compact YYYYMMDD form into a readable
// date, falling back to the raw string when it does not parse.
func formatUploadDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return raw
	}
	return t.Format("January 2, 2006")
}
