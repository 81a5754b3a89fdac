package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ConvertToWav16kMono normalizes any audio file to WAV PCM 16kHz mono,
// the canonical form the speech API expects.
func (r *Runner) ConvertToWav16kMono(ctx context.Context, src, dst string) error {
	_, err := r.run(ctx, r.ffmpeg,
		"-y",
		"-i", src,
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dst,
	)
	if err != nil {
		return fmt.Errorf("convert to wav: %w", err)
	}
	return nil
}

// DurationSeconds measures the exact duration of a media file via ffprobe.
func (r *Runner) DurationSeconds(ctx context.Context, path string) (float64, error) {
	out, err := r.run(ctx, r.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}
	sec, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", string(out), err)
	}
	return sec, nil
}

// SliceWav cuts [startSec, startSec+durSec) out of a WAV file into dst,
// keeping the 16kHz mono PCM form.
func (r *Runner) SliceWav(ctx context.Context, src string, startSec, durSec float64, dst string) error {
	_, err := r.run(ctx, r.ffmpeg,
		"-y",
		"-ss", formatSec(startSec),
		"-t", formatSec(durSec),
		"-i", src,
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dst,
	)
	if err != nil {
		return fmt.Errorf("slice wav [%s+%s]: %w", formatSec(startSec), formatSec(durSec), err)
	}
	return nil
}

func formatSec(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
