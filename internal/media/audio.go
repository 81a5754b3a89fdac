package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DownloadAudio downloads a video's audio track as m4a into dir and
// returns the file path. The caller owns dir and is responsible for
// removing it; pairing this with a deferred os.RemoveAll keeps cleanup
// on every exit path.
func (r *Runner) DownloadAudio(ctx context.Context, url, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}
	outPath := filepath.Join(dir, "audio.m4a")

	_, err := r.run(ctx, r.ytdlp,
		"-x",
		"--audio-format", "m4a",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"-o", outPath,
		url,
	)
	if err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}

	if st, err := os.Stat(outPath); err != nil || st.Size() == 0 {
		return "", fmt.Errorf("audio download produced no file at %s", outPath)
	}
	r.log.Info("media: audio downloaded to %s", outPath)
	return outPath, nil
}
