package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/hammamikhairi/cookclip/internal/logger"
)

const defaultTimeout = 120 * time.Second

// RunnerOption configures the Runner.
type RunnerOption func(*Runner)

// WithYtdlpPath overrides the yt-dlp binary path.
func WithYtdlpPath(p string) RunnerOption {
	return func(r *Runner) { r.ytdlp = p }
}

// WithFFmpegPaths overrides the ffmpeg/ffprobe binary paths.
func WithFFmpegPaths(ffmpeg, ffprobe string) RunnerOption {
	return func(r *Runner) { r.ffmpeg, r.ffprobe = ffmpeg, ffprobe }
}

// WithTimeout sets the per-invocation subprocess timeout.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.timeout = d }
}

// Runner executes the external media tools as subprocesses. It is the
// concrete implementation behind the caption, metadata and audio ports.
type Runner struct {
	ytdlp   string
	ffmpeg  string
	ffprobe string
	timeout time.Duration
	log     *logger.Logger
}

// NewRunner creates a Runner with default binary names resolved from PATH.
func NewRunner(log *logger.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		ytdlp:   "yt-dlp",
		ffmpeg:  "ffmpeg",
		ffprobe: "ffprobe",
		timeout: defaultTimeout,
		log:     log,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// run executes bin with args under the runner timeout and returns stdout.
// Stderr is folded into the returned error.
func (r *Runner) run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.log.Debug("media: %s %v took %s", bin, args, time.Since(start).Round(time.Millisecond))

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%s timed out after %s", bin, r.timeout)
		}
		return nil, fmt.Errorf("%s failed: %w (stderr: %s)", bin, err, truncate(stderr.String(), 300))
	}
	return stdout.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
