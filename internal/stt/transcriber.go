package stt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/logger"
	"github.com/hammamikhairi/cookclip/internal/media"
)

const (
	// Audio at or under this duration goes through a single call.
	singleCallSec = 60.0
	// Chunk length for longer audio. 55s keeps each chunk safely under
	// the synchronous recognize ceiling.
	chunkSec = 55.0
	// Bounded concurrency for chunk transcription.
	maxChunkWorkers = 6
)

// Recognizer is the speech backend the transcriber drives. GoogleClient
// implements it; tests substitute fakes.
type Recognizer interface {
	Recognize(ctx context.Context, wav []byte) (string, error)
	RecognizeLong(ctx context.Context, wav []byte) (string, error)
}

// AudioRunner is the slice of the media toolchain the transcriber needs:
// audio download, WAV normalization, duration probing and slicing.
// media.Runner implements it; tests substitute fakes.
type AudioRunner interface {
	DownloadAudio(ctx context.Context, url, dir string) (string, error)
	ConvertToWav16kMono(ctx context.Context, src, dst string) error
	DurationSeconds(ctx context.Context, path string) (float64, error)
	SliceWav(ctx context.Context, src string, startSec, durSec float64, dst string) error
}

// Compile-time interface checks.
var (
	_ Recognizer              = (*GoogleClient)(nil)
	_ AudioRunner             = (*media.Runner)(nil)
	_ domain.AudioTranscriber = (*Transcriber)(nil)
)

// Transcriber downloads a video's audio, normalizes it to 16kHz mono WAV
// and transcribes it, chunked when long.
type Transcriber struct {
	runner     AudioRunner
	rec        Recognizer
	maxSeconds int
	log        *logger.Logger
}

// NewTranscriber creates an audio transcriber. maxSeconds is the hard
// duration ceiling: longer audio is rejected outright rather than
// truncated, so the caller always knows exactly what was transcribed.
func NewTranscriber(runner AudioRunner, rec Recognizer, maxSeconds int, log *logger.Logger) *Transcriber {
	return &Transcriber{runner: runner, rec: rec, maxSeconds: maxSeconds, log: log}
}

// TranscribeVideo downloads the audio for url into a scoped temp
// directory (removed on every exit path) and transcribes it.
func (t *Transcriber) TranscribeVideo(ctx context.Context, url string) (string, error) {
	dir, err := os.MkdirTemp("", "cookclip-audio-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	audioPath, err := t.runner.DownloadAudio(ctx, url, dir)
	if err != nil {
		return "", err
	}
	return t.TranscribeFile(ctx, audioPath)
}

// TranscribeFile transcribes a local audio file. Short audio (≤60s) uses
// one long-running call; longer audio is split into 55s chunks which are
// transcribed concurrently and reassembled by chunk index. A failed chunk
// does not abort the whole transcription: its text is omitted from the
// result and the omission is logged.
func (t *Transcriber) TranscribeFile(ctx context.Context, audioPath string) (string, error) {
	workDir := filepath.Dir(audioPath)
	wavPath := filepath.Join(workDir, "audio-16k.wav")

	if err := t.runner.ConvertToWav16kMono(ctx, audioPath, wavPath); err != nil {
		return "", err
	}

	totalSec, err := t.runner.DurationSeconds(ctx, wavPath)
	if err != nil {
		return "", err
	}
	t.log.Info("stt: audio duration %.1fs (ceiling %ds)", totalSec, t.maxSeconds)

	if t.maxSeconds > 0 && totalSec > float64(t.maxSeconds) {
		return "", fmt.Errorf("audio too long: %.0fs exceeds ceiling of %ds", totalSec, t.maxSeconds)
	}

	if totalSec <= singleCallSec {
		wav, err := os.ReadFile(wavPath)
		if err != nil {
			return "", fmt.Errorf("read wav: %w", err)
		}
		text, err := t.rec.RecognizeLong(ctx, wav)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	}

	return t.transcribeChunked(ctx, wavPath, workDir, totalSec)
}

// chunk is one planned slice of the source audio.
type chunk struct {
	Index    int
	StartSec float64
	DurSec   float64
}

// planChunks splits totalSec into fixed-length chunks, the last one
// possibly shorter.
func planChunks(totalSec, sliceSec float64) []chunk {
	var chunks []chunk
	start := 0.0
	for i := 0; start < totalSec; i++ {
		dur := sliceSec
		if rest := totalSec - start; rest < dur {
			dur = rest
		}
		chunks = append(chunks, chunk{Index: i, StartSec: start, DurSec: dur})
		start += dur
	}
	return chunks
}

func (t *Transcriber) transcribeChunked(ctx context.Context, wavPath, workDir string, totalSec float64) (string, error) {
	chunks := planChunks(totalSec, chunkSec)
	t.log.Info("stt: transcribing %d chunks with up to %d workers", len(chunks), maxChunkWorkers)

	results := make([]string, len(chunks))
	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxChunkWorkers)

	for _, c := range chunks {
		c := c
		g.Go(func() error {
			chunkPath := filepath.Join(workDir, fmt.Sprintf("chunk_%04d.wav", c.Index))
			text, err := t.transcribeChunk(gctx, wavPath, chunkPath, c)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Degrade by omission rather than failing the whole run.
				t.log.Error("stt: chunk %d failed, omitting: %v", c.Index, err)
				failed++
				return nil
			}
			results[c.Index] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	if failed > 0 {
		t.log.Warn("stt: %d/%d chunks omitted from transcript", failed, len(chunks))
	}
	if failed == len(chunks) {
		return "", fmt.Errorf("all %d transcription chunks failed", len(chunks))
	}

	// Reassemble by chunk index, never by completion order. results is
	// indexed by chunk, so a plain walk preserves original order.
	var parts []string
	for _, text := range results {
		if s := strings.TrimSpace(text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), nil
}

func (t *Transcriber) transcribeChunk(ctx context.Context, wavPath, chunkPath string, c chunk) (string, error) {
	if err := t.runner.SliceWav(ctx, wavPath, c.StartSec, c.DurSec, chunkPath); err != nil {
		return "", err
	}
	wav, err := os.ReadFile(chunkPath)
	if err != nil {
		return "", fmt.Errorf("read chunk: %w", err)
	}
	t.log.Debug("stt: chunk %d start=%.1fs dur=%.1fs (%d bytes)", c.Index, c.StartSec, c.DurSec, len(wav))
	return t.rec.Recognize(ctx, wav)
}
