package stt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/hammamikhairi/cookclip/internal/logger"
)

// fakeRunner stands in for the media toolchain. SliceWav writes each
// chunk's start second into the chunk file so the recognizer can tell
// chunks apart.
type fakeRunner struct {
	durationSec float64
}

func (f *fakeRunner) DownloadAudio(ctx context.Context, url, dir string) (string, error) {
	path := filepath.Join(dir, "audio.m4a")
	return path, os.WriteFile(path, []byte("m4a"), 0o644)
}

func (f *fakeRunner) ConvertToWav16kMono(ctx context.Context, src, dst string) error {
	return os.WriteFile(dst, []byte("pcm"), 0o644)
}

func (f *fakeRunner) DurationSeconds(ctx context.Context, path string) (float64, error) {
	return f.durationSec, nil
}

func (f *fakeRunner) SliceWav(ctx context.Context, src string, startSec, durSec float64, dst string) error {
	return os.WriteFile(dst, []byte(fmt.Sprintf("%.0f", startSec)), 0o644)
}

// gatedRecognizer blocks each chunk until the test releases it, so the
// test controls completion order exactly.
type gatedRecognizer struct {
	started chan int
	release []chan struct{}
	fail    map[int]bool
}

func newGatedRecognizer(chunks int, fail map[int]bool) *gatedRecognizer {
	r := &gatedRecognizer{
		started: make(chan int, chunks),
		release: make([]chan struct{}, chunks),
		fail:    fail,
	}
	for i := range r.release {
		r.release[i] = make(chan struct{})
	}
	return r
}

func (r *gatedRecognizer) Recognize(ctx context.Context, wav []byte) (string, error) {
	start, err := strconv.ParseFloat(string(wav), 64)
	if err != nil {
		return "", fmt.Errorf("unexpected chunk payload %q", wav)
	}
	idx := int(start / chunkSec)
	r.started <- idx
	<-r.release[idx]
	if r.fail[idx] {
		return "", errors.New("recognize failed")
	}
	return fmt.Sprintf("part%d", idx), nil
}

func (r *gatedRecognizer) RecognizeLong(ctx context.Context, wav []byte) (string, error) {
	return "", errors.New("long-running call not expected for chunked audio")
}

// plainRecognizer answers immediately.
type plainRecognizer struct {
	text      string
	longCalls int
}

func (r *plainRecognizer) Recognize(ctx context.Context, wav []byte) (string, error) {
	return r.text, nil
}

func (r *plainRecognizer) RecognizeLong(ctx context.Context, wav []byte) (string, error) {
	r.longCalls++
	return r.text, nil
}

func testAudioPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.m4a")
	if err := os.WriteFile(path, []byte("m4a"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribeFileReassemblesByChunkIndex(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	runner := &fakeRunner{durationSec: 165} // three 55s chunks
	rec := newGatedRecognizer(3, map[int]bool{1: true})
	tr := NewTranscriber(runner, rec, 0, log)

	// Release chunks in reverse order so completion order is 2, 1, 0.
	go func() {
		for i := 0; i < 3; i++ {
			<-rec.started
		}
		close(rec.release[2])
		close(rec.release[1])
		close(rec.release[0])
	}()

	got, err := tr.TranscribeFile(context.Background(), testAudioPath(t))
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	// Chunk 1 failed and is omitted; the survivors keep source order
	// regardless of completion order.
	if got != "part0 part2" {
		t.Errorf("transcript = %q, want %q", got, "part0 part2")
	}
}

func TestTranscribeFileAllChunksFailed(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	runner := &fakeRunner{durationSec: 110}
	rec := newGatedRecognizer(2, map[int]bool{0: true, 1: true})
	tr := NewTranscriber(runner, rec, 0, log)

	go func() {
		for i := 0; i < 2; i++ {
			<-rec.started
		}
		close(rec.release[0])
		close(rec.release[1])
	}()

	_, err := tr.TranscribeFile(context.Background(), testAudioPath(t))
	if err == nil {
		t.Fatal("expected error when every chunk fails")
	}
}

func TestTranscribeFileShortAudioSingleCall(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	runner := &fakeRunner{durationSec: 42}
	rec := &plainRecognizer{text: "  short transcript  "}
	tr := NewTranscriber(runner, rec, 0, log)

	got, err := tr.TranscribeFile(context.Background(), testAudioPath(t))
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if got != "short transcript" {
		t.Errorf("transcript = %q", got)
	}
	if rec.longCalls != 1 {
		t.Errorf("long-running calls = %d, want 1", rec.longCalls)
	}
}

func TestTranscribeFileRejectsOverCeiling(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	runner := &fakeRunner{durationSec: 7200}
	rec := &plainRecognizer{text: "never reached"}
	tr := NewTranscriber(runner, rec, 3600, log)

	_, err := tr.TranscribeFile(context.Background(), testAudioPath(t))
	if err == nil {
		t.Fatal("expected rejection for audio over the ceiling")
	}
	if !strings.Contains(err.Error(), "audio too long") {
		t.Errorf("error = %v, want duration vs ceiling report", err)
	}
}

func TestPlanChunks(t *testing.T) {
	tests := []struct {
		name     string
		totalSec float64
		sliceSec float64
		want     []chunk
	}{
		{
			name:     "exact multiple",
			totalSec: 110,
			sliceSec: 55,
			want: []chunk{
				{Index: 0, StartSec: 0, DurSec: 55},
				{Index: 1, StartSec: 55, DurSec: 55},
			},
		},
		{
			name:     "short tail",
			totalSec: 120,
			sliceSec: 55,
			want: []chunk{
				{Index: 0, StartSec: 0, DurSec: 55},
				{Index: 1, StartSec: 55, DurSec: 55},
				{Index: 2, StartSec: 110, DurSec: 10},
			},
		},
		{
			name:     "shorter than one slice",
			totalSec: 30,
			sliceSec: 55,
			want:     []chunk{{Index: 0, StartSec: 0, DurSec: 30}},
		},
		{
			name:     "zero duration",
			totalSec: 0,
			sliceSec: 55,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planChunks(tt.totalSec, tt.sliceSec)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d chunks, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].Index != tt.want[i].Index ||
					math.Abs(got[i].StartSec-tt.want[i].StartSec) > 1e-9 ||
					math.Abs(got[i].DurSec-tt.want[i].DurSec) > 1e-9 {
					t.Errorf("chunk %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlanChunksCoverWholeDuration(t *testing.T) {
	for _, total := range []float64{1, 54.9, 55, 55.1, 300, 3600} {
		chunks := planChunks(total, 55)
		var sum float64
		for i, c := range chunks {
			if c.Index != i {
				t.Errorf("total=%.1f: chunk %d has index %d", total, i, c.Index)
			}
			sum += c.DurSec
		}
		if math.Abs(sum-total) > 1e-9 {
			t.Errorf("total=%.1f: chunks cover %.3fs", total, sum)
		}
	}
}
