package transcript

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/logger"
	"github.com/hammamikhairi/cookclip/internal/media"
)

// Option configures the Service.
type Option func(*Service)

// WithAudioFallback enables the audio transcription source. It is only
// attempted when enabled AND a speech project id is configured; otherwise
// the source is skipped entirely, never retried.
func WithAudioFallback(audio domain.AudioTranscriber, enabled bool, projectID string) Option {
	return func(s *Service) {
		s.audio = audio
		s.audioEnabled = enabled
		s.projectID = projectID
	}
}

// Service sequences the transcript sources into one cached, fail-soft
// chain. Per-source failures are logged and swallowed; only exhaustion of
// the whole chain surfaces to the caller.
type Service struct {
	captions domain.CaptionSource
	metadata domain.MetadataSource
	audio    domain.AudioTranscriber

	audioEnabled bool
	projectID    string

	cache *Cache
	log   *logger.Logger
}

// NewService creates the fallback orchestrator. The cache is injected so
// callers control its lifetime and eviction policy.
func NewService(captions domain.CaptionSource, metadata domain.MetadataSource, cache *Cache, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		captions: captions,
		metadata: metadata,
		cache:    cache,
		log:      log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Acquire produces a transcript for the video URL, trying captions, then
// a metadata pseudo-transcript, then audio transcription. It fails with
// domain.ErrNoTranscript only after every enabled source is exhausted.
// Audio failure after being attempted is fatal: a degraded metadata
// placeholder must not silently stand in when richer extraction was
// expected.
func (s *Service) Acquire(ctx context.Context, url string) (*domain.Transcript, error) {
	videoID := media.ExtractVideoID(url)
	if t, ok := s.cache.Get(videoID); ok {
		s.log.Info("transcript: cache hit for video %s (source=%s)", videoID, t.Source)
		return t, nil
	}

	// 1. Platform captions — no media download required.
	if t := s.tryCaptions(ctx, url, videoID); t != nil {
		s.cache.Put(videoID, t)
		return t, nil
	}

	// 2. Metadata pseudo-transcript — cheap and safe in constrained
	// deployments, so it comes before audio.
	if t := s.tryMetadata(ctx, url, videoID); t != nil {
		s.cache.Put(videoID, t)
		return t, nil
	}

	// 3. Audio transcription — opt-in and credential-gated.
	if !s.audioEnabled || s.audio == nil {
		s.log.Info("transcript: audio fallback disabled, chain exhausted for %s", videoID)
		return nil, domain.ErrNoTranscript
	}
	if s.projectID == "" {
		s.log.Error("transcript: audio fallback enabled but no speech project configured")
		return nil, fmt.Errorf("audio transcription: %w", domain.ErrConfigMissing)
	}

	s.log.Info("transcript: attempting audio transcription for %s", videoID)
	text, err := s.audio.TranscribeVideo(ctx, url)
	if err != nil {
		return nil, &domain.AudioError{Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &domain.AudioError{Err: fmt.Errorf("transcription returned empty result")}
	}

	t := &domain.Transcript{VideoID: videoID, Text: text, Source: domain.SourceAudio}
	s.cache.Put(videoID, t)
	return t, nil
}

func (s *Service) tryCaptions(ctx context.Context, url, videoID string) *domain.Transcript {
	text, segments, err := s.captions.FetchCaptions(ctx, url)
	if err != nil {
		s.log.Warn("transcript: caption fetch failed for %s: %v", videoID, err)
		return nil
	}
	if strings.TrimSpace(text) == "" {
		s.log.Debug("transcript: no captions for %s", videoID)
		return nil
	}
	s.log.Info("transcript: captions for %s (%d chars, %d segments)", videoID, len(text), len(segments))
	return &domain.Transcript{VideoID: videoID, Text: text, Segments: segments, Source: domain.SourceCaptions}
}

func (s *Service) tryMetadata(ctx context.Context, url, videoID string) *domain.Transcript {
	meta, err := s.metadata.FetchMetadata(ctx, url)
	if err != nil {
		s.log.Warn("transcript: metadata fetch failed for %s: %v", videoID, err)
		return nil
	}
	if meta == nil || meta.Title == "" {
		s.log.Warn("transcript: metadata fallback has no title for %s", videoID)
		return nil
	}

	text := "Video title: " + meta.Title
	if meta.Description != "" {
		text += "\nDescription: " + meta.Description
	}
	s.log.Info("transcript: metadata fallback for %s (title=%q)", videoID, meta.Title)
	return &domain.Transcript{VideoID: videoID, Text: text, Source: domain.SourceMetadata}
}
