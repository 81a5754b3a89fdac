// CookClip turns a cooking-video URL into a structured recipe.
//
// Usage:
//
//	cookclip -url "https://www.youtube.com/watch?v=..." [-ask "question"] [-save]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/cookclip/internal/config"
	"github.com/hammamikhairi/cookclip/internal/display"
	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/gpt"
	"github.com/hammamikhairi/cookclip/internal/logger"
	"github.com/hammamikhairi/cookclip/internal/media"
	"github.com/hammamikhairi/cookclip/internal/storage"
	"github.com/hammamikhairi/cookclip/internal/stt"
	"github.com/hammamikhairi/cookclip/internal/transcript"
)

func main() {
	_ = godotenv.Load()

	url := flag.String("url", "", "cooking video URL (required)")
	ask := flag.String("ask", "", "optional question to ask about the extracted recipe")
	owner := flag.String("owner", "local", "owner id used when saving the recipe")
	save := flag.Bool("save", false, "persist the extracted recipe to the sqlite store")
	modelHint := flag.String("model", "", "override the extraction model")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	flag.Parse()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "cookclip: -url is required")
		flag.Usage()
		os.Exit(2)
	}

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}
	log := logger.New(logLevel, os.Stderr)

	cfg := config.Load()
	if cfg.LLMEndpoint == "" || cfg.LLMAPIKey == "" {
		fmt.Fprintf(os.Stderr, "cookclip: %s and %s must be set\n", config.EnvLLMEndpoint, config.EnvLLMAPIKey)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, log, *url, *ask, *owner, *modelHint, *save); err != nil {
		if errors.Is(err, domain.ErrNoTranscript) {
			fmt.Fprintln(os.Stderr, "cookclip: could not process this video (no transcript available)")
		} else {
			fmt.Fprintf(os.Stderr, "cookclip: %v\n", err)
		}
		os.Exit(1)
	}
}

// metadataFallbackAllowed reports whether extraction may fall back to
// bare metadata after transcript acquisition failed. An attempted audio
// transcription that failed is fatal, never degraded to a weaker source.
func metadataFallbackAllowed(acquireErr error, meta *domain.VideoMetadata) bool {
	var audioErr *domain.AudioError
	if errors.As(acquireErr, &audioErr) {
		return false
	}
	return meta != nil && meta.Title != ""
}

func run(ctx context.Context, cfg config.Settings, log *logger.Logger, url, ask, owner, modelHint string, save bool) error {
	runner := media.NewRunner(log,
		media.WithYtdlpPath(cfg.YtdlpPath),
		media.WithFFmpegPaths(cfg.FFmpegPath, cfg.FFprobePath),
		media.WithTimeout(cfg.MediaTimeout),
	)

	var opts []transcript.Option
	if cfg.EnableAudioTranscription && cfg.GCPProjectID != "" {
		rec := stt.NewGoogleClient(cfg.GCPAPIKey, log,
			stt.WithLanguage(cfg.STTLanguageCode),
			stt.WithModel(cfg.STTModel),
			stt.WithHTTPTimeout(cfg.STTTimeout),
		)
		audio := stt.NewTranscriber(runner, rec, cfg.STTMaxAudioSeconds, log)
		opts = append(opts, transcript.WithAudioFallback(audio, true, cfg.GCPProjectID))
		log.Info("audio transcription fallback enabled (project=%s)", cfg.GCPProjectID)
	}

	cache := transcript.NewCache(log)
	transcripts := transcript.NewService(runner, runner, cache, log, opts...)

	client := gpt.NewClient(cfg.LLMEndpoint, cfg.LLMAPIKey, log,
		gpt.WithModel(cfg.LLMModel),
		gpt.WithHTTPTimeout(cfg.LLMTimeout),
		gpt.WithRateLimit(1),
	)
	extractor := gpt.NewExtractor(client, log)

	// Metadata and transcript acquisition run concurrently; metadata is
	// both display garnish and the fallback extraction input.
	metaCh := make(chan *domain.VideoMetadata, 1)
	go func() {
		meta, err := runner.FetchMetadata(ctx, url)
		if err != nil {
			log.Warn("metadata fetch failed: %v", err)
		}
		metaCh <- meta
	}()

	t, acquireErr := transcripts.Acquire(ctx, url)
	meta := <-metaCh

	var (
		rec *domain.Recipe
		err error
	)
	switch {
	case acquireErr == nil && t.Source == domain.SourceMetadata && meta != nil:
		rec, err = extractor.ExtractFromMetadata(ctx, meta.Title, meta.Description)
	case acquireErr == nil:
		rec, err = extractor.Extract(ctx, t.Text, modelHint)
	case metadataFallbackAllowed(acquireErr, meta):
		log.Warn("transcript acquisition failed (%v), extracting from metadata", acquireErr)
		t = &domain.Transcript{VideoID: meta.VideoID, Source: domain.SourceMetadata}
		rec, err = extractor.ExtractFromMetadata(ctx, meta.Title, meta.Description)
	default:
		return acquireErr
	}
	if err != nil {
		return err
	}

	fmt.Println(display.RenderRecipe(rec, meta, t.Source))

	if ask != "" {
		answerer := gpt.NewAnswerer(client, log)
		answer, err := answerer.Answer(ctx, ask, rec, t.Text)
		if err != nil {
			return err
		}
		fmt.Printf("Q: %s\n%s\n", ask, answer)
	}

	if save {
		store, err := storage.NewSQLiteStore(cfg.DatabasePath, log)
		if err != nil {
			return err
		}
		defer store.Close()

		saved := &domain.SavedRecipe{
			Owner:          owner,
			SourceURL:      url,
			SourcePlatform: "youtube",
			Recipe:         *rec,
			Transcript:     t,
		}
		if err := store.Save(ctx, saved); err != nil {
			return err
		}
		fmt.Printf("saved recipe %s\n", saved.ID)
	}
	return nil
}
