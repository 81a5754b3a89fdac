package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hammamikhairi/cookclip/internal/domain"
)

func TestMetadataFallbackAllowed(t *testing.T) {
	meta := &domain.VideoMetadata{Title: "Focaccia"}
	audioErr := &domain.AudioError{Err: errors.New("speech api unreachable")}

	tests := []struct {
		name       string
		acquireErr error
		meta       *domain.VideoMetadata
		want       bool
	}{
		{"exhausted chain with metadata", domain.ErrNoTranscript, meta, true},
		{"exhausted chain without metadata", domain.ErrNoTranscript, nil, false},
		{"metadata without title", domain.ErrNoTranscript, &domain.VideoMetadata{}, false},
		// A failed audio attempt is fatal even when a later metadata
		// fetch succeeded.
		{"audio failure with metadata", audioErr, meta, false},
		{"wrapped audio failure", fmt.Errorf("acquire: %w", audioErr), meta, false},
		{"config failure with metadata", domain.ErrConfigMissing, meta, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := metadataFallbackAllowed(tt.acquireErr, tt.meta); got != tt.want {
				t.Errorf("metadataFallbackAllowed(%v, %+v) = %v, want %v", tt.acquireErr, tt.meta, got, tt.want)
			}
		})
	}
}
