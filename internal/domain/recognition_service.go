package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/recognizer/internal/models"
	"github.com/Vovarama1992/recognizer/internal/ports"
)

var ErrNotConfigured = errors.New("speech client is not configured")

const (
	// Taiwan Mandarin
	languageCode    = "zh-TW"
	sampleRateHertz = 48000
)

type recognitionService struct {
	stt ports.STTService
}

// NewRecognitionService accepts a nil stt when the client could not be built
// at startup; every call then fails with ErrNotConfigured.
func NewRecognitionService(stt ports.STTService) ports.RecognitionService {
	return &recognitionService{stt: stt}
}

func RecognitionConfig() models.RecognitionConfig {
	return models.RecognitionConfig{
		Encoding:                   models.EncodingWebmOpus,
		SampleRateHertz:            sampleRateHertz,
		LanguageCode:               languageCode,
		EnableAutomaticPunctuation: true,
	}
}

func (s *recognitionService) Ready() bool {
	return s.stt != nil
}

func (s *recognitionService) Recognize(ctx context.Context, upload models.AudioUpload) (string, error) {
	if s.stt == nil {
		return "", ErrNotConfigured
	}

	segments, err := s.stt.Recognize(ctx, upload.Content, RecognitionConfig())
	if err != nil {
		var perr *ports.ProviderError
		if errors.As(err, &perr) {
			return "", perr
		}
		return "", fmt.Errorf("recognize: %w", err)
	}

	text, err := models.Transcript(segments)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}
