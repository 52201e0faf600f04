package ports

import (
	"context"

	"github.com/Vovarama1992/recognizer/internal/models"
)

type STTService interface {
	Recognize(ctx context.Context, audio []byte, cfg models.RecognitionConfig) ([]models.Segment, error)
}

// ProviderError is returned when the remote speech API itself failed the call
// (quota, auth, rejected request).
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}
