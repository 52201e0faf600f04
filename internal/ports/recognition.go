package ports

import (
	"context"

	"github.com/Vovarama1992/recognizer/internal/models"
)

type RecognitionService interface {
	Ready() bool
	Recognize(ctx context.Context, upload models.AudioUpload) (string, error)
}
