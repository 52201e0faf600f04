package infra

import (
	"context"
	"errors"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1p1beta1"
	"cloud.google.com/go/speech/apiv1p1beta1/speechpb"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/recognizer/internal/config"
	"github.com/Vovarama1992/recognizer/internal/models"
	"github.com/Vovarama1992/recognizer/internal/ports"
	"github.com/googleapis/gax-go/v2"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"
)

// recognizeClient is the slice of *speech.Client we use, so tests can fake it.
type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
	Close() error
}

type GoogleSTTService struct {
	client recognizeClient
}

func NewGoogleSTTService(ctx context.Context, credentialsFile string) (*GoogleSTTService, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google speech client: %w", err)
	}
	return &GoogleSTTService{client: client}, nil
}

// Bootstrap resolves credentials and builds the speech client once. Failures
// are logged and reported as a nil service so the server can still start.
func Bootstrap(ctx context.Context, cfg config.Config, log *logger.ZapLogger) *GoogleSTTService {
	creds, err := ResolveCredentials(cfg)
	if err == nil {
		err = creds.Materialize()
	}
	if err != nil {
		log.Log(logger.LogEntry{
			Level:   "error",
			Message: "credentials bootstrap failed",
			Error:   err,
		})
		return nil
	}

	svc, err := NewGoogleSTTService(ctx, creds.Path)
	if err != nil {
		log.Log(logger.LogEntry{
			Level:   "error",
			Message: "speech client init failed",
			Fields:  map[string]any{"credentials": string(creds.Source)},
			Error:   err,
		})
		return nil
	}

	log.Log(logger.LogEntry{
		Level:   "info",
		Message: "speech client ready",
		Fields:  map[string]any{"credentials": string(creds.Source)},
	})
	return svc
}

func (s *GoogleSTTService) Recognize(ctx context.Context, audio []byte, cfg models.RecognitionConfig) ([]models.Segment, error) {
	resp, err := s.client.Recognize(ctx, buildRecognizeRequest(audio, cfg))
	if err != nil {
		return nil, classifyError(ctx, err)
	}
	return toSegments(resp), nil
}

func (s *GoogleSTTService) Close() error {
	return s.client.Close()
}

func buildRecognizeRequest(audio []byte, cfg models.RecognitionConfig) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   toEncoding(cfg.Encoding),
			SampleRateHertz:            cfg.SampleRateHertz,
			LanguageCode:               cfg.LanguageCode,
			EnableAutomaticPunctuation: cfg.EnableAutomaticPunctuation,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}
}

func toEncoding(enc models.AudioEncoding) speechpb.RecognitionConfig_AudioEncoding {
	switch enc {
	case models.EncodingWebmOpus:
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

func toSegments(resp *speechpb.RecognizeResponse) []models.Segment {
	segments := make([]models.Segment, 0, len(resp.GetResults()))
	for _, r := range resp.GetResults() {
		alts := make([]models.Alternative, 0, len(r.GetAlternatives()))
		for _, a := range r.GetAlternatives() {
			alts = append(alts, models.Alternative{
				Transcript: a.GetTranscript(),
				Confidence: a.GetConfidence(),
			})
		}
		segments = append(segments, models.Segment{Alternatives: alts})
	}
	return segments
}

// classifyError turns API-reported failures into *ports.ProviderError and
// leaves everything else untouched. Canceled or DeadlineExceeded statuses
// caused by the caller's own ctx are not the provider's doing.
func classifyError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}

	var ae *apierror.APIError
	if errors.As(err, &ae) {
		if st := ae.GRPCStatus(); st != nil {
			return &ports.ProviderError{Code: st.Code().String(), Message: st.Message()}
		}
		return &ports.ProviderError{Code: fmt.Sprintf("HTTP %d", ae.HTTPCode()), Message: ae.Error()}
	}

	if st, ok := status.FromError(err); ok {
		return &ports.ProviderError{Code: st.Code().String(), Message: st.Message()}
	}

	return err
}
