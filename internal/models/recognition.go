package models

import (
	"errors"
	"fmt"
	"strings"
)

type AudioEncoding string

const (
	EncodingWebmOpus AudioEncoding = "WEBM_OPUS"
)

// AudioUpload is one clip from the browser recorder, kept in memory only.
type AudioUpload struct {
	Content     []byte
	Filename    string
	ContentType string
}

type RecognitionConfig struct {
	Encoding                   AudioEncoding
	SampleRateHertz            int32
	LanguageCode               string
	EnableAutomaticPunctuation bool
}

type Alternative struct {
	Transcript string
	Confidence float32
}

// Segment is one utterance span; Alternatives are ranked best first.
type Segment struct {
	Alternatives []Alternative
}

var ErrNoAlternatives = errors.New("segment has no alternatives")

// Transcript joins the top alternative of each segment in provider order.
func Transcript(segments []Segment) (string, error) {
	var b strings.Builder
	for i, seg := range segments {
		if len(seg.Alternatives) == 0 {
			return "", fmt.Errorf("segment %d: %w", i, ErrNoAlternatives)
		}
		b.WriteString(seg.Alternatives[0].Transcript)
	}
	return b.String(), nil
}
