package delivery

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/recognizer/internal/models"
	"github.com/Vovarama1992/recognizer/internal/ports"
)

const (
	msgNotConfigured  = "server error: cannot reach the speech service, check credentials"
	msgNoAudio        = "no audio uploaded"
	msgProviderPrefix = "speech api error: "
	msgUnknown        = "unknown error while recognizing speech"
)

const audioField = "audio"

type RecognizeHandler struct {
	svc       ports.RecognitionService
	metrics   ports.RecognitionMetrics
	log       *logger.ZapLogger
	maxMemory int64
}

func NewRecognizeHandler(
	svc ports.RecognitionService,
	metrics ports.RecognitionMetrics,
	log *logger.ZapLogger,
	maxMemory int64,
) *RecognizeHandler {
	return &RecognizeHandler{
		svc:       svc,
		metrics:   metrics,
		log:       log,
		maxMemory: maxMemory,
	}
}

// POST /recognize
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Ready() {
		h.observe(ports.OutcomeConfig)
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
		return
	}

	upload, err := h.readUpload(r)
	if err != nil {
		if errors.Is(err, errNoAudio) {
			h.observe(ports.OutcomeClient)
			writeError(w, http.StatusBadRequest, msgNoAudio)
			return
		}
		h.fail(w, r, err)
		return
	}

	start := time.Now()
	text, err := h.svc.Recognize(r.Context(), upload)
	if h.metrics != nil {
		h.metrics.ObserveDuration(time.Since(start))
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.observe(ports.OutcomeOK)
	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "speech recognized",
		Fields: map[string]any{
			"audioBytes": len(upload.Content),
			"textLength": len(text),
		},
	})

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

var errNoAudio = errors.New("no audio field in request")

func (h *RecognizeHandler) readUpload(r *http.Request) (models.AudioUpload, error) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		return models.AudioUpload{}, errNoAudio
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile(audioField)
	if err != nil {
		return models.AudioUpload{}, errNoAudio
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.AudioUpload{}, err
	}

	return models.AudioUpload{
		Content:     content,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

// fail maps a processing error to its response. Only provider messages reach
// the caller; everything else is logged and replaced by a generic message.
func (h *RecognizeHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var perr *ports.ProviderError
	switch {
	case errors.As(err, &perr):
		h.observe(ports.OutcomeProvider)
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "speech provider error",
			Fields:  map[string]any{"code": perr.Code, "path": r.URL.Path},
			Error:   err,
		})
		writeError(w, http.StatusInternalServerError, msgProviderPrefix+perr.Message)

	default:
		h.observe(ports.OutcomeUnknown)
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "speech recognition failed",
			Fields:  map[string]any{"path": r.URL.Path},
			Error:   err,
		})
		writeError(w, http.StatusInternalServerError, msgUnknown)
	}
}

func (h *RecognizeHandler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.Observe(outcome)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
