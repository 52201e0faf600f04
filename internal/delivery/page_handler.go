package delivery

import (
	"net/http"
	"os"

	"github.com/Vovarama1992/go-utils/logger"
)

type PageHandler struct {
	indexFile string
	log       *logger.ZapLogger
}

func NewPageHandler(indexFile string, log *logger.ZapLogger) *PageHandler {
	return &PageHandler{
		indexFile: indexFile,
		log:       log,
	}
}

// GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	body, err := os.ReadFile(h.indexFile)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "index page unavailable",
			Fields:  map[string]any{"file": h.indexFile},
			Error:   err,
		})
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}
