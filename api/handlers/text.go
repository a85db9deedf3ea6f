package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"toolbox/api/dto"
	"toolbox/api/validation"
	"toolbox/textstats"
)

const maxTextBody = 1 << 20

type TextHandler struct {
	logger *zap.Logger
}

func NewTextHandler(logger *zap.Logger) *TextHandler {
	return &TextHandler{logger: logger}
}

// WordCount applies the optional action to the text and returns the
// resulting text with its statistics.
func (h *TextHandler) WordCount(w http.ResponseWriter, r *http.Request) {
	var req dto.WordCountRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTextBody)).Decode(&req); err != nil {
			handleError(h.logger, w, r, fmt.Errorf("%w: body: %v", validation.ErrInvalidValue, err))
			return
		}
	} else {
		req.Text = r.FormValue("text")
		req.Action = r.FormValue("action")
	}

	text, err := textstats.Apply(req.Text, textstats.Action(strings.ToLower(req.Action)))
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.WordCountResponse{
		Text:  text,
		Stats: textstats.Analyze(text),
	})
}
