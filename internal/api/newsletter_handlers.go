package api

import (
	"encoding/json"
	"net/http"

	"github.com/ignite/newsletter/internal/pkg/errchain"
	"github.com/ignite/newsletter/internal/pkg/logger"
	"github.com/ignite/newsletter/internal/service/newsletter"
)

// publishRequest is the newsletter issue payload.
type publishRequest struct {
	Title   string `json:"title"`
	Content struct {
		HTML string `json:"html"`
		Text string `json:"text"`
	} `json:"content"`
}

// HandlePublish authenticates the caller and fans the issue out to
// every confirmed subscriber. Auth runs before the body is read so an
// anonymous caller learns nothing about the payload contract.
func (h *Handlers) HandlePublish(w http.ResponseWriter, r *http.Request) {
	creds, err := parseBasicAuth(r)
	if err != nil {
		unauthorized(w, err)
		return
	}
	if err := verifyCredentials(creds, h.publish); err != nil {
		unauthorized(w, err)
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	issue := newsletter.Issue{
		Title: req.Title,
		HTML:  req.Content.HTML,
		Text:  req.Content.Text,
	}
	sent, err := h.newsletters.Publish(r.Context(), issue)
	if err != nil {
		logger.Error("newsletter fan-out failed",
			"sent", sent,
			"cause", errchain.Format(err),
		)
		respondError(w, http.StatusInternalServerError, "failed to publish newsletter")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "published",
		"sent":   sent,
	})
}

func unauthorized(w http.ResponseWriter, err error) {
	logger.Warn("rejected newsletter publish", "cause", err.Error())
	w.Header().Set("WWW-Authenticate", `Basic realm="publish"`)
	respondError(w, http.StatusUnauthorized, "unauthorized")
}
