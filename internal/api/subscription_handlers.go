package api

import (
	"errors"
	"net/http"

	"github.com/ignite/newsletter/internal/pkg/errchain"
	"github.com/ignite/newsletter/internal/pkg/logger"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// HandleSubscribe accepts a form-encoded subscription request and runs
// the full pending-subscriber workflow.
func (h *Handlers) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")

	if err := h.subscriptions.Subscribe(r.Context(), name, email); err != nil {
		if subscription.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("failed to create subscriber",
			"email", email,
			"cause", errchain.Format(err),
		)
		respondError(w, http.StatusInternalServerError, "failed to create subscriber")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "pending_confirmation"})
}

// HandleConfirm redeems a confirmation token from the emailed link.
func (h *Handlers) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("subscription_token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "missing subscription_token")
		return
	}

	if err := h.subscriptions.Confirm(r.Context(), token); err != nil {
		if errors.Is(err, subscription.ErrUnknownToken) {
			respondError(w, http.StatusBadRequest, "unknown subscription token")
			return
		}
		logger.Error("failed to confirm subscriber", "cause", errchain.Format(err))
		respondError(w, http.StatusInternalServerError, "failed to confirm subscriber")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}
