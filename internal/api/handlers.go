// Package api exposes the HTTP surface: subscription intake,
// confirmation, newsletter publishing and health.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/ignite/newsletter/internal/config"
	"github.com/ignite/newsletter/internal/service/newsletter"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// Handlers holds all HTTP request handlers and their dependencies
type Handlers struct {
	subscriptions *subscription.Service
	newsletters   *newsletter.Service
	publish       config.PublishConfig
	db            *sql.DB
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	subscriptions *subscription.Service,
	newsletters *newsletter.Service,
	publish config.PublishConfig,
	db *sql.DB,
) *Handlers {
	return &Handlers{
		subscriptions: subscriptions,
		newsletters:   newsletters,
		publish:       publish,
		db:            db,
	}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
