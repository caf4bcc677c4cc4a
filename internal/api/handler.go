package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/eugenenazirov/settings-provider/internal/provider"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// SettingsReader is the subset of the provider used by the HTTP handlers.
type SettingsReader interface {
	Setting(key string) (string, error)
	DBConnectionInformation(name string) (provider.DBConnectionInformation, error)
}

// Handler exposes validated settings over HTTP.
type Handler struct {
	settings SettingsReader

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(settings SettingsReader, opts ...HandlerOption) *Handler {
	h := &Handler{
		settings: settings,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	keys := provider.KnownSettings()
	resp := settingsResponse{
		Settings:  make([]settingResponse, 0, len(keys)),
		CheckedAt: h.clock(),
	}

	for _, key := range keys {
		item := settingResponse{Key: key}
		value, err := h.settings.Setting(key)
		if err != nil {
			item.Error = err.Error()
			if kind := provider.KindOf(err); kind != 0 {
				item.Kind = kind.String()
			}
		} else {
			item.Value = value
		}
		resp.Settings = append(resp.Settings, item)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value, err := h.settings.Setting(key)
	if err != nil {
		if errors.Is(err, provider.ErrUnknownSetting) {
			writeError(w, http.StatusNotFound, "Unknown setting", err.Error(),
				fmt.Sprintf("Known settings: %v", provider.KnownSettings()))
			return
		}
		writeSettingError(w, key, err)
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

func (h *Handler) handleGetConnection(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	info, err := h.settings.DBConnectionInformation(name)
	if err != nil {
		writeSettingError(w, name, err)
		return
	}

	// the connection string may carry credentials and is never echoed
	writeJSON(w, http.StatusOK, connectionResponse{
		Name:         info.Name,
		ProviderName: info.ProviderName,
	})
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type settingsResponse struct {
	Settings  []settingResponse `json:"settings"`
	CheckedAt time.Time         `json:"checkedAt"`
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

type connectionResponse struct {
	Name         string `json:"name"`
	ProviderName string `json:"providerName"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Key        string `json:"key,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

// writeSettingError maps configuration errors to 404 (missing) or 422
// (present but invalid); anything else is an internal error.
func writeSettingError(w http.ResponseWriter, key string, err error) {
	kind := provider.KindOf(err)
	if kind == 0 {
		writeInternalError(w, err)
		return
	}

	status := http.StatusUnprocessableEntity
	if kind == provider.KindMissing {
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{
		Error:   "Invalid configuration",
		Details: err.Error(),
		Key:     key,
		Kind:    kind.String(),
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
