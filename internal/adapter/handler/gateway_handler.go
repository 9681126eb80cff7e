package handler

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// GatewayHandler is the edge surface: home, health, and a thin proxy that
// forwards user lookups to the identity service.
type GatewayHandler struct {
	identityURL string
	client      *http.Client
	log         *zap.Logger
}

func NewGatewayHandler(identityURL string, log *zap.Logger) *GatewayHandler {
	return &GatewayHandler{
		identityURL: identityURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

func (h *GatewayHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "Hello from the minimart gateway!")
}

func (h *GatewayHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetUser relays status and body from the identity service unchanged.
func (h *GatewayHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	url := h.identityURL + "/users/" + r.PathValue("id")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, url, nil)
	if err != nil {
		h.log.Error("build upstream request failed", zap.String("url", url), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Warn("identity service unreachable", zap.String("url", url), zap.Error(err))
		writeError(w, http.StatusBadGateway, "user service unreachable")
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}
