package ws

import (
	"net/http"

	"github.com/linguoquest/linguoquest/internal/metrics"
)

// Routes mounts the websocket endpoint with health and metrics.
func Routes(h *Handler, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}
	return mux
}
