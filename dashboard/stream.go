package dashboard

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

const streamPollInterval = 5 * time.Second

// sseLoop pushes the payload for the lifetime of the request. On a fetch
// error an empty payload is pushed instead of stale data; the loop ends
// with the request context, which is the listener teardown.
func sseLoop(w http.ResponseWriter, r *http.Request, fetch func() (any, error), empty any) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	push := func() {
		payload, err := fetch()
		if err != nil {
			log.Printf("dashboard stream: fetch failed: %v", err)
			payload = empty
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return
		}
		w.Write([]byte("data: "))
		w.Write(data)
		w.Write([]byte("\n\n"))
		flusher.Flush()
	}

	push()
	ticker := time.NewTicker(streamPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			push()
		}
	}
}

// StreamAnalytics pushes the daily analytics range as server-sent events.
func StreamAnalytics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	sseLoop(w, r, func() (any, error) {
		points, err := fetchDailyRange(r.Context(), from, to)
		if err != nil {
			return nil, err
		}
		return points, nil
	}, []any{})
}

// StreamPerformance pushes the content performance singleton.
func StreamPerformance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sseLoop(w, r, func() (any, error) {
		perf, err := fetchPerformance(r.Context())
		if err != nil {
			return nil, err
		}
		return perf, nil
	}, map[string]any{})
}
