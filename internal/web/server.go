// Package web exposes a minimal status page and an SSE stream of journaled
// signal events.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bar-oss/ethsentry/internal/domain"
)

const journalPollInterval = 2 * time.Second

type signalEventReader interface {
	EventsAfter(index uint64) ([]domain.SignalEventRecord, error)
}

// Server exposes HTTP endpoints serving the status page and an SSE stream.
type Server struct {
	Addr    string
	Journal signalEventReader
	Logger  *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, journal signalEventReader, logger *zap.Logger) *Server {
	return &Server{Addr: addr, Journal: journal, Logger: logger}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/signals/stream", s.handleSignalStream)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleSignalStream(w http.ResponseWriter, r *http.Request) {
	if s.Journal == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "signal journal not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeat every 30s so proxies keep the connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(journalPollInterval)
	defer pollTicker.Stop()

	lastIndex := uint64(0)
	sendEvents := func() error {
		records, err := s.Journal.EventsAfter(lastIndex)
		if err != nil {
			return err
		}
		for _, record := range records {
			payload, err := json.Marshal(record.Event)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "event: signal\n")
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
			lastIndex = record.Index
		}
		return nil
	}

	if err := sendEvents(); err != nil {
		http.Error(w, "failed to load signal events", http.StatusInternalServerError)
		s.Logger.Error("signal stream initial load failed", zap.Error(err))
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendEvents(); err != nil {
				s.Logger.Warn("signal stream poll failed", zap.Error(err))
			}
		}
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ethsentry</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; margin: 2em; }
h1 { color: #7d56f4; }
li { margin: 0.3em 0; }
.long { color: #73f59f; }
.short { color: #f47d7d; }
</style>
</head>
<body>
<h1>ethsentry</h1>
<p>Emitted signals:</p>
<ul id="signals"></ul>
<script>
const list = document.getElementById('signals');
const source = new EventSource('/signals/stream');
source.addEventListener('signal', (e) => {
  const event = JSON.parse(e.data);
  const item = document.createElement('li');
  item.className = event.signal === 'GO LONG' ? 'long' : 'short';
  item.textContent = event.created_at + ' ' + event.pair + ' ' + event.signal + ' @ ' + event.price;
  list.prepend(item);
});
</script>
</body>
</html>
`
