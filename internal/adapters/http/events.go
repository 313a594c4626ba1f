package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  string
}

// StreamManager fans selection results out to the event streams of a session.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Message]struct{} // session -> set of channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Message]struct{}),
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

// Subscribe registers a stream for session. The returned func unsubscribes
// and closes the channel.
func (sm *StreamManager) Subscribe(session string) (chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 10)
	if _, ok := sm.subscribers[session]; !ok {
		sm.subscribers[session] = make(map[chan<- Message]struct{})
	}
	sm.subscribers[session][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[session]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, session)
			}
		}
	}
}

// Broadcast sends msg to every stream of session. Slow clients drop messages.
func (sm *StreamManager) Broadcast(session string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[session] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "session", session)
		}
	}
}

// SubscribeEvents handles GET /events. Without a session it streams reload
// notices from the workspace source; with ?session=ID it streams the
// selections computed for that session.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	var (
		events <-chan Message
		cancel func()
	)
	session := r.URL.Query().Get("session")
	if session == "" {
		reloads, err := s.Workspace.Watch(r.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusNotImplemented)
			return
		}
		ch := make(chan Message)
		go func() {
			defer close(ch)
			for range reloads {
				select {
				case ch <- Message{Event: "reload", Data: "changed"}:
				case <-r.Context().Done():
					return
				}
			}
		}()
		events = ch
	} else {
		ch, unsubscribe := s.Streams.Subscribe(session)
		events, cancel = ch, unsubscribe
		defer cancel()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
