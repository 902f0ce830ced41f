package handler

import (
	"fmt"
	"net/http"
	"strings"

	"esep-backend/internal/events"
	"github.com/go-chi/chi/v5"
)

// EventsHandler streams table-change notifications as Server-Sent Events.
// Clients treat a received table name as a signal to refetch that list
// wholesale; no row data travels on this channel.
type EventsHandler struct {
	Bus *events.Bus
}

func (h EventsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.stream)
}

func (h EventsHandler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	var tables []string
	if raw := r.URL.Query().Get("table"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			tables = append(tables, strings.TrimSpace(t))
		}
	}

	ch, cancel := h.Bus.Subscribe(tables...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case table, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", table)
			flusher.Flush()
		}
	}
}
