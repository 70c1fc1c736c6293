package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/osse101/NotionPet_Go/internal/logger"
)

var streamHeaders = map[string]string{
	"Content-Type":      "text/event-stream",
	"Cache-Control":     "no-cache",
	"Connection":        "keep-alive",
	"X-Accel-Buffering": "no",
}

// Handler streams the authenticated user's pet events until the request ends
// or the hub stops.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, ok := logger.UserIDFromContext(ctx)
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		types := parseTypes(r.URL.Query().Get(QueryParamTypes))
		client := hub.Register(userID, types)
		if client == nil {
			http.Error(w, ErrMsgHubStopped, http.StatusServiceUnavailable)
			return
		}
		log := logger.FromContext(ctx).With("client_id", client.ID)
		log.Info(LogMsgClientConnected, "filters", types, "user_tabs", hub.UserClientCount(userID))
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected)
		}()

		for k, v := range streamHeaders {
			w.Header().Set(k, v)
		}
		stream := &stream{w: w, flusher: flusher}

		hello := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]interface{}{"client_id": client.ID, "filters": types},
		}
		if stream.send(hello) != nil {
			return
		}

		keepalive := time.NewTicker(KeepaliveInterval)
		defer keepalive.Stop()
		for {
			var evt Event
			select {
			case <-ctx.Done():
				return
			case next, open := <-client.EventChannel:
				if !open {
					return
				}
				evt = next
			case now := <-keepalive.C:
				evt = Event{Type: EventTypeKeepalive, Timestamp: now.Unix()}
			}
			if err := stream.send(evt); err != nil {
				log.Warn(LogMsgWriteError, "type", evt.Type, "error", err)
				return
			}
		}
	}
}

func parseTypes(raw string) []string {
	if raw == "" {
		return nil
	}
	var types []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

type stream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s *stream) send(evt Event) error {
	msg, err := FormatSSEMessage(evt)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(msg); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
