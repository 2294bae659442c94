package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vino121095/valenmart-storefront/internal/storefront/app/notifications"
)

// NotificationStream pushes a fresh notification list as a server-sent event
// on every poll. The poller lives exactly as long as the client connection.
func (h *Handler) NotificationStream(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerParam(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", "")
		return
	}

	// Latest snapshot wins; the poller must never block on a slow client.
	updates := make(chan notifications.Snapshot, 1)
	push := func(s notifications.Snapshot) {
		for {
			select {
			case updates <- s:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	}

	poller := notifications.NewPoller(h.svc.NotificationFetcher(), customerID, h.pollInterval, push)
	if err := poller.Start(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer poller.Stop()

	// The stream outlives the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			if err := writeEvent(w, snap); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, snap notifications.Snapshot) error {
	event, payload := "notifications", any(mapNotifications(snap.Notifications, snap.Unread))
	if snap.Err != nil {
		event, payload = "error", ErrorResponse{Error: "backend_error", Message: "Failed to load notifications"}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
