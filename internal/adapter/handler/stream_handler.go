package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/core/services"
)

const defaultHeartbeat = 15 * time.Second

// StreamHandler serves availability snapshots as server-sent events. Frames
// are unnamed so EventSource delivers them to onmessage.
type StreamHandler struct {
	broadcaster *services.AvailabilityBroadcaster
	heartbeat   time.Duration
	logger      *zerolog.Logger
}

func NewStreamHandler(broadcaster *services.AvailabilityBroadcaster, logger *zerolog.Logger) *StreamHandler {
	return &StreamHandler{broadcaster: broadcaster, heartbeat: defaultHeartbeat, logger: logger}
}

func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// The server-wide write timeout would cut the stream.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := rc.Flush(); err != nil {
		h.logger.Warn().Err(err).Msg("streaming not supported")
		return
	}

	sub := h.broadcaster.Subscribe(r.Context())
	defer sub.Close()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, ok := <-sub.C():
			if !ok {
				return
			}

			payload, err := json.Marshal(snapshot)
			if err != nil {
				h.logger.Error().Err(err).Msg("encode availability snapshot")
				continue
			}

			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
