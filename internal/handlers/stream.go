package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"nushoplah/internal/models"
	"nushoplah/internal/stream"
	"nushoplah/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const streamKeepAlive = 25 * time.Second

// StreamHandler serves the live-update feed over server-sent events. Each
// authenticated account gets its own topic, so a connection only ever sees
// its own updates.
type StreamHandler struct {
	broker *stream.Broker
}

func NewStreamHandler(broker *stream.Broker) *StreamHandler {
	return &StreamHandler{broker: broker}
}

// Feed subscribes the connection to the caller's topic and pushes events
// until the client disconnects. Keep-alive comments hold the connection
// open through idle proxies.
func (h *StreamHandler) Feed(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	topic := stream.UserTopic(claims.UserID)
	if claims.Role == models.RoleSeller {
		topic = stream.SellerTopic(claims.UserID)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	events, cancel := h.broker.Subscribe(topic)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(streamKeepAlive)
		defer ticker.Stop()

		for {
			select {
			case evt, open := <-events:
				if !open {
					return
				}
				if err := writeEvent(w, evt); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, evt stream.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Kind, data); err != nil {
		return err
	}
	return w.Flush()
}
