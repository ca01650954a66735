package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"smarthealth/internal/core/services"
	"smarthealth/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DisplayHandler handles the public waiting-room display endpoints
type DisplayHandler struct {
	tokenService *services.TokenService
	hub          *services.LiveHub
}

// NewDisplayHandler creates a new display handler
func NewDisplayHandler(tokenService *services.TokenService, hub *services.LiveHub) *DisplayHandler {
	return &DisplayHandler{
		tokenService: tokenService,
		hub:          hub,
	}
}

// NowServing returns the token currently at the counter
// @Summary Now serving
// @Description Return the most recently called or serving token for a department
// @Tags Display
// @Produce json
// @Param department_id query int true "Department ID"
// @Success 200 {object} response.Response
// @Router /display/now-serving [get]
func (h *DisplayHandler) NowServing(c *fiber.Ctx) error {
	departmentID := uint(c.QueryInt("department_id", 0))

	token, err := h.tokenService.NowServing(c.Context(), departmentID)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get now serving")
	}
	return response.Success(c, "Now serving retrieved", token)
}

// Board returns today's queue for the waiting-room screen
// @Summary Display board
// @Description Today's tokens for a department, priority first then oldest first
// @Tags Display
// @Produce json
// @Param department_id query int true "Department ID"
// @Success 200 {object} response.Response
// @Router /display/board [get]
func (h *DisplayHandler) Board(c *fiber.Ctx) error {
	departmentID := uint(c.QueryInt("department_id", 0))

	tokens, err := h.tokenService.ListTokens(c.Context(), departmentID, "")
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get display board")
	}
	return response.Success(c, "Display board retrieved", tokens)
}

// Events streams live queue updates over SSE
// @Summary Live queue events
// @Description Server-sent events stream; every queue change is pushed to all connected clients
// @Tags Display
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /display/events [get]
func (h *DisplayHandler) Events(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")
	c.Set("Access-Control-Allow-Origin", "*")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		client := h.hub.Register()
		defer h.hub.Unregister(client.ID)

		fmt.Fprintf(w, "event: connected\ndata: {\"client_id\":\"%s\"}\n\n", client.ID)
		if err := w.Flush(); err != nil {
			return
		}

		heartbeat := time.NewTicker(30 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case event, ok := <-client.Channel:
				if !ok {
					return
				}
				writeLiveEvent(w, event)
				if err := w.Flush(); err != nil {
					log.Printf("📡 SSE client disconnected: %s", client.ID)
					return
				}

			case <-heartbeat.C:
				fmt.Fprintf(w, ": heartbeat\n\n")
				if err := w.Flush(); err != nil {
					log.Printf("📡 SSE client disconnected: %s", client.ID)
					return
				}
			}
		}
	})

	return nil
}

// writeLiveEvent writes a formatted SSE event to the writer
func writeLiveEvent(w *bufio.Writer, event services.LiveEvent) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		log.Printf("⚠️ SSE payload marshal error: %v", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
}
