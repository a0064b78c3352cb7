package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/waypath/go-waypath/pkg/hub"
)

// handleStatus returns the device status.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.RLock()
	status := Status{
		SessionID:        s.sessionID,
		Running:          s.running,
		HapticsAvailable: s.hapticsAvailable,
	}
	s.mu.RUnlock()

	status.Clients = s.stateHub.ClientCount()
	status.Obstacle = s.disp.Latest()
	return c.JSON(status)
}

// handleState returns the latest obstacle snapshot.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.disp.Latest())
}

// handleGetLogs returns the buffered log entries.
func (s *Server) handleGetLogs(c *fiber.Ctx) error {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	return c.JSON(s.logs)
}

// handleStateWS streams obstacle snapshots to a dashboard client.
func (s *Server) handleStateWS(c *websocket.Conn) {
	client := hub.NewClient(s.stateHub, c)
	client.Run()
}
