// Package web provides a real-time dashboard for waypath: a status API
// plus a websocket stream of obstacle snapshots for sighted companions
// and debugging.
package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/waypath/go-waypath/pkg/alerts"
	"github.com/waypath/go-waypath/pkg/hub"
)

// Status is the device state reported by the dashboard API.
type Status struct {
	SessionID        string          `json:"session_id"`
	Running          bool            `json:"running"`
	HapticsAvailable bool            `json:"haptics_available"`
	Clients          int             `json:"clients"`
	Obstacle         alerts.Snapshot `json:"obstacle"`
}

// LogEntry represents a log line for the dashboard.
type LogEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, alert, error
	Message string `json:"message"`
}

// Server is the dashboard server. It implements alerts.Observer so the
// dispatcher can push snapshots straight into the websocket hub.
type Server struct {
	app  *fiber.App
	port string
	disp *alerts.Dispatcher

	// State
	mu               sync.RWMutex
	sessionID        string
	running          bool
	hapticsAvailable bool

	// Log buffer (last 200 entries)
	logs   []LogEntry
	logsMu sync.RWMutex

	// Hub for websocket broadcast
	stateHub *hub.Hub
}

// NewServer creates a dashboard server over the given dispatcher.
func NewServer(port string, disp *alerts.Dispatcher) *Server {
	s := &Server{
		port:     port,
		disp:     disp,
		logs:     make([]LogEntry, 0, 200),
		stateHub: hub.New("state"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Waypath Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/state", s.handleState)
	api.Get("/logs", s.handleGetLogs)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// Start runs the dashboard server. Blocks until shutdown.
func (s *Server) Start() error {
	go s.stateHub.Run()
	return s.app.Listen(":" + s.port)
}

// Shutdown stops the dashboard server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// ObstacleUpdate implements alerts.Observer: the snapshot is handed off
// to the hub's broadcast goroutine, never touched by dashboard clients
// on the frame-processing goroutine.
func (s *Server) ObstacleUpdate(snap alerts.Snapshot) {
	s.stateHub.BroadcastJSON(snap)
}

// SetSession updates the session identity shown by the status API.
func (s *Server) SetSession(id string, running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = id
	s.running = running
}

// SetHapticsAvailable updates the haptics availability flag.
func (s *Server) SetHapticsAvailable(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hapticsAvailable = ok
}

// AddLog appends a log entry for the dashboard.
func (s *Server) AddLog(logType, format string, args ...any) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Type:    logType,
		Message: fmt.Sprintf(format, args...),
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > 200 {
		s.logs = s.logs[len(s.logs)-200:]
	}
	s.logsMu.Unlock()
}
