package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// DefaultConsoleSize is the number of messages the server console keeps
const DefaultConsoleSize = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent render messages for /api/console
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	size     int
}

// NewConsole creates a console holding at most size messages
func NewConsole(size int) *Console {
	if size < 1 {
		size = 1
	}
	return &Console{size: size}
}

// Add appends a message, dropping the oldest when full
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msg)
	if over := len(c.messages) - c.size; over > 0 {
		c.messages = append([]ConsoleMessage(nil), c.messages[over:]...)
	}
}

// Messages returns a copy of the buffered messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage{}, c.messages...)
}

// WebLogger implements core.Logger by recording messages on a console
type WebLogger struct {
	renderID string
	console  *Console
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, console *Console) core.Logger {
	return &WebLogger{
		renderID: renderID,
		console:  console,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Printf("[%s] %s", wl.renderID, message)

	if wl.console != nil {
		wl.console.Add(ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		})
	}
}
