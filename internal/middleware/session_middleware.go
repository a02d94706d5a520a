package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHeader carries the shopper's session identifier. Each session owns
// its own cart; there is no cross-session sharing.
const SessionHeader = "X-Session-ID"

// sessionKey is the fiber.Ctx locals key the session ID is stored under.
const sessionKey = "session_id"

// Session is a Fiber middleware that resolves the request's session ID. A
// request without one gets a fresh UUID, echoed back in the response header
// so the client can carry it on subsequent requests.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		// Store the session ID in Fiber context for subsequent handlers
		c.Locals(sessionKey, sessionID)
		c.Set(SessionHeader, sessionID)

		// Continue to the next handler
		return c.Next()
	}
}

// SessionID returns the session ID resolved by the Session middleware.
func SessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(sessionKey).(string); ok {
		return id
	}
	return ""
}
