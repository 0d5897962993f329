package handler

import "github.com/gin-gonic/gin"

// defaultUser backs single-user deployments where the gateway in front of
// this service does not inject an identity header.
const defaultUser = "default"

// userFromContext resolves the calendar owner. Authentication happens
// upstream; the trusted proxy forwards the identity in X-User-ID.
func userFromContext(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return defaultUser
}
