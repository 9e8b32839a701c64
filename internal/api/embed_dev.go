//go:build dev

package api

import (
	"net/http"
	"os"
)

// devDistEnvVar points dev builds at a frontend directory on disk.
const devDistEnvVar = "SWATCH_DIST"

// StaticHandler serves the frontend from disk so edits show up on reload
// without rebuilding the binary.
func (h *Handler) StaticHandler() http.Handler {
	dir := os.Getenv(devDistEnvVar)
	if dir == "" {
		dir = "internal/api/dist"
	}
	return http.FileServer(http.Dir(dir))
}
