package api

import (
	"fmt"
	"net/http"

	"github.com/amterp/swatch/internal/model"
)

// GenerateFaviconSVG draws the current color as a rounded square with a dot
// in its contrast color.
func GenerateFaviconSVG(current, contrast model.Color) string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32" rx="6" fill="%s"/><circle cx="16" cy="16" r="5" fill="%s"/></svg>`,
		current.Hex(), contrast.Hex(),
	)
}

// GetFavicon serves a favicon tinted with the current color.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	snap := h.controller.Snapshot()
	svg := GenerateFaviconSVG(snap.Current, snap.LabelColor())

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(svg))
}
