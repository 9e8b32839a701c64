//go:build !dev

package api

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
)

//go:embed dist/*
var staticFiles embed.FS

// StaticHandler serves the embedded single-page frontend. Extensionless
// paths get index.html, which is never cached so a new binary's page is
// picked up on reload.
func (h *Handler) StaticHandler() http.Handler {
	fsys, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServerFS(fsys)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(r.URL.Path) == "" {
			r.URL.Path = "/"
			w.Header().Set("Cache-Control", "no-cache")
		}
		fileServer.ServeHTTP(w, r)
	})
}
