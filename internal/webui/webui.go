// Package webui embeds the browser remote.
//
// The static assets are compiled into the binary so the server ships as a
// single executable - point any browser on the LAN at it and the remote
// works without an install step.
package webui

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Handler serves the embedded browser remote. Unknown paths fall through
// to index.html so the page owns its own routing.
func Handler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Embed path is fixed at compile time; this cannot fail at runtime
		panic(err)
	}

	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			if _, err := fs.Stat(sub, r.URL.Path[1:]); err != nil {
				http.ServeFileFS(w, r, sub, "index.html")
				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}
