package handlers

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

// PageHandler serves the embedded balance checker page and its assets.
// "/" maps to index.html; anything not in staticFS is a 404.
func PageHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if strings.HasPrefix(path, "/api/") {
			http.NotFound(w, r)
			return
		}

		cleanPath := strings.TrimPrefix(path, "/")
		if cleanPath == "" {
			cleanPath = "index.html"
		}

		f, err := staticFS.Open(cleanPath)
		if err != nil {
			slog.Debug("static asset not found", "path", path)
			http.NotFound(w, r)
			return
		}
		f.Close()

		// Assets are not content-hashed, so always revalidate.
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	}
}
