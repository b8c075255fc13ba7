// Package web embeds the single-page client and serves it with an
// index.html fallback for client-side routes.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

var (
	content    fs.FS
	fileServer http.Handler
)

func init() {
	var err error

	content, err = fs.Sub(staticFS, "static")

	if err != nil {
		panic(err)
	}

	fileServer = http.FileServer(http.FS(content))
}

func Serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path != "/" {
		if f, err := content.Open(path[1:]); err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
	}

	index, err := staticFS.ReadFile("static/index.html")

	if err != nil {
		http.Error(w, "client not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(index)
}
