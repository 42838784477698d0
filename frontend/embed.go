package frontend

import (
	"embed"
	"io/fs"
	"net/http"
)

// FS embeds the dashboard UI
//
//go:embed all:dist
var FS embed.FS

// GetHTTPFS returns the embedded frontend filesystem for HTTP serving
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "dist")
	if err != nil {
		return nil, err
	}

	if !isFrontendBuilt(sub) {
		return nil, &fs.PathError{Op: "stat", Path: "index.html", Err: fs.ErrNotExist}
	}

	return http.FS(sub), nil
}

// isFrontendBuilt checks for index.html as the marker of a usable UI
func isFrontendBuilt(fsys fs.FS) bool {
	_, err := fs.Stat(fsys, "index.html")
	return err == nil
}
