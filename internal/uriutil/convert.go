// Package uriutil converts between file:// document URIs and file system
// paths on both POSIX and Windows.
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

const fileScheme = "file"

// PathToURI converts a file system path to a file:// URI. Relative paths are
// made absolute first. Segments are percent-encoded, drive letters gain a
// leading slash (file:///C:/proj) and on Windows UNC paths keep their server
// as the URI host (file://server/share).
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	u := url.URL{Scheme: fileScheme}
	if runtime.GOOS == "windows" && strings.HasPrefix(path, `\\`) {
		host, rest, _ := strings.Cut(filepath.ToSlash(path[2:]), "/")
		u.Host = host
		u.Path = "/" + rest
		return u.String()
	}

	u.Path = filepath.ToSlash(path)
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String()
}

// URIToPath converts a file:// URI to a file system path. URIs that do not
// parse, or are not file URIs, are stripped of any file:// prefix and
// returned as a path.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != fileScheme {
		return fromSlash(strings.TrimPrefix(uri, "file://"))
	}

	if u.Host != "" {
		if runtime.GOOS == "windows" {
			return `\\` + u.Host + filepath.FromSlash(u.Path)
		}
		return u.Host + u.Path
	}
	return fromSlash(u.Path)
}

// fromSlash drops the slash before a drive letter and converts separators.
func fromSlash(p string) string {
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}
