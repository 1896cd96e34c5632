// Package mimetypes maps file extensions to the Content-Type sent for them.
package mimetypes

import (
	"fmt"
	"mime"
	"path"
	"strings"
)

// OctetStream is returned for extensions nothing knows about.
const OctetStream = "application/octet-stream"

// JavaScript is the type registered for ".js" on top of the defaults.
const JavaScript = "application/javascript"

// builtin is the default table. Values carry no charset parameter so the
// header matches the table exactly.
var builtin = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".css":   "text/css",
	".mjs":   "text/javascript",
	".json":  "application/json",
	".map":   "application/json",
	".txt":   "text/plain",
	".md":    "text/markdown",
	".csv":   "text/csv",
	".xml":   "text/xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".bmp":   "image/bmp",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".svg":   "image/svg+xml",
	".ico":   "image/vnd.microsoft.icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".mp3":   "audio/mpeg",
	".ogg":   "audio/ogg",
	".wav":   "audio/x-wav",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".wasm":  "application/wasm",
	".pdf":   "application/pdf",
	".zip":   "application/zip",
	".tar":   "application/x-tar",
	".gz":    "application/gzip",
	".Z":     "application/octet-stream",
	".bz2":   "application/x-bzip2",
	".xz":    "application/x-xz",
}

// Table is an immutable extension to MIME type mapping. The zero value is
// not usable; build one with New or Default.
type Table struct {
	types map[string]string
}

// New returns the builtin defaults, the ".js" override, and then extra
// layered on top in that order.
func New(extra map[string]string) (*Table, error) {
	t := &Table{types: make(map[string]string, len(builtin)+1+len(extra))}
	for ext, typ := range builtin {
		t.types[ext] = typ
	}
	t.types[".js"] = JavaScript
	for ext, typ := range extra {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return nil, fmt.Errorf("mime extension %q must start with a dot", ext)
		}
		if strings.TrimSpace(typ) == "" {
			return nil, fmt.Errorf("mime type for %q is empty", ext)
		}
		t.types[ext] = typ
	}
	return t, nil
}

// Default is New without any extra entries.
func Default() *Table {
	t, _ := New(nil)
	return t
}

// Lookup returns the type for ext, trying it verbatim and then lower-cased.
func (t *Table) Lookup(ext string) (string, bool) {
	if typ, ok := t.types[ext]; ok {
		return typ, true
	}
	typ, ok := t.types[strings.ToLower(ext)]
	return typ, ok
}

// TypeOf returns the Content-Type for a file name. Extensions missing from
// the table fall back to the host's mime.types, then to OctetStream.
func (t *Table) TypeOf(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return OctetStream
	}
	if typ, ok := t.Lookup(ext); ok {
		return typ
	}
	if typ := mime.TypeByExtension(ext); typ != "" {
		return typ
	}
	return OctetStream
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.types)
}
