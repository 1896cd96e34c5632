package httpx

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"

	"simples-server/mimetypes"
)

// indexFiles are served in place of a listing, first match wins.
var indexFiles = []string{"index.html", "index.htm"}

// Handler answers GET and HEAD requests from a billy filesystem. It only
// reads from fs and types, so one value can serve concurrent requests.
type Handler struct {
	fs     billy.Filesystem
	types  *mimetypes.Table
	logger *log.Logger
}

// NewHandler returns a Handler serving fs with Content-Type taken from
// types. The filesystem is expected to confine paths to the served root,
// see rootfs.New. logger may be nil.
func NewHandler(fs billy.Filesystem, types *mimetypes.Table, logger *log.Logger) *Handler {
	if types == nil {
		types = mimetypes.Default()
	}
	return &Handler{fs: fs, types: types, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.sendError(w, r, http.StatusNotImplemented, fmt.Sprintf("Unsupported method ('%s')", r.Method))
		return
	}

	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
	}
	name := fsName(upath)

	fi, err := h.fs.Stat(name)
	if err != nil {
		h.sendError(w, r, http.StatusNotFound, "File not found")
		return
	}

	if fi.IsDir() {
		if !strings.HasSuffix(upath, "/") {
			h.redirectToDir(w, r, name)
			return
		}
		for _, index := range indexFiles {
			idx := path.Join(name, index)
			if ifi, err := h.fs.Stat(idx); err == nil && ifi.Mode().IsRegular() {
				h.serveFile(w, r, idx, ifi)
				return
			}
		}
		h.serveDir(w, r, name, upath)
		return
	}

	// a trailing slash on a file name is not a directory
	if strings.HasSuffix(upath, "/") {
		h.sendError(w, r, http.StatusNotFound, "File not found")
		return
	}
	h.serveFile(w, r, name, fi)
}

// fsName maps a URL path onto a name relative to the root. Cleaning an
// absolute path drops every ".." that would climb above "/".
func fsName(upath string) string {
	rel := strings.TrimPrefix(path.Clean(upath), "/")
	if rel == "" {
		return "."
	}
	return rel
}

// redirectToDir sends the client to the slash-terminated directory URL.
// The target is rebuilt from the cleaned name so a path like "//host" can
// never become a protocol-relative Location.
func (h *Handler) redirectToDir(w http.ResponseWriter, r *http.Request, name string) {
	target := (&url.URL{Path: "/" + name + "/"}).EscapedPath()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	w.Header().Set("Location", target)
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusMovedPermanently)
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, name string, fi os.FileInfo) {
	f, err := h.fs.Open(name)
	if err != nil {
		h.sendError(w, r, http.StatusNotFound, "File not found")
		return
	}
	defer f.Close()

	// ServeContent keeps a Content-Type that is already set.
	w.Header().Set("Content-Type", h.types.TypeOf(name))
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}

func (h *Handler) serveDir(w http.ResponseWriter, r *http.Request, name, upath string) {
	infos, err := h.fs.ReadDir(name)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("list %q: %v", name, err)
		}
		h.sendError(w, r, http.StatusNotFound, "No permission to list directory")
		return
	}

	entries := make([]listingEntry, 0, len(infos))
	for _, fi := range infos {
		e := listingEntry{name: fi.Name(), dir: fi.IsDir()}
		if fi.Mode()&os.ModeSymlink != 0 {
			e.link = true
			if target, err := h.fs.Stat(path.Join(name, fi.Name())); err == nil {
				e.dir = target.IsDir()
			}
		}
		entries = append(entries, e)
	}

	body, err := renderListing(upath, entries)
	if err != nil {
		h.sendError(w, r, http.StatusInternalServerError, "Cannot render directory listing")
		return
	}
	writeHTML(w, r, http.StatusOK, body)
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, code int, message string) {
	body, err := renderError(code, message)
	if err != nil {
		http.Error(w, message, code)
		return
	}
	writeHTML(w, r, code, body)
}

func writeHTML(w http.ResponseWriter, r *http.Request, code int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}
