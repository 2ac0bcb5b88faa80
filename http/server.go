package http

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/toplist"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forcibly closed.
const ShutdownTimeout = 5 * time.Second

// Server serves the Stremio addon protocol for the chart catalog.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *http.ServeMux

	// Addr is the bind address, e.g. ":7000".
	Addr string

	// Manifest is served at /manifest.json and decides which catalogs exist.
	Manifest *toplist.Manifest

	// Charts loads the chart backing the catalog; ChartURL is the page loaded.
	Charts   toplist.ChartLoader
	ChartURL string

	// Builder turns chart candidates into metas.
	Builder toplist.MetaBuilder

	// Logger receives one record per request. Defaults to discarding.
	Logger *slog.Logger
}

// NewServer returns a new Server with routes registered.
func NewServer() *Server {
	s := &Server{
		router:   http.NewServeMux(),
		Manifest: toplist.NewManifest("", "dev"),
		ChartURL: toplist.DefaultChartURL,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.server = &http.Server{Handler: s}

	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /configure", s.handleConfigure)
	s.router.HandleFunc("GET /manifest.json", s.handleManifest)
	s.router.HandleFunc("GET /catalog/{type}/{file}", s.handleCatalog)
	s.router.HandleFunc("GET /catalog/{type}/{id}/{extra}", s.handleCatalogExtra)
	s.router.HandleFunc("/", s.handleNotFound)

	return s
}

// Open begins listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	addr := s.ln.Addr().(*net.TCPAddr)
	host := "localhost"
	if addr.IP != nil && !addr.IP.IsUnspecified() {
		host = addr.IP.String()
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(addr.Port))
}

// ServeHTTP adds CORS headers required by Stremio web players and logs the
// request before delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	rec.Header().Set("Access-Control-Allow-Origin", "*")
	rec.Header().Set("Access-Control-Allow-Headers", "*")
	rec.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	if r.Method == http.MethodOptions {
		rec.WriteHeader(http.StatusNoContent)
	} else {
		s.router.ServeHTTP(rec, r)
	}

	s.Logger.Info("http request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(begin),
	)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/configure", http.StatusTemporaryRedirect)
}

var configureTmpl = template.Must(template.New("configure").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Name}}</title></head>
<body>
<h1>{{.Name}}</h1>
<p>{{.Description}}</p>
<h2>Installation</h2>
<p>Copy this URL and add it to Stremio:</p>
<pre><code>{{.ManifestURL}}</code></pre>
<p><a href="{{.StremioURL}}">Install in Stremio</a> &middot; <a href="/manifest.json" target="_blank">View manifest</a></p>
</body>
</html>
`))

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	manifestURL := requestBaseURL(r) + "/manifest.json"
	data := struct {
		Name        string
		Description string
		ManifestURL string
		StremioURL  template.URL
	}{
		Name:        s.Manifest.Name,
		Description: s.Manifest.Description,
		ManifestURL: manifestURL,
		StremioURL:  template.URL("stremio://" + strings.TrimPrefix(strings.TrimPrefix(manifestURL, "https://"), "http://")),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := configureTmpl.Execute(w, data); err != nil {
		s.Logger.Error("render configure page", "err", err)
	}
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Manifest)
}

// catalogResponse is the envelope Stremio expects for catalog requests.
type catalogResponse struct {
	Metas []*toplist.Meta `json:"metas"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(r.PathValue("file"), ".json")
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	s.serveCatalog(w, r, r.PathValue("type"), id, 0)
}

// handleCatalogExtra serves paginated requests such as
// /catalog/movie/imdb_top/skip=100.json.
func (s *Server) handleCatalogExtra(w http.ResponseWriter, r *http.Request) {
	extra, ok := strings.CutSuffix(r.PathValue("extra"), ".json")
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	values, err := url.ParseQuery(extra)
	if err != nil {
		s.writeError(w, toplist.Errorf(toplist.EINVALID, "invalid catalog extra %q", extra))
		return
	}
	skip := 0
	if v := values.Get("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil || skip < 0 {
			s.writeError(w, toplist.Errorf(toplist.EINVALID, "invalid skip %q", v))
			return
		}
	}
	s.serveCatalog(w, r, r.PathValue("type"), r.PathValue("id"), skip)
}

func (s *Server) serveCatalog(w http.ResponseWriter, r *http.Request, typ, id string, skip int) {
	if !s.Manifest.HasCatalog(typ, id) {
		writeJSON(w, http.StatusOK, catalogResponse{Metas: []*toplist.Meta{}})
		return
	}

	snapshot, err := s.Charts.LoadChart(r.Context(), s.ChartURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	metas := s.Builder.Build(snapshot.Candidates)
	if skip >= len(metas) {
		metas = []*toplist.Meta{}
	} else {
		metas = metas[skip:]
	}
	writeJSON(w, http.StatusOK, catalogResponse{Metas: metas})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, toplist.Errorf(toplist.ENOTFOUND, "not found: %s", r.URL.Path))
}

// writeError writes err as JSON with a status derived from its code.
// Internal errors are logged and their details hidden from the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code, message := toplist.ErrorCode(err), toplist.ErrorMessage(err)
	if code == toplist.EINTERNAL {
		s.Logger.Error("internal error", "err", err)
	}
	writeJSON(w, ErrorStatusCode(code), map[string]string{"error": message})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	toplist.ECONFLICT:  http.StatusConflict,
	toplist.EINVALID:   http.StatusBadRequest,
	toplist.ENOTFOUND:  http.StatusNotFound,
	toplist.ETRANSPORT: http.StatusBadGateway,
	toplist.EINTERNAL:  http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestBaseURL reconstructs the public base URL of a request, honoring
// X-Forwarded-Proto from a TLS-terminating proxy.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
