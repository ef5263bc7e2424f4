package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/toyreact/internal/config"
	"github.com/vango-dev/toyreact/internal/errors"
	"github.com/vango-dev/toyreact/pkg/host/memhost"
	"github.com/vango-dev/toyreact/pkg/vdom"
)

// Options configures a Server.
type Options struct {
	// Config supplies the inspector settings. Defaults to
	// config.New().
	Config *config.Config

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry receives renderer metrics. Defaults to a fresh registry.
	Registry *prometheus.Registry
}

// Server holds one mounted tree and serves it over HTTP.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	stream   *Stream

	mu        sync.Mutex
	doc       *memhost.Document
	container *memhost.Node
	root      *vdom.Root
	pending   []vdom.Record
}

// EventResult is the reply to a dispatched event.
type EventResult struct {
	Node      int        `json:"node"`
	Event     string     `json:"event"`
	Listeners int        `json:"listeners"`
	Stats     vdom.Stats `json:"stats"`
}

// New mounts the tree built by build and returns a server for it.
func New(build func() *vdom.VNode, opts Options) (*Server, error) {
	if opts.Config == nil {
		opts.Config = config.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		cfg:      opts.Config,
		logger:   opts.Logger,
		registry: opts.Registry,
		stream:   NewStream(opts.Config.Inspect.AllowOrigins, opts.Logger),
		doc:      memhost.NewDocument(),
	}
	s.container = s.doc.NewElement("main")

	renderOpts := []vdom.Option{
		vdom.WithLogger(s.logger),
		vdom.WithKeepStaleChildren(s.cfg.Render.KeepStaleChildren),
		vdom.WithObserver(func(rec vdom.Record) {
			s.pending = append(s.pending, rec)
		}),
	}
	if s.cfg.Metrics.Enabled {
		m := vdom.NewMetrics(
			vdom.WithRegistry(s.registry),
			vdom.WithNamespace(s.cfg.Metrics.Namespace),
		)
		renderOpts = append(renderOpts, vdom.WithMetrics(m))
	}

	root, err := vdom.Mount(s.doc, build(), s.container, renderOpts...)
	if err != nil {
		return nil, err
	}
	s.root = root
	s.pending = nil
	return s, nil
}

// Root returns the mounted tree.
func (s *Server) Root() *vdom.Root { return s.root }

// Stream returns the patch record stream.
func (s *Server) Stream() *Stream { return s.stream }

// Snapshot serializes the container's children.
func (s *Server) Snapshot(opts memhost.HTMLOptions) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for i, c := range s.container.Children() {
		if i > 0 && opts.Pretty {
			b.WriteByte('\n')
		}
		_ = memhost.WriteHTML(&b, c, opts)
	}
	return b.String()
}

// Dispatch fires event on the element with the given node id and publishes
// the records it produced.
func (s *Server) Dispatch(id int, event string, payload any) (EventResult, error) {
	s.mu.Lock()
	target := s.container.FindByID(id)
	if target == nil || target.Type() != memhost.ElementNode {
		s.mu.Unlock()
		return EventResult{}, errors.New("E404").WithDetailf("no element with node id %d", id)
	}

	before := s.root.Stats()
	ran, err := target.Dispatch(event, payload)
	delta := s.root.Stats().Sub(before)
	records := s.pending
	s.pending = nil
	s.mu.Unlock()

	if err != nil {
		return EventResult{}, errors.New("E404").Wrap(err)
	}
	if ran == 0 {
		return EventResult{}, errors.New("E404").
			WithDetailf("<%s> #%d has no %q listener", target.Tag(), id, event)
	}

	s.stream.Publish(records, FlushMessage{Event: event, Node: id, Stats: delta})
	s.logger.Info("event dispatched",
		"node", id,
		"event", event,
		"records", len(records),
		"replaced", delta.Replaced,
	)
	return EventResult{Node: id, Event: event, Listeners: ran, Stats: delta}, nil
}

// Handler returns the inspector's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/snapshot", s.handleSnapshot)
	r.Post("/events/{node}/{event}", s.handleEvent)
	r.Get("/ws", s.stream.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves Handler on the configured address until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return errors.New("E402").Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves Handler on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("inspector listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.New("E402").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	s.stream.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E402").Wrap(err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	body := s.Snapshot(memhost.HTMLOptions{NodeIDs: true})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, html.EscapeString(s.title()), body)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.Snapshot(memhost.HTMLOptions{Pretty: pretty})))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "node"))
	if err != nil {
		http.Error(w, "node id must be an integer", http.StatusBadRequest)
		return
	}

	var payload any
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "payload must be JSON", http.StatusBadRequest)
			return
		}
	}

	res, err := s.Dispatch(id, chi.URLParam(r, "event"), payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// logRequests logs each request like middleware.Logger, through slog.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) title() string {
	if s.cfg.Name != "" {
		return s.cfg.Name
	}
	return "toyreact inspector"
}

// indexPage wraps the snapshot. Clicking an element posts a click event
// for it and reloads the page.
const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<main id="root">%s</main>
<script>
document.getElementById('root').addEventListener('click', function(e) {
    var el = e.target.closest('[data-node]');
    if (!el) return;
    fetch('/events/' + el.dataset.node + '/click', {method: 'POST'}).then(function() {
        location.reload();
    });
});
</script>
</body>
</html>
`
