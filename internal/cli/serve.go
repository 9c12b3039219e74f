package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/byhongda/xdot/pkg/cache"
	apperrors "github.com/byhongda/xdot/pkg/errors"
	"github.com/byhongda/xdot/pkg/layout"
	"github.com/byhongda/xdot/pkg/scene"
)

// serveCommand creates the serve command, exposing rendered views of one
// graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve rendered views of a graph over HTTP",
		Long:  `Serve lays out a DOT graph and exposes it over HTTP: /graph.svg and /graph.png for rendered images, /graph.xdot for the annotated layout text, and /urls for the clickable regions as JSON.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			ctx := cmd.Context()

			src, name, err := readSource(args)
			if err != nil {
				return err
			}

			store, err := c.serveCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()
			engine := layout.NewEngine(store, c.Logger)

			// Validate the graph up front; a broken input should fail the
			// command, not every request.
			prog := newProgress(c.Logger)
			g, generation, err := engine.Layout(ctx, src)
			if err != nil {
				return err
			}
			prog.done("Graph laid out")

			if addr == "" {
				addr = c.Config.ListenAddr
			}
			gs := &graphServer{
				engine:     engine,
				src:        src,
				graph:      g,
				generation: generation,
			}

			r := chi.NewRouter()
			r.Use(middleware.Recoverer)
			r.Get("/graph.svg", gs.image(graphviz.SVG, "image/svg+xml"))
			r.Get("/graph.png", gs.image(graphviz.PNG, "image/png"))
			r.Get("/graph.xdot", gs.image(layout.FormatXDot, "text/vnd.graphviz"))
			r.Get("/urls", gs.urls)

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			printInfo("serving %s on http://%s", name, addr)
			printDetail("GET /graph.svg, /graph.png, /graph.xdot, /urls")
			printStats(len(g.Nodes), len(g.Edges))

			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return ctx.Err()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// serveCache picks the serve command's cache backend: Redis when
// configured, so multiple processes share layouts, else the file cache.
func (c *CLI) serveCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisAddr != "" {
		store, err := cache.NewRedisCache(ctx, c.Config.RedisAddr)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeCache, err, "connect to redis at %s", c.Config.RedisAddr)
		}
		return store, nil
	}
	return c.newCache(false)
}

// graphServer serves one loaded graph. The generation id doubles as the
// ETag for every response.
type graphServer struct {
	engine     *layout.Engine
	src        []byte
	graph      *scene.Graph
	generation string
}

// etag handles conditional requests. It reports true when the response
// was already answered with 304.
func (s *graphServer) etag(w http.ResponseWriter, r *http.Request) bool {
	tag := `"` + s.generation + `"`
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (s *graphServer) image(format graphviz.Format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.etag(w, r) {
			return
		}
		data, err := s.engine.Render(r.Context(), s.src, format)
		if err != nil {
			http.Error(w, apperrors.UserMessage(err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}

// urlEntry is one clickable region in graph coordinates.
type urlEntry struct {
	URL string  `json:"url"`
	X1  float64 `json:"x1"`
	Y1  float64 `json:"y1"`
	X2  float64 `json:"x2"`
	Y2  float64 `json:"y2"`
}

func (s *graphServer) urls(w http.ResponseWriter, r *http.Request) {
	if s.etag(w, r) {
		return
	}
	entries := []urlEntry{}
	for _, n := range s.graph.Nodes {
		if n.URL == "" {
			continue
		}
		entries = append(entries, urlEntry{URL: n.URL, X1: n.X1, Y1: n.Y1, X2: n.X2, Y2: n.Y2})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}
