package layout

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"
	"github.com/google/uuid"

	"github.com/byhongda/xdot/pkg/cache"
	apperrors "github.com/byhongda/xdot/pkg/errors"
	"github.com/byhongda/xdot/pkg/scene"
)

// FormatXDot asks the engine for DOT text annotated with drawing
// directives.
const FormatXDot = graphviz.Format("xdot")

// engineName keys the cache; only the dot engine is wired today.
const engineName = "dot"

// cacheTTL bounds how long annotated layouts live in shared backends.
const cacheTTL = 24 * time.Hour

// Engine runs Graphviz layouts and loads the results. Annotated layout
// text is cached by source hash, so reopening the same file skips the
// layout run entirely.
type Engine struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewEngine creates an engine backed by the given cache. Pass a
// NullCache to disable caching.
func NewEngine(c cache.Cache, logger *log.Logger) *Engine {
	return &Engine{cache: c, logger: logger}
}

// Result is one finished layout run.
type Result struct {
	Graph *scene.Graph
	ID    string
	Err   error
}

// Layout lays out the DOT source and returns the loaded scene plus a
// generation id. The id changes on every call, cached or not; callers
// use it to tell scenes apart without comparing graphs.
func (e *Engine) Layout(ctx context.Context, src []byte) (*scene.Graph, string, error) {
	key := cache.LayoutKey(engineName, src)

	annotated, hit, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("cache read failed", "error", err)
		hit = false
	}
	if !hit {
		annotated, err = e.run(ctx, src)
		if err != nil {
			return nil, "", err
		}
		if err := e.cache.Set(ctx, key, annotated, cacheTTL); err != nil {
			e.logger.Warn("cache write failed", "error", err)
		}
	}

	g, err := Load(annotated, e.logger)
	if err != nil {
		if hit {
			// A stale or corrupt cache entry should not poison the key.
			_ = e.cache.Delete(ctx, key)
		}
		return nil, "", err
	}
	return g, uuid.NewString(), nil
}

// Submit runs Layout on its own goroutine and delivers the result on
// the returned channel. The channel is buffered, so an abandoned
// submission leaks nothing.
func (e *Engine) Submit(ctx context.Context, src []byte) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		g, id, err := e.Layout(ctx, src)
		ch <- Result{Graph: g, ID: id, Err: err}
	}()
	return ch
}

// Render lays out the source and renders it straight to an export
// format (SVG, PNG), bypassing the scene model.
func (e *Engine) Render(ctx context.Context, src []byte, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLayoutFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDot, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLayoutFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

// run produces the annotated layout text for the source.
func (e *Engine) run(ctx context.Context, src []byte) ([]byte, error) {
	start := time.Now()
	annotated, err := e.Render(ctx, src, FormatXDot)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("layout complete", "bytes", len(annotated), "duration", time.Since(start))
	return annotated, nil
}
