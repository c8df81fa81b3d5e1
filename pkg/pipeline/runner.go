package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/jbass698-121/aveva-diagram-style/pkg/cache"
	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
	"github.com/jbass698-121/aveva-diagram-style/pkg/extract"
	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	gio "github.com/jbass698-121/aveva-diagram-style/pkg/io"
	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
	"github.com/jbass698-121/aveva-diagram-style/pkg/observability"
)

// Runner executes pipeline stages against a cache.
//
// A Runner holds no per-run state, so one value can serve concurrent
// requests with different options.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Extractor *extract.Extractor
}

// NewRunner returns a runner. A nil cache disables caching and a nil keyer
// selects the default key scheme.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		Extractor: extract.New(),
	}
}

// Execute decodes data, lays it out and renders every requested format.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	g, shape, hit, err := r.Decode(ctx, data, opts.Refresh)
	if err != nil {
		return nil, err
	}
	decodeTime := time.Since(start)

	res, err := r.ExecuteGraph(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.Shape = shape
	res.Stats.DecodeTime = decodeTime
	res.CacheInfo.DecodeHit = hit
	return res, nil
}

// ExecuteGraph runs layout and render for an already decoded graph.
func (r *Runner) ExecuteGraph(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	res := &Result{
		Graph: g,
		Stats: Stats{NodeCount: len(g.Nodes), EdgeCount: len(g.Edges), LaneCount: len(g.Lanes)},
	}

	layoutStart := time.Now()
	m, graphHash, hit, err := r.layout(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Model = m
	res.GraphHash = graphHash
	res.Stats.Dropped = m.Diagnostics.DroppedCount()
	res.Stats.LayoutTime = time.Since(layoutStart)
	res.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"engine", opts.Engine,
		"lanes", len(m.Lanes),
		"nodes", len(m.Nodes),
		"edges", len(m.Edges),
		"dropped", res.Stats.Dropped,
		"duration", res.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.Render(ctx, m, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(renderStart)
	res.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", res.Stats.RenderTime)
	return res, nil
}

// =============================================================================
// Decode
// =============================================================================

// decoded is the cache envelope of a decode result.
type decoded struct {
	Shape string      `json:"shape"`
	Graph graph.Graph `json:"graph"`
}

// Decode parses raw input of any supported shape into a canonical graph.
// The returned bool reports a cache hit.
func (r *Runner) Decode(ctx context.Context, data []byte, refresh bool) (graph.Graph, string, bool, error) {
	key := r.Keyer.GraphKey(cache.Hash(data))
	var env decoded
	if !refresh && r.get(ctx, "graph", key, &env) {
		return env.Graph, env.Shape, true, nil
	}

	start := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, "document")
	g, shape, err := gio.Parse(string(data))
	observability.Pipeline().OnDecodeComplete(ctx, shape.String(), len(g.Nodes), time.Since(start), err)
	if err != nil {
		return graph.Graph{}, "", false, decodeError(err)
	}

	r.Logger.Info("decoded graph",
		"shape", shape,
		"lanes", len(g.Lanes),
		"nodes", len(g.Nodes),
		"edges", len(g.Edges))

	env = decoded{Shape: shape.String(), Graph: g}
	r.set(ctx, "graph", key, env, cache.TTLGraph)
	return g, env.Shape, false, nil
}

func decodeError(err error) error {
	if stderrors.Is(err, gio.ErrNoGraph) {
		return errors.Wrap(errors.ErrCodeNoGraph, err, "no diagram found in input")
	}
	return errors.Wrap(errors.ErrCodeParseFailed, err, "cannot parse diagram")
}

// Extract converts free text into a canonical graph.
func (r *Runner) Extract(ctx context.Context, text string, refresh bool) (graph.Graph, bool, error) {
	if text == "" {
		return graph.Graph{}, false, errors.New(errors.ErrCodeInvalidInput, "text is required")
	}
	key := r.Keyer.ExtractKey(cache.Hash([]byte(text)))
	var g graph.Graph
	if !refresh && r.get(ctx, "extract", key, &g) {
		return g, true, nil
	}

	start := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, "extract")
	g = r.Extractor.Extract(text)
	observability.Pipeline().OnDecodeComplete(ctx, "extract", len(g.Nodes), time.Since(start), nil)

	r.Logger.Info("extracted graph", "lanes", len(g.Lanes), "nodes", len(g.Nodes), "edges", len(g.Edges))
	r.set(ctx, "extract", key, g, cache.TTLExtract)
	return g, false, nil
}

// =============================================================================
// Layout
// =============================================================================

// Layout computes the lane model of g. The returned bool reports a cache hit.
func (r *Runner) Layout(ctx context.Context, g graph.Graph, opts Options) (*layout.Model, bool, error) {
	m, _, hit, err := r.layout(ctx, g, opts)
	return m, hit, err
}

func (r *Runner) layout(ctx context.Context, g graph.Graph, opts Options) (*layout.Model, string, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, "", false, err
	}
	graphHash, err := GraphHash(g)
	if err != nil {
		return nil, "", false, err
	}
	key := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())
	var cached layout.Model
	if !opts.Refresh && r.get(ctx, "layout", key, &cached) {
		return &cached, graphHash, true, nil
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Engine, len(g.Nodes))
	m := layout.Build(g, opts.LayoutOptions()...)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Engine, m.Diagnostics.DroppedCount(), time.Since(start), nil)

	if !m.Diagnostics.Clean() {
		d := m.Diagnostics
		r.Logger.Warn("layout repaired input",
			"dropped", d.DroppedCount(),
			"unknown_vias", len(d.UnknownVias),
			"unranked", len(d.Unranked))
	}

	r.set(ctx, "layout", key, m, cache.TTLLayout)
	return m, graphHash, false, nil
}

// GraphHash returns the content hash of the canonical encoding of g.
func GraphHash(g graph.Graph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return cache.Hash(data), nil
}

// =============================================================================
// Render
// =============================================================================

// Render produces every requested format of m, concurrently. g is used by
// the nodelink engine and DOT output. The returned bool reports that every
// artifact came from cache.
func (r *Runner) Render(ctx context.Context, m *layout.Model, g graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	modelData, err := json.Marshal(m)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	layoutHash := cache.Hash(modelData)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
		allHit    = true
	)
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		eg.Go(func() error {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit := r.getRaw(egCtx, "artifact", key, opts.Refresh)
			if !hit {
				var err error
				if data, err = renderFormat(egCtx, format, m, g, opts); err != nil {
					return fmt.Errorf("%s: %w", format, err)
				}
				r.setRaw(egCtx, "artifact", key, data, cache.TTLArtifact)
			}
			mu.Lock()
			defer mu.Unlock()
			artifacts[format] = data
			allHit = allHit && hit
			return nil
		})
	}
	err = eg.Wait()
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return artifacts, allHit, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Cache helpers
// =============================================================================

func (r *Runner) get(ctx context.Context, keyType, key string, v any) bool {
	data, hit := r.getRaw(ctx, keyType, key, false)
	if !hit {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.Logger.Debug("discarding corrupt cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (r *Runner) getRaw(ctx context.Context, keyType, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	r.setRaw(ctx, keyType, key, data, ttl)
}

func (r *Runner) setRaw(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
