package server

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jbass698-121/aveva-diagram-style/pkg/buildinfo"
	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/pipeline"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render/sink"
	"github.com/jbass698-121/aveva-diagram-style/pkg/store"
)

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

// diagramResponse is a stored diagram without its graph.
type diagramResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	GraphHash string    `json:"graph_hash"`
	CreatedAt time.Time `json:"created_at"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
}

func summarize(d *store.Diagram) diagramResponse {
	return diagramResponse{
		ID:        d.ID,
		Title:     d.Title,
		GraphHash: d.GraphHash,
		CreatedAt: d.CreatedAt,
		Nodes:     len(d.Graph.Nodes),
		Edges:     len(d.Graph.Edges),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, ok := s.decodeBody(w, r, opts.Refresh)
	if !ok {
		return
	}
	m, _, err := s.runner.Layout(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(m, sink.WithJSONTheme(opts.Theme))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, http.StatusOK, pipeline.ContentType(pipeline.FormatJSON), data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, ok := s.decodeBody(w, r, opts.Refresh)
	if !ok {
		return
	}
	s.renderGraph(w, r, g, opts)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	g, _, err := s.runner.Extract(r.Context(), string(body), r.URL.Query().Has("refresh"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	g, ok := s.decodeBody(w, r, false)
	if !ok {
		return
	}
	hash, err := pipeline.GraphHash(g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.store.Create(r.Context(), g, hash)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "cannot store diagram"))
		return
	}
	w.Header().Set("Location", "/v1/diagrams/"+d.ID)
	writeJSON(w, http.StatusCreated, summarize(d))
}

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}
	ds, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "cannot list diagrams"))
		return
	}
	out := make([]diagramResponse, len(ds))
	for i, d := range ds {
		out[i] = summarize(d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "diagram %q not found", id))
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, storeError(err, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderDiagram(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.renderGraph(w, r, d.Graph, opts)
}

// renderGraph writes the single artifact selected by opts.Formats.
func (s *Server) renderGraph(w http.ResponseWriter, r *http.Request, g graph.Graph, opts pipeline.Options) {
	res, err := s.runner.ExecuteGraph(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	if !res.Model.Diagnostics.Clean() {
		w.Header().Set("X-Diagram-Dropped", strconv.Itoa(res.Stats.Dropped))
	}
	writeBytes(w, http.StatusOK, pipeline.ContentType(format), res.Artifacts[format])
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Diagram, bool) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "diagram %q not found", id))
		return nil, false
	}
	d, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, storeError(err, id))
		return nil, false
	}
	return d, true
}

func storeError(err error, id string) error {
	if stderrors.Is(err, store.ErrNotFound) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "diagram %q not found", id)
	}
	return errors.Wrap(errors.ErrCodeUnavailable, err, "diagram store unavailable")
}
