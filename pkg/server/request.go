package server

import (
	"cmp"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/pipeline"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// options merges query parameters over the server defaults and validates
// the result. Only one format is rendered per request.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	opts.Logger = s.logger
	q := r.URL.Query()

	if v := q.Get("engine"); v != "" {
		opts.Engine = v
	}
	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}
	opts.Formats = []string{cmp.Or(q.Get("format"), pipeline.FormatSVG)}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"lane_gap", &opts.LaneGap},
		{"lane_padding", &opts.LanePadding},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		if err := parseFloat(q, f.name, f.dst); err != nil {
			return opts, err
		}
	}

	autolayout, icons := !opts.NoAutolayout, !opts.NoIcons
	bools := []struct {
		name string
		dst  *bool
	}{
		{"autolayout", &autolayout},
		{"icons", &icons},
		{"break_cycles", &opts.BreakCycles},
		{"refresh", &opts.Refresh},
	}
	for _, b := range bools {
		if err := parseBool(q, b.name, b.dst); err != nil {
			return opts, err
		}
	}
	opts.NoAutolayout, opts.NoIcons = !autolayout, !icons

	if err := opts.ValidateForRender(); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseFloat(q url.Values, name string, dst *float64) error {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	*dst = f
	return nil
}

func parseBool(q url.Values, name string, dst *bool) error {
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	if v == "" {
		*dst = true
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	*dst = b
	return nil
}

// readBody reads the whole request body within the size limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, errors.New(errors.ErrCodeInputTooLarge, "request body exceeds %d bytes", tooLarge.Limit))
		} else {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read request body"))
		}
		return nil, false
	}
	return data, true
}

// decodeBody reads and decodes a diagram document of any supported shape.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, refresh bool) (graph.Graph, bool) {
	data, ok := s.readBody(w, r)
	if !ok {
		return graph.Graph{}, false
	}
	g, _, _, err := s.runner.Decode(r.Context(), data, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return graph.Graph{}, false
	}
	return g, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError maps err to a status code. Internal details stay in the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		if code == "" || code == errors.ErrCodeInternal {
			code, msg = errors.ErrCodeInternal, "internal error"
		}
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
