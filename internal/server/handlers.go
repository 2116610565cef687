package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/dataset"
	wcerrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// Response headers describing a pipeline run.
const (
	HeaderCache   = "X-Cache"
	HeaderPlaced  = "X-Words-Placed"
	HeaderDropped = "X-Words-Dropped"
)

// LayoutResponse is the body of a successful POST /v1/layout.
type LayoutResponse struct {
	Layout  cloud.Layout    `json:"layout"`
	Report  dataset.Report  `json:"report"`
	Summary dataset.Summary `json:"summary"`
	Cached  bool            `json:"cached"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      wcerrors.Code `json:"code"`
	Message   string        `json:"message"`
	RequestID string        `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	records, report, err := pipeline.Load(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	layout, hit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, records, opts)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setRunHeaders(w, hit, len(layout.Words), len(layout.Dropped))
	writeJSON(w, http.StatusOK, LayoutResponse{
		Layout:  layout,
		Report:  report,
		Summary: dataset.Summarize(records),
		Cached:  hit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(opts.Formats) > 1 {
		s.writeError(w, r, wcerrors.New(wcerrors.ErrCodeInvalidFormat, "render returns one format per request, got %d", len(opts.Formats)))
		return
	}
	format := pipeline.FormatSVG
	if len(opts.Formats) == 1 {
		format = opts.Formats[0]
	}
	opts.Formats = []string{format}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := "image/svg+xml"
	if format == pipeline.FormatJSON {
		contentType = "application/json"
	}
	setRunHeaders(w, res.CacheInfo.RenderHit, res.Stats.Placed, res.Stats.Dropped)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// decodeOptions reads the request body into pipeline options and fills the
// fields the client left unset from the server config.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	// A partial "layout" object overlays the configured engine, so fields
	// the client omits keep their configured values instead of zero.
	engine := s.cfg.Layout.Engine()
	opts := pipeline.Options{Engine: &engine}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return opts, wcerrors.New(wcerrors.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return opts, wcerrors.Wrap(wcerrors.ErrCodeInvalidInput, err, "malformed request body")
	}

	if opts.Records == nil {
		return opts, wcerrors.New(wcerrors.ErrCodeInvalidInput, "words is required")
	}
	if n, limit := len(opts.Records), s.cfg.Server.MaxItems; n > limit {
		return opts, wcerrors.New(wcerrors.ErrCodeTooLarge, "%d words exceeds the limit of %d", n, limit)
	}

	opts.ApplyConfig(s.cfg)
	opts.Logger = s.logger
	return opts, nil
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if d := s.cfg.Server.Timeout(); d > 0 {
		return context.WithTimeout(r.Context(), d)
	}
	return context.WithCancel(r.Context())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	msg := wcerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   msg,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// classify maps an error to an HTTP status and error code.
func classify(err error) (int, wcerrors.Code) {
	switch {
	case errors.Is(err, context.DeadlineExceeded), wcerrors.Is(err, wcerrors.ErrCodeTimeout):
		return http.StatusGatewayTimeout, wcerrors.ErrCodeTimeout
	case wcerrors.Is(err, wcerrors.ErrCodeTooLarge):
		return http.StatusRequestEntityTooLarge, wcerrors.ErrCodeTooLarge
	case wcerrors.IsValidation(err):
		return http.StatusBadRequest, wcerrors.GetCode(err)
	case wcerrors.IsNotFound(err):
		return http.StatusNotFound, wcerrors.GetCode(err)
	}
	return http.StatusInternalServerError, wcerrors.ErrCodeInternal
}

func setRunHeaders(w http.ResponseWriter, cached bool, placed, dropped int) {
	hit := "miss"
	if cached {
		hit = "hit"
	}
	w.Header().Set(HeaderCache, hit)
	w.Header().Set(HeaderPlaced, strconv.Itoa(placed))
	w.Header().Set(HeaderDropped, strconv.Itoa(dropped))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
