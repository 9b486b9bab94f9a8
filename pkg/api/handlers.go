package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/margins/pkg/buildinfo"
	"github.com/matzehuels/margins/pkg/dataset"
	"github.com/matzehuels/margins/pkg/errors"
	"github.com/matzehuels/margins/pkg/observability"
	"github.com/matzehuels/margins/pkg/pipeline"
)

// Request is the body of render and layout requests.
type Request struct {
	X       []float64        `json:"x,omitempty"`
	Y       []float64        `json:"y,omitempty"`
	XLabel  string           `json:"x_label,omitempty"`
	YLabel  string           `json:"y_label,omitempty"`
	Dataset string           `json:"dataset,omitempty"` // built-in dataset instead of samples
	Seed    uint64           `json:"seed,omitempty"`
	Options pipeline.Options `json:"options"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"datasets": dataset.Names()})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	seed, err := seedParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	name := chi.URLParam(r, "name")
	ds, err := dataset.Builtin(name, seed)
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such dataset %q", name))
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ds, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatPNG
	}
	opts := req.Options
	opts.Formats = []string{format}

	result, err := s.runnerFor(r).Execute(r.Context(), ds, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(CacheHeader, cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ds, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	doc, hit, err := s.runnerFor(r).LayoutDocument(r.Context(), ds, req.Options)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set(CacheHeader, cacheStatus(hit))
	writeJSON(w, http.StatusOK, doc)
}

// decode reads the request body and resolves it to a dataset.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*Request, *dataset.Dataset, error) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeValidation, err, "invalid request body")
	}

	if req.Dataset != "" {
		seed := req.Seed
		if seed == 0 {
			seed = dataset.DefaultSeed
		}
		ds, err := dataset.Builtin(req.Dataset, seed)
		if err != nil {
			return nil, nil, err
		}
		return &req, ds, nil
	}
	return &req, &dataset.Dataset{XLabel: req.XLabel, YLabel: req.YLabel, X: req.X, Y: req.Y}, nil
}

func seedParam(r *http.Request) (uint64, error) {
	s := r.URL.Query().Get("seed")
	if s == "" {
		return dataset.DefaultSeed, nil
	}
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeValidation, err, "invalid seed %q", s)
	}
	return seed, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "id", RequestID(r.Context()), "error", err)
	} else {
		s.logger.Debug("request rejected", "id", RequestID(r.Context()), "error", err)
	}
	writeError(w, err)
}

func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), ErrorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
