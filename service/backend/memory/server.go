package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/viant/correlations/internal/idgen"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/backend"
	"github.com/viant/correlations/service/dao"
	"github.com/viant/correlations/service/dao/store"
	"github.com/viant/correlations/service/registry"
	"go.uber.org/zap"
)

const dataSourcesPrefix = "/api/datasources/uid/"

// Server is an in-process rendition of the correlation REST resource. It
// implements backend.Service directly and http.Handler for use behind a
// listener.
type Server struct {
	correlations *store.MemoryStore[string, model.Correlation]
	registry     registry.Resolver
	seed         []*model.Correlation
	logger       *zap.Logger
	mu           sync.Mutex
}

var (
	_ backend.Service = (*Server)(nil)
	_ http.Handler    = (*Server)(nil)
)

type request struct {
	method    string
	path      string
	sourceUID string
	uid       string
	payload   []byte
}

func (r *request) fail(statusCode int, format string, args ...interface{}) error {
	return backend.NewStatusError(r.method, r.path, statusCode, fmt.Sprintf(format, args...))
}

func (s *Server) Get(ctx context.Context, path string, out interface{}) error {
	return s.serve(ctx, http.MethodGet, path, nil, out)
}

func (s *Server) Post(ctx context.Context, path string, body, out interface{}) error {
	return s.serve(ctx, http.MethodPost, path, body, out)
}

func (s *Server) Patch(ctx context.Context, path string, body, out interface{}) error {
	return s.serve(ctx, http.MethodPatch, path, body, out)
}

func (s *Server) Delete(ctx context.Context, path string) error {
	return s.serve(ctx, http.MethodDelete, path, nil, nil)
}

// serve round-trips body and result through JSON so callers observe the same
// encoding as over the wire.
func (s *Server) serve(ctx context.Context, method, path string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return &backend.TransportError{Method: method, Path: path, Err: err}
	}
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &backend.TransportError{Method: method, Path: path, Err: fmt.Errorf("marshal request: %w", err)}
		}
		payload = data
	}
	result, err := s.handle(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil || result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return &backend.TransportError{Method: method, Path: path, Err: fmt.Errorf("marshal response: %w", err)}
	}
	return json.Unmarshal(data, out)
}

// ServeHTTP answers JSON requests; errors use the {"message": ...} body.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	result, err := s.handle(r.Context(), r.Method, r.URL.EscapedPath(), payload)
	if err != nil {
		var transportErr *backend.TransportError
		if errors.As(err, &transportErr) && transportErr.StatusCode != 0 {
			writeJSON(w, transportErr.StatusCode, map[string]string{"message": transportErr.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	if result == nil {
		result = map[string]string{"message": "ok"}
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handle(ctx context.Context, method, path string, payload []byte) (interface{}, error) {
	req := &request{method: method, path: path, payload: payload}
	if path == backend.CorrelationsPath {
		if method != http.MethodGet {
			return nil, req.fail(http.StatusMethodNotAllowed, "method not allowed")
		}
		return s.correlations.List(ctx)
	}
	if !strings.HasPrefix(path, dataSourcesPrefix) {
		return nil, req.fail(http.StatusNotFound, "not found")
	}
	parts := strings.Split(strings.TrimPrefix(path, dataSourcesPrefix), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[1] != "correlations" {
		return nil, req.fail(http.StatusNotFound, "not found")
	}
	var err error
	if req.sourceUID, err = url.PathUnescape(parts[0]); err != nil {
		return nil, req.fail(http.StatusBadRequest, "invalid source uid")
	}
	if len(parts) == 2 {
		switch method {
		case http.MethodGet:
			return s.listBySource(ctx, req)
		case http.MethodPost:
			return s.create(ctx, req)
		}
		return nil, req.fail(http.StatusMethodNotAllowed, "method not allowed")
	}
	if req.uid, err = url.PathUnescape(parts[2]); err != nil {
		return nil, req.fail(http.StatusBadRequest, "invalid correlation uid")
	}
	switch method {
	case http.MethodGet:
		return s.load(ctx, req)
	case http.MethodPatch:
		return s.update(ctx, req)
	case http.MethodDelete:
		return nil, s.delete(ctx, req)
	}
	return nil, req.fail(http.StatusMethodNotAllowed, "method not allowed")
}

// source validates the source data source against the registry.
func (s *Server) source(req *request, write bool) error {
	if s.registry == nil {
		return nil
	}
	ds, ok := s.registry.Resolve(req.sourceUID)
	if !ok {
		return req.fail(http.StatusNotFound, "data source not found")
	}
	if write && ds.ReadOnly {
		return req.fail(http.StatusForbidden, "data source is read only")
	}
	return nil
}

func (s *Server) listBySource(ctx context.Context, req *request) (interface{}, error) {
	if err := s.source(req, false); err != nil {
		return nil, err
	}
	return s.correlations.List(ctx, dao.NewParameter("SourceUID", req.sourceUID))
}

func (s *Server) create(ctx context.Context, req *request) (interface{}, error) {
	if err := s.source(req, true); err != nil {
		return nil, err
	}
	var body model.CreateBody
	if err := json.Unmarshal(req.payload, &body); err != nil {
		return nil, req.fail(http.StatusBadRequest, "invalid request body")
	}
	if body.TargetUID == "" {
		return nil, req.fail(http.StatusBadRequest, "target data source uid is required")
	}
	if s.registry != nil {
		if _, ok := s.registry.Resolve(body.TargetUID); !ok {
			return nil, req.fail(http.StatusNotFound, "target data source not found")
		}
	}
	correlation := &model.Correlation{
		UID:         idgen.New(),
		SourceUID:   req.sourceUID,
		TargetUID:   body.TargetUID,
		Label:       body.Label,
		Description: body.Description,
	}
	if err := s.correlations.Save(ctx, correlation); err != nil {
		return nil, err
	}
	s.logger.Debug("correlation created", zap.String("uid", correlation.UID), zap.String("source", correlation.SourceUID))
	return correlation, nil
}

// owned loads the addressed correlation, answering 404 when it belongs to a
// different source.
func (s *Server) owned(ctx context.Context, req *request) (*model.Correlation, error) {
	correlation, err := s.correlations.Load(ctx, req.uid)
	if errors.Is(err, dao.ErrNotFound) || (err == nil && correlation.SourceUID != req.sourceUID) {
		return nil, req.fail(http.StatusNotFound, "correlation not found")
	}
	return correlation, err
}

func (s *Server) load(ctx context.Context, req *request) (interface{}, error) {
	if err := s.source(req, false); err != nil {
		return nil, err
	}
	return s.owned(ctx, req)
}

func (s *Server) update(ctx context.Context, req *request) (interface{}, error) {
	if err := s.source(req, true); err != nil {
		return nil, err
	}
	var patch struct {
		Label       *string `json:"label"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal(req.payload, &patch); err != nil {
		return nil, req.fail(http.StatusBadRequest, "invalid request body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	correlation, err := s.owned(ctx, req)
	if err != nil {
		return nil, err
	}
	if patch.Label != nil {
		correlation.Label = *patch.Label
	}
	if patch.Description != nil {
		correlation.Description = *patch.Description
	}
	if err = s.correlations.Save(ctx, correlation); err != nil {
		return nil, err
	}
	return correlation, nil
}

func (s *Server) delete(ctx context.Context, req *request) error {
	if err := s.source(req, true); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.owned(ctx, req); err != nil {
		return err
	}
	return s.correlations.Delete(ctx, req.uid)
}

func correlationField(c *model.Correlation, name string) (string, bool) {
	switch name {
	case "SourceUID":
		return c.SourceUID, true
	case "TargetUID":
		return c.TargetUID, true
	}
	return "", false
}

// New creates a server.
func New(options ...Option) *Server {
	ret := &Server{
		correlations: store.NewMemoryStore[string, model.Correlation](
			func(c *model.Correlation) string { return c.UID },
			store.WithField[string, model.Correlation](correlationField),
		),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	ret.logger = ret.logger.Named("memory-backend")
	for _, correlation := range ret.seed {
		seeded := *correlation
		if seeded.UID == "" {
			seeded.UID = idgen.New()
		}
		_ = ret.correlations.Save(context.Background(), &seeded)
	}
	ret.seed = nil
	return ret
}
