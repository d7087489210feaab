package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/openapi"
	"github.com/goliatone/go-calcform/pkg/render"
	"github.com/goliatone/go-calcform/pkg/renderers/vanilla"
	"github.com/goliatone/go-calcform/pkg/templates"
	"github.com/goliatone/go-calcform/pkg/validation"
)

// FormsPath is the prefix every form is mounted under.
const FormsPath = "/forms"

const maxBodyBytes = 1 << 20

// ErrLibraryMissing is returned by New without a template library.
var ErrLibraryMissing = errors.New("server: template library is required")

// Server serves the forms of a template library.
type Server struct {
	lib       *templates.Library
	html      *vanilla.Factory
	renderers *render.Registry
	validator *validation.Validator
	info      openapi.Info
	title     string
	logger    *zap.Logger
}

// Submission is the JSON body returned for submissions.
type Submission struct {
	validation.Result
	Data model.CollectedData `json:"data,omitempty"`
}

// New returns a server for lib. Without WithFactory the embedded HTML
// templates are used.
func New(lib *templates.Library, options ...Option) (*Server, error) {
	if lib == nil {
		return nil, ErrLibraryMissing
	}
	s := &Server{
		lib:       lib,
		validator: validation.New(),
		title:     "Calculators",
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.html == nil {
		factory, err := vanilla.NewFactory(vanilla.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: html factory: %w", err)
		}
		s.html = factory
	}

	s.renderers = render.NewRegistry()
	for _, renderer := range []render.Renderer{s.html, render.JSONRenderer{}} {
		if err := s.renderers.Register(renderer); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
	}
	return s, nil
}

// Routes returns the router:
//
//	GET  /               redirect to /forms
//	GET  /forms          index page
//	GET  /forms/{name}   form page, or its JSON snapshot for Accept: application/json
//	POST /forms/{name}   form post or JSON submission
//	GET  /openapi.json   OpenAPI document for the JSON submissions
//	GET  /healthz        liveness probe
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, FormsPath, http.StatusFound)
	})
	r.Route(FormsPath, func(forms chi.Router) {
		forms.Get("/", s.index)
		forms.Get("/{name}", s.show)
		forms.Post("/{name}", s.submit)
	})
	r.Get("/openapi.json", s.openAPI)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	page, err := s.html.RenderIndex(s.title, vanilla.IndexEntries(FormsPath, s.lib.Forms()))
	if err != nil {
		s.fail(w, "render index", err)
		return
	}
	s.writeHTML(w, http.StatusOK, page)
}

func (s *Server) show(w http.ResponseWriter, r *http.Request) {
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
		return
	}
	h, ok := s.build(w, r)
	if !ok {
		return
	}
	if renderer.Name() == s.html.Name() {
		s.renderForm(w, r, h, http.StatusOK)
		return
	}

	body, err := renderer.Render(r.Context(), h, render.RenderOptions{Action: r.URL.Path})
	if err != nil {
		s.fail(w, "render "+renderer.Name(), err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Add("Vary", "Accept")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.build(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isJSON(r.Header.Get("Content-Type")) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		bindJSON(h, payload)
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}
		if vanilla.IsReset(r.PostForm) {
			h.Reset()
			s.renderForm(w, r, h, http.StatusOK)
			return
		}
		vanilla.Bind(h, r.PostForm)
	}

	result, err := h.Submit()
	if err != nil {
		s.fail(w, "submit", err)
		return
	}
	if !result.Valid {
		s.logger.Debug("submission rejected",
			zap.String("form", chi.URLParam(r, "name")),
			zap.Strings("fields", result.Errors.Fields()),
		)
		if isJSON(r.Header.Get("Content-Type")) {
			s.writeJSON(w, http.StatusUnprocessableEntity, Submission{Result: result})
			return
		}
		s.renderForm(w, r, h, http.StatusUnprocessableEntity)
		return
	}
	s.writeJSON(w, http.StatusOK, Submission{Result: result, Data: h.Collect()})
}

func (s *Server) openAPI(w http.ResponseWriter, r *http.Request) {
	doc := openapi.Document(s.info, s.lib.Forms())
	if err := openapi.Validate(r.Context(), doc); err != nil {
		s.fail(w, "openapi", err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) build(w http.ResponseWriter, r *http.Request) (*form.Handle, bool) {
	name := chi.URLParam(r, "name")
	f, err := s.lib.Lookup(name)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	h, err := form.BuildForm(f, s.html,
		form.WithValidator(s.validator),
		form.WithLogger(s.logger.With(zap.String("form", name))),
	)
	if err != nil {
		s.fail(w, "build form", err)
		return nil, false
	}
	return h, true
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, h *form.Handle, status int) {
	page, err := s.html.Render(r.Context(), h, vanilla.RenderOptions{
		Action:   r.URL.Path,
		Document: true,
	})
	if err != nil {
		s.fail(w, "render form", err)
		return
	}
	s.writeHTML(w, status, page)
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", s.html.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.fail(w, "encode response", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) fail(w http.ResponseWriter, action string, err error) {
	s.logger.Error(action+" failed", zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// bindJSON writes a decoded JSON object into the widgets. Absent keys are
// written as nil, which collects as blank (false for checkboxes).
func bindJSON(h *form.Handle, payload map[string]any) {
	widgets := h.Widgets()
	for idx, field := range h.Fields() {
		widgets[idx].WriteValue(payload[field.Name])
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
