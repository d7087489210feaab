package server

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/openapi"
	"github.com/goliatone/go-calcform/pkg/renderers/vanilla"
	"github.com/goliatone/go-calcform/pkg/validation"
)

// Option configures a Server.
type Option func(*Server)

// WithFactory sets the HTML factory used to build and render forms.
func WithFactory(factory *vanilla.Factory) Option {
	return func(s *Server) {
		if factory != nil {
			s.html = factory
		}
	}
}

// WithValidator sets the validator shared by every request.
func WithValidator(v *validation.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithInfo sets the metadata of the served OpenAPI document.
func WithInfo(info openapi.Info) Option {
	return func(s *Server) {
		s.info = info
	}
}

// WithTitle sets the index page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.title = title
		}
	}
}

// WithLogger attaches a zap logger used for request and form logs.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}
