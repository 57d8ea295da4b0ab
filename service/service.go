// Package service ties a gin engine to the dependencies its handlers need:
// configuration, the LogHarbour logger, metrics and arbitrary extras.
//
// Routes are registered singly or in groups, and each group can have its
// own middleware.
package service

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"
	"github.com/remiges-tech/slownie/config"
	"github.com/remiges-tech/slownie/metrics"
)

// Dependencies is a map to hold arbitrary dependencies.
type Dependencies map[string]any

// Service is the core struct for a web service, holding essential components and optional dependencies.
// Note: Assert the type of a value from Dependencies before using it because the value is of type any.
//
// Example:
//
//	s := NewService(router).WithLogHarbour(lh).WithDependency("units", catalogue)
//	catalogue, ok := s.Dependencies["units"].(*units.Catalogue)
type Service struct {
	Config       config.Config
	Router       *gin.Engine
	LogHarbour   *logharbour.Logger
	Metrics      metrics.Metrics
	Dependencies Dependencies
}

// NewService constructs a new Service around r.
func NewService(r *gin.Engine) *Service {
	return &Service{
		Router: r,
	}
}

// WithDependency is a method to inject an arbitrary dependency into the Service.
func (s *Service) WithDependency(key string, value any) *Service {
	if s.Dependencies == nil {
		s.Dependencies = make(Dependencies)
	}
	s.Dependencies[key] = value
	return s
}

// WithLogHarbour is a method to inject a logger dependency into the Service.
func (s *Service) WithLogHarbour(l *logharbour.Logger) *Service {
	s.LogHarbour = l
	return s
}

// WithConfig is a method to inject the configuration source into the Service.
func (s *Service) WithConfig(c config.Config) *Service {
	s.Config = c
	return s
}

// WithMetrics is a method to inject a metrics system into the Service.
func (s *Service) WithMetrics(m metrics.Metrics) *Service {
	s.Metrics = m
	return s
}

// HandlerFunc is a function that handles a request.
// It takes a *gin.Context and a *Service as parameters.
type HandlerFunc func(*gin.Context, *Service)

// RegisterRoute allows for the registration of a single route directly on the service's engine.
func (s *Service) RegisterRoute(method, path string, handler HandlerFunc) {
	register(s.Router, method, path, func(c *gin.Context) {
		handler(c, s)
	})
}

// RouteGroup represents a group of routes sharing a path prefix.
type RouteGroup struct {
	Group   *gin.RouterGroup
	service *Service
}

// CreateGroup creates a new route group with the given path.
func (s *Service) CreateGroup(path string) *RouteGroup {
	return &RouteGroup{
		Group:   s.Router.Group(path),
		service: s,
	}
}

// RegisterRoute registers a single route in the route group.
func (g *RouteGroup) RegisterRoute(method, path string, handler HandlerFunc) {
	register(g.Group, method, path, func(c *gin.Context) {
		handler(c, g.service)
	})
}

// CreateSubGroup creates a new sub-group within the current group.
func (g *RouteGroup) CreateSubGroup(path string) *RouteGroup {
	return &RouteGroup{
		Group:   g.Group.Group(path),
		service: g.service,
	}
}

func register(r gin.IRoutes, method, path string, h gin.HandlerFunc) {
	switch method {
	case http.MethodGet:
		r.GET(path, h)
	case http.MethodPost:
		r.POST(path, h)
	case http.MethodPut:
		r.PUT(path, h)
	case http.MethodDelete:
		r.DELETE(path, h)
	default:
		log.Printf("Unsupported method: %s", method)
	}
}
