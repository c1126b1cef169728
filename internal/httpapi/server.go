// Package httpapi exposes the tool surface over HTTP for local
// development and harness integration.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"retailcore/internal/core"
	"retailcore/pkg/domain"
)

// Server wires the tool service and reference documents into a gin engine.
type Server struct {
	service  *core.Service
	policy   string
	log      *logrus.Entry
	gatherer prometheus.Gatherer
}

// NewServer returns a Server for the given tool service. The policy
// document is served verbatim at /api/policy. A nil gatherer disables
// the /metrics endpoint.
func NewServer(service *core.Service, policy string, gatherer prometheus.Gatherer, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{service: service, policy: policy, log: log, gatherer: gatherer}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.health)

	api := router.Group("/api")
	{
		api.GET("/tools", s.listTools)
		api.POST("/tools/:name", s.invokeTool)
		api.GET("/entities/:type", s.listEntities)
		api.GET("/entities/:type/:id", s.getEntity)
		api.GET("/policy", s.getPolicy)
	}

	if s.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.service.Registry().Descriptors()})
}

// invokeRequest is the JSON body accepted by POST /api/tools/:name.
type invokeRequest struct {
	ActorEmail string         `json:"actor_email"`
	Arguments  map[string]any `json:"arguments"`
}

func (s *Server) invokeTool(c *gin.Context) {
	var req invokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	name := c.Param("name")
	if _, ok := s.service.Registry().Get(name); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool " + name})
		return
	}
	outcome := s.service.Invoke(c.Request.Context(), core.InvokeRequest{
		Tool:       name,
		ActorEmail: req.ActorEmail,
		Args:       req.Arguments,
	})
	// Tool failures are part of the payload contract, not transport errors.
	c.JSON(http.StatusOK, outcome.Payload())
}

func (s *Server) listEntities(c *gin.Context) {
	t := domain.EntityType(c.Param("type"))
	if _, ok := domain.SchemaFor(t); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity type " + string(t)})
		return
	}
	records := s.service.Store().List(t)
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

func (s *Server) getEntity(c *gin.Context) {
	t := domain.EntityType(c.Param("type"))
	if _, ok := domain.SchemaFor(t); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity type " + string(t)})
		return
	}
	record, ok := s.service.Store().Get(t, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) getPolicy(c *gin.Context) {
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(s.policy))
}
