package http_handler

import (
	"context"
	"errors"
	"strings"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/config"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/service"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Server exposes the simulated node-state surface over HTTP so a
// harness operator can inspect and mutate the cluster from outside the
// process. Policy consumers still call the provider in-process.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	provider *service.Provider
}

func NewServer(cfg *config.Config, provider *service.Provider) *Server {
	app := fiber.New(fiber.Config{
		AppName: "cluster-sim",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:      app,
		cfg:      cfg,
		provider: provider,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/roles", s.handleRoles)
	s.app.Get("/nodes/:node/values", s.handleGetValues)
	s.app.Put("/nodes/:node/values", s.handleSetValues)
	s.app.Post("/nodes/:node/values/:key", s.handleSetValue)
	s.app.Delete("/nodes/:node", s.handleRemoveNode)
	s.app.Get("/nodes/:node/replicas", s.handleReplicas)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr())
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) handleRoles(c *fiber.Ctx) error {
	return c.JSON(s.provider.RoleAssignments())
}

func (s *Server) handleGetValues(c *fiber.Ctx) error {
	node := c.Params("node")
	var tags []string
	if raw := c.Query("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	values, err := s.provider.GetNodeValues(node, tags)
	if err != nil {
		if errors.Is(err, port.ErrMixedTags) {
			return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
		}
		sdklogger.Errorw("GetNodeValues failed", "node", node, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(values)
}

func (s *Server) handleSetValues(c *fiber.Ctx) error {
	node := c.Params("node")
	values := make(map[string]domain.Value)
	if err := c.BodyParser(&values); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "invalid values body: "+err.Error())
	}
	if err := s.provider.SetNodeValues(node, values); err != nil {
		sdklogger.Errorw("SetNodeValues failed", "node", node, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleSetValue(c *fiber.Ctx) error {
	node := c.Params("node")
	key := c.Params("key")

	var value domain.Value
	if err := value.UnmarshalJSON(c.Body()); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "invalid value body: "+err.Error())
	}

	var err error
	if c.QueryBool("merge") {
		if value.Kind() != domain.KindScalar {
			return s.sendJSONError(c, fiber.StatusBadRequest, "merge accepts a single scalar")
		}
		err = s.provider.AddNodeValue(node, key, value.ScalarValue())
	} else {
		err = s.provider.SetNodeValue(node, key, value)
	}
	if err != nil {
		sdklogger.Errorw("SetNodeValue failed", "node", node, "key", key, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleRemoveNode(c *fiber.Ctx) error {
	node := c.Params("node")
	former, err := s.provider.RemoveNodeValues(node)
	if err != nil {
		sdklogger.Errorw("RemoveNodeValues failed", "node", node, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	if former == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.JSON(former)
}

func (s *Server) handleReplicas(c *fiber.Ctx) error {
	node := c.Params("node")
	replicas, err := s.provider.GetReplicaInfo(node, nil)
	if err != nil {
		sdklogger.Errorw("GetReplicaInfo failed", "node", node, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(replicas)
}
