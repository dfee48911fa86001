// Package web provides HTTP handlers and REST API endpoints for node descriptors and runs.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/lexal/lexal-node/pkg/persistence"
	"github.com/lexal/lexal-node/pkg/registry"
	"github.com/lexal/lexal-node/pkg/services"
)

type APIHandlers struct {
	nodeService *services.Node
	runService  *services.Run
	validator   *validator.Validate
	registry    *registry.Registry
	persistence persistence.Persistence
	defaultNode string
}

func NewAPIHandlers(
	nodeService *services.Node,
	runService *services.Run,
	validator *validator.Validate,
	registry *registry.Registry,
	persistence persistence.Persistence,
	defaultNode string,
) *APIHandlers {
	return &APIHandlers{
		nodeService: nodeService,
		runService:  runService,
		validator:   validator,
		registry:    registry,
		persistence: persistence,
		defaultNode: defaultNode,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()

	repositoryCheck, repOk := "ok", true

	err := h.persistence.HealthCheck(c.Context())
	if err != nil {
		repositoryCheck, repOk = err.Error(), false
	}

	status := "unhealthy"
	message := "lexal node is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "lexal node is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// Info returns the descriptor of the default node.
func (h *APIHandlers) Info(c fiber.Ctx) error {
	return h.info(c, h.defaultNode)
}

// Execute runs the default node.
func (h *APIHandlers) Execute(c fiber.Ctx) error {
	return h.execute(c, h.defaultNode)
}

func (h *APIHandlers) ListNodes(c fiber.Ctx) error {
	return c.JSON(NodesResponse{Nodes: h.nodeService.List()})
}

func (h *APIHandlers) GetNodeInfo(c fiber.Ctx) error {
	return h.info(c, c.Params("id"))
}

func (h *APIHandlers) GetNodeSchema(c fiber.Ctx) error {
	schema, err := h.nodeService.Schema(c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(schema)
}

func (h *APIHandlers) ExecuteNode(c fiber.Ctx) error {
	return h.execute(c, c.Params("id"))
}

func (h *APIHandlers) VisibleProperties(c fiber.Ctx) error {
	var req VisiblePropertiesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	visible, err := h.nodeService.VisibleProperties(c.Params("id"), req.Values)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(VisiblePropertiesResponse{Visible: visible})
}

func (h *APIHandlers) GetRun(c fiber.Ctx) error {
	run, err := h.runService.Fetch(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(run)
}

func (h *APIHandlers) ListNodeRuns(c fiber.Ctx) error {
	runs, err := h.runService.ListByNodeType(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(RunsResponse{Runs: runs})
}

func (h *APIHandlers) info(c fiber.Ctx, nodeTypeID string) error {
	nodeType, err := h.nodeService.Info(nodeTypeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(InfoResponse{NodeType: nodeType})
}

// execute answers 200 for both complete and error runs; the run state tells them apart.
func (h *APIHandlers) execute(c fiber.Ctx, nodeTypeID string) error {
	var req ExecuteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	run, err := h.runService.Execute(c.Context(), nodeTypeID, req.Properties)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(run)
}

// Register mounts the node and run endpoints on router.
func (h *APIHandlers) Register(router fiber.Router) {
	router.Get("/info", h.Info)
	router.Post("/execute", h.Execute)

	n := router.Group("/nodes")
	n.Get("/", h.ListNodes)
	n.Get("/:id/info", h.GetNodeInfo)
	n.Get("/:id/schema", h.GetNodeSchema)
	n.Post("/:id/execute", h.ExecuteNode)
	n.Post("/:id/visible-properties", h.VisibleProperties)
	n.Get("/:id/runs", h.ListNodeRuns)

	router.Get("/runs/:id", h.GetRun)
	router.Get("/health", h.HealthCheck)
}
