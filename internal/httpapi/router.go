package httpapi

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type handler struct {
	*app.Services
}

// NewRouter builds the gin engine. Everything under /api/v1 needs a bearer
// token; /healthz does not.
func NewRouter(svc *app.Services, tokens *auth.TokenManager, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))
	r.GET("/healthz", func(c *gin.Context) {
		Success(c, gin.H{"status": "ok"})
	})

	h := &handler{Services: svc}
	api := r.Group("/api/v1", Authenticate(tokens, svc.Users))
	h.registerScenarios(api.Group("/scenarios"))
	h.registerPlanning(api)
	h.registerAllocations(api.Group("/allocations"))
	h.registerAnalysis(api)
	return r
}

func (h *handler) registerScenarios(g *gin.RouterGroup) {
	g.GET("", h.listScenarios)
	g.POST("", h.createScenario)
	g.GET("/:id", h.getScenario)
	g.PATCH("/:id", h.updateScenario)
	g.DELETE("/:id", h.deleteScenario)
	g.POST("/:id/clone", h.cloneScenario)
	g.POST("/:id/publish", h.publishScenario)
	g.GET("/:id/stats", h.scenarioStats)
}

func (h *handler) registerPlanning(api *gin.RouterGroup) {
	api.GET("/segment-functions", h.listSegmentFunctions)
	api.POST("/segment-functions", h.createSegmentFunction)

	api.GET("/projects", h.listProjects)
	api.POST("/projects", h.createProject)
	api.GET("/projects/:id", h.getProject)
	api.PATCH("/projects/:id", h.updateProject)
	api.DELETE("/projects/:id", h.deleteProject)

	api.GET("/resources", h.listResources)
	api.POST("/resources", h.createResource)
	api.PATCH("/resources/:id", h.updateResource)
	api.DELETE("/resources/:id", h.deleteResource)

	api.POST("/milestones", h.createMilestone)
	api.PATCH("/milestones/:id", h.updateMilestone)
	api.DELETE("/milestones/:id", h.deleteMilestone)

	api.POST("/dependencies", h.createDependency)
	api.PATCH("/dependencies/:id", h.updateDependency)
	api.DELETE("/dependencies/:id", h.deleteDependency)

	api.POST("/requirements", h.createRequirement)
	api.PATCH("/requirements/:id", h.updateRequirement)
	api.DELETE("/requirements/:id", h.deleteRequirement)

	api.POST("/capabilities", h.createCapability)
	api.PATCH("/capabilities/:id", h.updateCapability)
	api.DELETE("/capabilities/:id", h.deleteCapability)
}

func (h *handler) registerAllocations(g *gin.RouterGroup) {
	g.POST("", h.createAllocation)
	g.PATCH("/:id", h.updateAllocation)
	g.DELETE("/:id", h.deleteAllocation)
	g.GET("/overlap/:resourceId", h.allocationOverlap)
}

func (h *handler) registerAnalysis(api *gin.RouterGroup) {
	api.GET("/risk/segment-functions/:id", h.segmentRisk)
	api.GET("/risk/projects/:id", h.projectRisk)
	api.GET("/match/score", h.matchScore)
	api.GET("/projects/:id/suggestions", h.suggestions)
}

// pathID reads a positive integer path parameter, writing a 400 when it is
// malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		BadRequestError(c, fmt.Sprintf("%s must be a positive integer", name))
		return 0, false
	}
	return id, true
}

// queryID reads an optional integer query parameter. A missing parameter
// returns nil.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		BadRequestError(c, fmt.Sprintf("%s must be a non-negative integer", name))
		return nil, false
	}
	return &id, true
}

// queryInt reads an optional integer query parameter with a fallback.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		BadRequestError(c, fmt.Sprintf("%s must be an integer", name))
		return 0, false
	}
	return n, true
}

// bind decodes the JSON body, writing a 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		BadRequestError(c, err.Error())
		return false
	}
	return true
}
