package httpapi

import (
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/gin-gonic/gin"
)

type createSegmentFunctionRequest struct {
	Name string `json:"name"`
}

func (h *handler) listSegmentFunctions(c *gin.Context) {
	list, err := h.Planning.ListSegmentFunctions(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, list)
}

func (h *handler) createSegmentFunction(c *gin.Context) {
	var req createSegmentFunctionRequest
	if !bind(c, &req) {
		return
	}
	sf, err := h.Planning.CreateSegmentFunction(c.Request.Context(), actor(c), req.Name)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, sf)
}

// scopeQuery reads ?scenario= for list endpoints. Absent and zero both
// select the baseline.
func scopeQuery(c *gin.Context) (*int64, bool) {
	id, ok := queryID(c, "scenario")
	if !ok || id == nil {
		return nil, ok
	}
	return contract.ScenarioScope(*id), true
}

func (h *handler) listProjects(c *gin.Context) {
	scope, ok := scopeQuery(c)
	if !ok {
		return
	}
	list, err := h.Planning.ListProjects(c.Request.Context(), actor(c), scope)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, list)
}

func (h *handler) createProject(c *gin.Context) {
	var req contract.CreateProjectRequest
	if !bind(c, &req) {
		return
	}
	p := req.Project()
	if err := h.Planning.CreateProject(c.Request.Context(), actor(c), p); err != nil {
		Error(c, err)
		return
	}
	Success(c, p)
}

func (h *handler) getProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Planning.GetProject(c.Request.Context(), actor(c), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, p)
}

func (h *handler) updateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch contract.ProjectPatch
	if !bind(c, &patch) {
		return
	}
	p, err := h.Planning.UpdateProject(c.Request.Context(), actor(c), id, patch)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, p)
}

func (h *handler) deleteProject(c *gin.Context) {
	h.deleteByID(c, h.Planning.DeleteProject)
}

func (h *handler) listResources(c *gin.Context) {
	scope, ok := scopeQuery(c)
	if !ok {
		return
	}
	list, err := h.Planning.ListResources(c.Request.Context(), actor(c), scope)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, list)
}

func (h *handler) createResource(c *gin.Context) {
	var req contract.CreateResourceRequest
	if !bind(c, &req) {
		return
	}
	r := req.Resource()
	if err := h.Planning.CreateResource(c.Request.Context(), actor(c), r); err != nil {
		Error(c, err)
		return
	}
	Success(c, r)
}

func (h *handler) updateResource(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch contract.ResourcePatch
	if !bind(c, &patch) {
		return
	}
	r, err := h.Planning.UpdateResource(c.Request.Context(), actor(c), id, patch)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, r)
}

func (h *handler) deleteResource(c *gin.Context) {
	h.deleteByID(c, h.Planning.DeleteResource)
}

func (h *handler) createMilestone(c *gin.Context) {
	var req contract.CreateMilestoneRequest
	if !bind(c, &req) {
		return
	}
	m := req.Milestone()
	if err := h.Planning.CreateMilestone(c.Request.Context(), actor(c), m); err != nil {
		Error(c, err)
		return
	}
	Success(c, m)
}

func (h *handler) updateMilestone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch contract.MilestonePatch
	if !bind(c, &patch) {
		return
	}
	m, err := h.Planning.UpdateMilestone(c.Request.Context(), actor(c), id, patch)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, m)
}

func (h *handler) deleteMilestone(c *gin.Context) {
	h.deleteByID(c, h.Planning.DeleteMilestone)
}

func (h *handler) createDependency(c *gin.Context) {
	var req contract.CreateDependencyRequest
	if !bind(c, &req) {
		return
	}
	d := req.Dependency()
	if err := h.Planning.CreateDependency(c.Request.Context(), actor(c), d); err != nil {
		Error(c, err)
		return
	}
	Success(c, d)
}

func (h *handler) updateDependency(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch contract.DependencyPatch
	if !bind(c, &patch) {
		return
	}
	d, err := h.Planning.UpdateDependency(c.Request.Context(), actor(c), id, patch)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, d)
}

func (h *handler) deleteDependency(c *gin.Context) {
	h.deleteByID(c, h.Planning.DeleteDependency)
}

func (h *handler) createRequirement(c *gin.Context) {
	var req contract.CreateRequirementRequest
	if !bind(c, &req) {
		return
	}
	r := req.Requirement()
	if err := h.Planning.CreateRequirement(c.Request.Context(), actor(c), r); err != nil {
		Error(c, err)
		return
	}
	Success(c, r)
}

func (h *handler) updateRequirement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch contract.RequirementPatch
	if !bind(c, &patch) {
		return
	}
	r, err := h.Planning.UpdateRequirement(c.Request.Context(), actor(c), id, patch)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, r)
}

func (h *handler) deleteRequirement(c *gin.Context) {
	h.deleteByID(c, h.Planning.DeleteRequirement)
}

func (h *handler) createCapability(c *gin.Context) {
	var req contract.CreateCapabilityRequest
	if !bind(c, &req) {
		return
	}
	cp := req.Capability()
	if err := h.Planning.CreateCapability(c.Request.Context(), actor(c), cp); err != nil {
		Error(c, err)
		return
	}
	Success(c, cp)
}

func (h *handler) updateCapability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch contract.CapabilityPatch
	if !bind(c, &patch) {
		return
	}
	cp, err := h.Planning.UpdateCapability(c.Request.Context(), actor(c), id, patch)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, cp)
}

func (h *handler) deleteCapability(c *gin.Context) {
	h.deleteByID(c, h.Planning.DeleteCapability)
}
