package httpapi

import (
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/gin-gonic/gin"
)

func (h *handler) listScenarios(c *gin.Context) {
	list, err := h.Scenarios.List(c.Request.Context(), actor(c))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, list)
}

func (h *handler) createScenario(c *gin.Context) {
	var req contract.CreateScenarioRequest
	if !bind(c, &req) {
		return
	}
	sc, err := h.Scenarios.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, sc)
}

func (h *handler) getScenario(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sc, err := h.Scenarios.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, sc)
}

func (h *handler) updateScenario(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req contract.UpdateScenarioRequest
	if !bind(c, &req) {
		return
	}
	sc, err := h.Scenarios.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, sc)
}

func (h *handler) deleteScenario(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Scenarios.Delete(c.Request.Context(), actor(c), id); err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"id": id, "deleted": true})
}

// cloneScenario accepts an optional body carrying the new name.
func (h *handler) cloneScenario(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := contract.NewCloneRequest(id)
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}
	req.SourceID = id
	resp, err := h.Scenarios.Clone(c.Request.Context(), actor(c), req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, resp)
}

func (h *handler) publishScenario(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sc, err := h.Scenarios.Publish(c.Request.Context(), actor(c), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, sc)
}

func (h *handler) scenarioStats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := h.Scenarios.Stats(c.Request.Context(), actor(c), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, stats)
}
