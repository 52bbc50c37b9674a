package httpapi

import (
	"context"

	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handler) createAllocation(c *gin.Context) {
	var req contract.CreateAllocationRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.Allocations.Create(c.Request.Context(), actor(c), req.Allocation())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, resp)
}

func (h *handler) updateAllocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch contract.AllocationPatch
	if !bind(c, &patch) {
		return
	}
	resp, err := h.Allocations.Update(c.Request.Context(), actor(c), id, patch)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, resp)
}

// deleteAllocation returns the resource's overlap after the row is gone.
func (h *handler) deleteAllocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	overlap, err := h.Allocations.Delete(c.Request.Context(), actor(c), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, overlap)
}

// allocationOverlap leaves the scope to the resource when ?scenario= is
// absent; scenario=0 selects the baseline.
func (h *handler) allocationOverlap(c *gin.Context) {
	id, ok := pathID(c, "resourceId")
	if !ok {
		return
	}
	scope, ok := queryID(c, "scenario")
	if !ok {
		return
	}
	overlap, err := h.Allocations.Overlap(c.Request.Context(), id, scope)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, overlap)
}

// deleteByID runs a delete use case keyed by the :id path parameter.
func (h *handler) deleteByID(c *gin.Context, del func(context.Context, *domain.User, int64) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := del(c.Request.Context(), actor(c), id); err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"id": id, "deleted": true})
}
