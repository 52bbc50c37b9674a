package httpapi

import (
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/gin-gonic/gin"
)

func (h *handler) segmentRisk(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	scope, ok := queryID(c, "scenario")
	if !ok {
		return
	}
	var scenarioID int64
	if scope != nil {
		scenarioID = *scope
	}
	risk, err := h.Risk.SegmentFunction(c.Request.Context(), id, scenarioID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, risk)
}

func (h *handler) projectRisk(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	score, err := h.Risk.Project(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, score)
}

func (h *handler) matchScore(c *gin.Context) {
	capID, ok := queryID(c, "capability")
	if !ok {
		return
	}
	reqID, ok := queryID(c, "requirement")
	if !ok {
		return
	}
	if capID == nil || reqID == nil {
		BadRequestError(c, "capability and requirement are required")
		return
	}
	b, err := h.Match.Score(c.Request.Context(), *capID, *reqID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, b)
}

func (h *handler) suggestions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := contract.NewSuggestRequest(id)
	if req.MinScore, ok = queryInt(c, "minScore", req.MinScore); !ok {
		return
	}
	if req.Limit, ok = queryInt(c, "limit", req.Limit); !ok {
		return
	}
	list, err := h.Match.Suggest(c.Request.Context(), actor(c), req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, list)
}
