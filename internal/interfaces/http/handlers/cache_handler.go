package handlers

import (
	"github.com/easayliu/media-url-resolver/internal/application/container"
	"github.com/easayliu/media-url-resolver/internal/shared/errors"
	"github.com/easayliu/media-url-resolver/pkg/logger"
	"github.com/easayliu/media-url-resolver/pkg/utils"
	"github.com/gin-gonic/gin"
)

// CacheHandler 缓存管理处理器
type CacheHandler struct {
	container *container.ServiceContainer
}

// NewCacheHandler 创建缓存处理器
func NewCacheHandler(container *container.ServiceContainer) *CacheHandler {
	return &CacheHandler{container: container}
}

// InvalidateRequest 标签失效请求
type InvalidateRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// Invalidate 触发依赖标签
// @Summary 触发依赖标签
// @Description 移除所有依赖该标签的缓存条目
// @Tags 缓存
// @Accept json
// @Produce json
// @Param request body InvalidateRequest true "依赖标签"
// @Success 200 {object} map[string]interface{} "移除的条目数"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /cache/invalidate [post]
func (h *CacheHandler) Invalidate(c *gin.Context) {
	var req InvalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewServiceErrorWithCause(errors.ErrorCodeInvalidRequest, "invalid request body", err))
		return
	}

	removed := h.container.GetTagCache().InvalidateTag(req.Tag)
	logger.Info("Cache tag invalidated", "tag", req.Tag, "removed", removed)
	utils.Success(c, gin.H{"tag": req.Tag, "removed": removed})
}

// Flush 清空缓存
// @Summary 清空缓存
// @Tags 缓存
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /cache [delete]
func (h *CacheHandler) Flush(c *gin.Context) {
	h.container.GetTagCache().Flush()
	logger.Info("Cache flushed")
	utils.Success(c, nil)
}

// Stats 缓存统计
// @Summary 缓存统计
// @Tags 缓存
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /cache/stats [get]
func (h *CacheHandler) Stats(c *gin.Context) {
	utils.Success(c, h.container.GetTagCache().Stats())
}
