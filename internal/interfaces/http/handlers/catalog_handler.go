package handlers

import (
	"strconv"

	"github.com/easayliu/media-url-resolver/internal/application/container"
	"github.com/easayliu/media-url-resolver/internal/domain/entities"
	"github.com/easayliu/media-url-resolver/internal/shared/errors"
	"github.com/easayliu/media-url-resolver/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler 媒体目录处理器
type CatalogHandler struct {
	container *container.ServiceContainer
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(container *container.ServiceContainer) *CatalogHandler {
	return &CatalogHandler{container: container}
}

// ListLibraries 列出媒体库
// @Summary 列出媒体库
// @Tags 媒体目录
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog/libraries [get]
func (h *CatalogHandler) ListLibraries(c *gin.Context) {
	libs := h.container.GetCatalog().Libraries()
	utils.Success(c, gin.H{"libraries": libs, "count": len(libs)})
}

// ListFiles 列出媒体库中的文件
// @Summary 列出媒体文件
// @Tags 媒体目录
// @Produce json
// @Param id path int true "媒体库ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /catalog/libraries/{id}/files [get]
func (h *CatalogHandler) ListFiles(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Error(errors.NewServiceError(errors.ErrorCodeInvalidRequest, "library id must be an integer"))
		return
	}

	files := h.container.GetCatalog().Files(id)
	utils.Success(c, gin.H{"files": files, "count": len(files)})
}

// UpsertLibrary 新增或更新媒体库
// @Summary 新增或更新媒体库
// @Tags 媒体目录
// @Accept json
// @Produce json
// @Param library body entities.MediaLibrary true "媒体库"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /catalog/libraries [put]
func (h *CatalogHandler) UpsertLibrary(c *gin.Context) {
	var lib entities.MediaLibrary
	if err := c.ShouldBindJSON(&lib); err != nil {
		c.Error(errors.NewServiceErrorWithCause(errors.ErrorCodeInvalidRequest, "invalid library", err))
		return
	}
	if lib.SiteName == "" {
		lib.SiteName = h.container.GetConfig().Media.SiteName
	}

	if err := h.container.GetCatalog().UpsertLibrary(&lib); err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, lib)
}

// UpsertFile 新增或更新媒体文件
// @Summary 新增或更新媒体文件
// @Tags 媒体目录
// @Accept json
// @Produce json
// @Param file body entities.MediaFile true "媒体文件"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Failure 404 {object} map[string]interface{} "媒体库不存在"
// @Router /catalog/files [put]
func (h *CatalogHandler) UpsertFile(c *gin.Context) {
	var file entities.MediaFile
	if err := c.ShouldBindJSON(&file); err != nil {
		c.Error(errors.NewServiceErrorWithCause(errors.ErrorCodeInvalidRequest, "invalid file", err))
		return
	}

	if err := h.container.GetCatalog().UpsertFile(&file); err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, file)
}

// DeleteFile 删除媒体文件
// @Summary 删除媒体文件
// @Tags 媒体目录
// @Produce json
// @Param guid path string true "文件GUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "文件不存在"
// @Router /catalog/files/{guid} [delete]
func (h *CatalogHandler) DeleteFile(c *gin.Context) {
	guid, err := uuid.Parse(c.Param("guid"))
	if err != nil {
		c.Error(errors.NewServiceErrorWithCause(errors.ErrorCodeInvalidRequest, "invalid file guid", err))
		return
	}

	if err := h.container.GetCatalog().DeleteFile(guid); err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"guid": guid})
}

// Sync 立即重新加载目录文件
// @Summary 同步媒体目录
// @Description 重新读取目录文件，变更的记录会使对应缓存失效
// @Tags 媒体目录
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog/sync [post]
func (h *CatalogHandler) Sync(c *gin.Context) {
	result := h.container.GetCatalogSync().SyncNow()
	if result.Error != "" {
		c.Error(errors.NewServiceError(errors.ErrorCodeServiceUnavailable, result.Error))
		return
	}
	utils.Success(c, result)
}
