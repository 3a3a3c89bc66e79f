package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/easayliu/media-url-resolver/internal/application/container"
	"github.com/easayliu/media-url-resolver/internal/shared/errors"
	"github.com/easayliu/media-url-resolver/pkg/utils"
	"github.com/gin-gonic/gin"
)

// MediaHandler 响应式图片URL处理器
type MediaHandler struct {
	container *container.ServiceContainer
}

// NewMediaHandler 创建媒体处理器
func NewMediaHandler(container *container.ServiceContainer) *MediaHandler {
	return &MediaHandler{container: container}
}

// ResizeURL 生成缩放后的图片地址
// @Summary 生成响应式图片地址
// @Description 把媒体资源URL转换为getmedia地址，解析失败时原样返回
// @Tags 媒体
// @Produce json
// @Param url query string true "媒体资源URL"
// @Param width query int false "目标宽度"
// @Param height query int false "目标高度"
// @Success 200 {object} map[string]interface{} "解析结果"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /media/resize [get]
func (h *MediaHandler) ResizeURL(c *gin.Context) {
	width, height, err := parseDimensions(c)
	if err != nil {
		c.Error(err)
		return
	}

	result := h.container.GetResolver().ResolveImage(c.Request.Context(), c.Query("url"), width, height)
	utils.Success(c, result)
}

// Redirect 重定向到缩放后的图片地址
// @Summary 重定向到响应式图片
// @Description 解析成功时302到getmedia地址；未解析时仅允许站内相对路径，外部地址返回400
// @Tags 媒体
// @Param url query string true "媒体资源URL"
// @Param width query int false "目标宽度"
// @Param height query int false "目标高度"
// @Success 302
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /media/redirect [get]
func (h *MediaHandler) Redirect(c *gin.Context) {
	width, height, err := parseDimensions(c)
	if err != nil {
		c.Error(err)
		return
	}

	imageURL := c.Query("url")
	if imageURL == "" {
		c.Error(errors.NewServiceError(errors.ErrorCodeInvalidRequest, "url is required"))
		return
	}

	result := h.container.GetResolver().ResolveImage(c.Request.Context(), imageURL, width, height)
	if !result.Resolved && !isLocalPath(result.URL) {
		c.Error(errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest, "url is not a local media path",
			map[string]interface{}{"url": imageURL}))
		return
	}
	c.Redirect(http.StatusFound, result.URL)
}

// isLocalPath 判断是否为站内绝对路径（无scheme和host）
func isLocalPath(raw string) bool {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme == "" && u.Host == ""
}

func parseDimensions(c *gin.Context) (int, int, error) {
	width, err := parseDimension(c, "width")
	if err != nil {
		return 0, 0, err
	}
	height, err := parseDimension(c, "height")
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func parseDimension(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest,
			name+" must be a non-negative integer", map[string]interface{}{name: raw})
	}
	return v, nil
}
