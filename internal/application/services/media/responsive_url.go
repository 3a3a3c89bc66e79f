package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/easayliu/media-url-resolver/internal/domain/services/mediaurl"
	"github.com/easayliu/media-url-resolver/internal/shared/errors"
)

// Resolution 一次解析的结果
type Resolution struct {
	URL      string `json:"url"`
	Original string `json:"original"`
	Resolved bool   `json:"resolved"`
	Reason   string `json:"reason,omitempty"`
}

// GetResponsiveImageURL 把媒体资源URL转换为getmedia地址
// 任何失败都返回原始URL，不会panic
func (r *Resolver) GetResponsiveImageURL(ctx context.Context, imageURL string, width, height int) string {
	return r.ResolveImage(ctx, imageURL, width, height).URL
}

// ResolveImage 与GetResponsiveImageURL相同，但附带是否解析成功及原因
func (r *Resolver) ResolveImage(ctx context.Context, imageURL string, width, height int) Resolution {
	result := Resolution{URL: imageURL, Original: imageURL}
	// 空地址和负数尺寸原样返回，不记录日志
	if strings.TrimSpace(imageURL) == "" || width < 0 || height < 0 {
		result.Reason = string(errors.ErrorCodeInvalidRequest)
		return result
	}

	resolved, err := r.resolve(ctx, imageURL, width, height)
	if err != nil {
		code := errors.CodeOf(err)
		if code != errors.ErrorCodeNotFound && code != errors.ErrorCodeUnsupportedPath {
			r.events.LogException("GetResponsiveImageURL", SeverityError, err, "Unable to resize image")
		}
		result.Reason = string(code)
		return result
	}

	result.URL = resolved
	result.Resolved = true
	return result
}

func (r *Resolver) resolve(ctx context.Context, imageURL string, width, height int) (resolved string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.NewServiceErrorWithCause(errors.ErrorCodeInternalError, "panic while resolving image url",
				fmt.Errorf("%v", p))
		}
	}()

	path, err := mediaurl.ParseAssetPath(imageURL)
	if err != nil {
		return "", err
	}

	if r.skip.ShouldSkip(path) {
		r.events.LogInformation("GetResponsiveImageURL", "Could not get media library for file: "+imageURL)
		return "", errors.NewServiceError(errors.ErrorCodeUnsupportedPath, "path is not served by a media library")
	}

	lib := r.ResolveLibrary(ctx, path.LibraryName())
	if lib == nil {
		return "", errors.NewServiceError(errors.ErrorCodeNotFound, "media library not found")
	}

	filePath, err := path.RelativePath()
	if err != nil {
		return "", err
	}

	file := r.ResolveFile(ctx, lib.ID, filePath)
	if file == nil {
		return "", errors.NewServiceError(errors.ErrorCodeNotFound, "media file not found")
	}

	out, ok := mediaurl.FormatURL(file, width, height)
	if !ok {
		return "", errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest, "unsupported image dimensions",
			map[string]interface{}{"width": width, "height": height})
	}
	return out, nil
}
