package mediaurl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/easayliu/media-url-resolver/internal/shared/errors"
)

// libraryIndex 媒体库名称所在的路径段下标，如 /media/<site>/<library>/...
const libraryIndex = 2

// AssetPath 资源URL拆分后的路径段
type AssetPath struct {
	URL      string
	Segments []string
}

// SplitAssetPath 去掉 "~" 后按 "/" 拆分，丢弃空段
func SplitAssetPath(rawURL string) []string {
	cleaned := strings.ReplaceAll(rawURL, "~", "")
	parts := strings.Split(cleaned, "/")

	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// ParseAssetPath 解析资源URL，路径段不足时返回 INVALID_REQUEST
func ParseAssetPath(rawURL string) (*AssetPath, error) {
	segments := SplitAssetPath(rawURL)
	if len(segments) <= libraryIndex {
		return nil, errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest,
			"asset url has too few path segments", map[string]interface{}{
				"url":      rawURL,
				"segments": len(segments),
			})
	}
	return &AssetPath{URL: rawURL, Segments: segments}, nil
}

// LibraryName 第三段为媒体库名称
func (p *AssetPath) LibraryName() string {
	return p.Segments[libraryIndex]
}

// FileName 最后一段去掉查询串后的文件名
func (p *AssetPath) FileName() string {
	last := p.Segments[len(p.Segments)-1]
	if i := strings.Index(last, "?"); i >= 0 {
		last = last[:i]
	}
	return last
}

// RelativePath 文件在媒体库内的路径（已URL解码）
// 由第4段到倒数第2段的子目录加上文件名组成
func (p *AssetPath) RelativePath() (string, error) {
	parts := make([]string, 0, len(p.Segments))
	for i := libraryIndex + 1; i < len(p.Segments)-1; i++ {
		parts = append(parts, p.Segments[i])
	}
	parts = append(parts, p.FileName())

	decoded, err := url.QueryUnescape(strings.Join(parts, "/"))
	if err != nil {
		return "", errors.NewServiceErrorWithCause(errors.ErrorCodeInvalidRequest,
			fmt.Sprintf("cannot decode asset path of %s", p.URL), err)
	}
	return decoded, nil
}
