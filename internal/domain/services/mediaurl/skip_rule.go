package mediaurl

import "strings"

// SkipRule 判断URL是否跳过媒体库解析
type SkipRule interface {
	ShouldSkip(path *AssetPath) bool
}

// SkipRuleFunc 函数形式的SkipRule
type SkipRuleFunc func(path *AssetPath) bool

func (f SkipRuleFunc) ShouldSkip(path *AssetPath) bool {
	return f(path)
}

// SegmentSkipRule 媒体库段命中保留段（如静态资源目录 "assets"），
// 或URL已包含已解析标记（如 "getmedia"）时跳过
type SegmentSkipRule struct {
	Segments []string
	Markers  []string
}

// NewSegmentSkipRule 创建默认跳过规则
func NewSegmentSkipRule(segments, markers []string) *SegmentSkipRule {
	return &SegmentSkipRule{Segments: segments, Markers: markers}
}

func (r *SegmentSkipRule) ShouldSkip(path *AssetPath) bool {
	library := path.LibraryName()
	for _, s := range r.Segments {
		if library == s {
			return true
		}
	}
	for _, m := range r.Markers {
		if m != "" && strings.Contains(path.URL, m) {
			return true
		}
	}
	return false
}
