package cache

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// 缓存键前缀
const (
	PrefixLibrary = "custom|getcachedmedialibrary|"
	PrefixFile    = "custom|getcachedmediafile|"
)

// LibraryKey 媒体库缓存键（站点 + 名称）
func LibraryKey(siteName, name string) string {
	return PrefixLibrary + strings.ToLower(siteName) + "|" + name
}

// FileKey 媒体文件缓存键（媒体库ID + 路径）
func FileKey(libraryID int, path string) string {
	return PrefixFile + strconv.Itoa(libraryID) + "|" + path
}

// LibraryTag 媒体库依赖标签
func LibraryTag(guid uuid.UUID) string {
	return "media.library|byguid|" + guid.String()
}

// FileTag 媒体文件依赖标签
func FileTag(guid uuid.UUID) string {
	return "mediafile|" + guid.String()
}
