package repositories

import (
	"context"

	"github.com/easayliu/media-url-resolver/internal/domain/entities"
)

// MediaStore 媒体库与媒体文件的只读查询接口
// 找不到记录时返回 ErrorCodeNotFound 的 ServiceError
type MediaStore interface {
	FindLibraryByName(ctx context.Context, name, siteName string) (*entities.MediaLibrary, error)
	FindFileByLibraryAndPath(ctx context.Context, libraryID int, path string) (*entities.MediaFile, error)
}

// ChangeListener 记录变更时接收依赖标签
type ChangeListener func(tag string)
