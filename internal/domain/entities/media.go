package entities

import (
	"github.com/google/uuid"
)

// MediaLibrary 媒体库实体，按站点内唯一名称查找
type MediaLibrary struct {
	ID          int       `json:"id" yaml:"id"`
	GUID        uuid.UUID `json:"guid" yaml:"guid"`
	Name        string    `json:"name" yaml:"name"`
	DisplayName string    `json:"display_name,omitempty" yaml:"display_name"`
	SiteName    string    `json:"site_name" yaml:"site"`
	Folder      string    `json:"folder,omitempty" yaml:"folder"`
}

// MediaFile 媒体文件实体，按(媒体库ID, 路径)查找
type MediaFile struct {
	ID        int       `json:"id" yaml:"id"`
	GUID      uuid.UUID `json:"guid" yaml:"guid"`
	Name      string    `json:"name" yaml:"name"`
	Extension string    `json:"extension" yaml:"extension"`
	LibraryID int       `json:"library_id" yaml:"library_id"`
	Path      string    `json:"path" yaml:"path"`
	Size      int64     `json:"size,omitempty" yaml:"size"`
	MimeType  string    `json:"mime_type,omitempty" yaml:"mime_type"`
}

// Projection 只保留生成URL所需的字段
func (f *MediaFile) Projection() *MediaFile {
	return &MediaFile{
		GUID:      f.GUID,
		Name:      f.Name,
		Extension: f.Extension,
	}
}
