package fileutil

import (
	"mime"
	"strings"
)

// ExtractExtension 从文件名中提取扩展名（不带点号，小写）
// 例如：
//
//	"hero.jpg" -> "jpg"
//	"banners/Logo.PNG" -> "png"
//	"/path/to/README" -> ""
func ExtractExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 || idx == len(filename)-1 {
		return ""
	}
	// 点号出现在目录名中
	if strings.Contains(filename[idx:], "/") {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// DottedExtension 带点号的扩展名，如 ".jpg"，没有扩展名时返回空
func DottedExtension(filename string) string {
	ext := ExtractExtension(filename)
	if ext == "" {
		return ""
	}
	return "." + ext
}

// MimeTypeOf 根据扩展名推断MIME类型
func MimeTypeOf(filename string) string {
	ext := DottedExtension(filename)
	if ext == "" {
		return ""
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
