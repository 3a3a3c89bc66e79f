package fileutil

import "testing"

func TestExtractExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"普通文件", "hero.jpg", "jpg"},
		{"大写扩展名", "banners/Logo.PNG", "png"},
		{"没有扩展名", "README", ""},
		{"以点结尾", "file.", ""},
		{"点在目录名中", "v1.2/readme", ""},
		{"空字符串", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractExtension(tt.filename); got != tt.want {
				t.Errorf("ExtractExtension(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestMimeTypeOf(t *testing.T) {
	if got := MimeTypeOf("banners/hero.png"); got != "image/png" {
		t.Errorf("MimeTypeOf png = %q", got)
	}
	if got := MimeTypeOf("README"); got != "" {
		t.Errorf("MimeTypeOf without extension = %q", got)
	}
	if got := DottedExtension("a/b/photo.JPEG"); got != ".jpeg" {
		t.Errorf("DottedExtension = %q", got)
	}
}
