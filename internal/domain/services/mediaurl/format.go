package mediaurl

import (
	"fmt"

	"github.com/easayliu/media-url-resolver/internal/domain/entities"
)

// FormatURL 生成getmedia地址
//   - width == 0:               /getmedia/{guid}/{name}
//   - width > 0, height == 0:   /getmedia/{guid}/{name}?width={w}&ext={ext}
//   - width > 0, height > 0:    /getmedia/{guid}/{name}?width={w}&height={h}&ext={ext}
//
// 其余组合（负数、只给height）返回 ok=false，由调用方回退到原始URL
func FormatURL(file *entities.MediaFile, width, height int) (string, bool) {
	switch {
	case width == 0:
		return fmt.Sprintf("/getmedia/%s/%s", file.GUID, file.Name), true
	case width > 0 && height == 0:
		return fmt.Sprintf("/getmedia/%s/%s?width=%d&ext=%s", file.GUID, file.Name, width, file.Extension), true
	case width > 0 && height > 0:
		return fmt.Sprintf("/getmedia/%s/%s?width=%d&height=%d&ext=%s", file.GUID, file.Name, width, height, file.Extension), true
	default:
		return "", false
	}
}
