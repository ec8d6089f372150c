package out

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pmhub/internal/modules/extract/domain"
)

// maxImageBytes matches the upload limit of the hosted vision endpoints.
const maxImageBytes = 20 << 20

type FileImageLoader struct{}

func NewFileImageLoader() FileImageLoader {
	return FileImageLoader{}
}

func (FileImageLoader) Load(_ context.Context, path string) (domain.Image, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Image{}, fmt.Errorf("image path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return domain.Image{}, fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > maxImageBytes {
		return domain.Image{}, fmt.Errorf("image %s is larger than %d bytes", path, maxImageBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Image{}, fmt.Errorf("read image: %w", err)
	}
	return domain.Image{Name: filepath.Base(path), MIMEType: detectMIME(path, data), Data: data}, nil
}

// detectMIME sniffs the content first and falls back to the extension.
func detectMIME(path string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt
	}
	return sniffed
}
