package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	extractout "pmhub/internal/modules/extract/adapter/out"
	"pmhub/internal/modules/extract/domain"
	apperrors "pmhub/internal/platform/errors"

	"github.com/rs/zerolog"
)

func completionServer(t *testing.T, content string, seen *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		*seen = string(body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": content}}},
			"usage":   map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
}

func TestOpenAIExtractorSendsImageAndDecodesTasks(t *testing.T) {
	t.Parallel()
	var seen string
	content := "```json\n{\"tasks\":[{\"title\":\"Ship beta\",\"start_date\":\"2024-03-01\",\"end_date\":\"2024-03-15\",\"priority\":\"high\",\"confidence\":0.9}]}\n```"
	server := completionServer(t, content, &seen)
	defer server.Close()

	extractor, err := extractout.NewOpenAIExtractor("sk-test", server.URL+"/v1", "gpt-4o-mini", zerolog.Nop())
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	candidates, err := extractor.Extract(context.Background(), domain.Image{Name: "board.png", MIMEType: "image/png", Data: []byte("png")})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Title != "Ship beta" || candidates[0].EndDate != "2024-03-15" || candidates[0].Confidence != 0.9 {
		t.Fatalf("unexpected candidates %+v", candidates)
	}
	if !strings.Contains(seen, "data:image/png;base64,cG5n") || !strings.Contains(seen, "json_object") {
		t.Fatalf("request should carry the image data url and json mode: %s", seen)
	}
}

func TestOpenAIExtractorRejectsMalformedContent(t *testing.T) {
	t.Parallel()
	var seen string
	server := completionServer(t, "I could not read the image.", &seen)
	defer server.Close()
	extractor, err := extractout.NewOpenAIExtractor("sk-test", server.URL+"/v1", "gpt-4o-mini", zerolog.Nop())
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	if _, err := extractor.Extract(context.Background(), domain.Image{Name: "a.png", MIMEType: "image/png", Data: []byte("x")}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewOpenAIExtractorWithoutKey(t *testing.T) {
	t.Parallel()
	if _, err := extractout.NewOpenAIExtractor(" ", "", "gpt-4o-mini", zerolog.Nop()); !errors.Is(err, apperrors.ErrExtractorDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestFileImageLoaderDetectsType(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "shot.png")
	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	if err := os.WriteFile(pngPath, header, 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	image, err := extractout.NewFileImageLoader().Load(context.Background(), pngPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if image.MIMEType != "image/png" || image.Name != "shot.png" || len(image.Data) != len(header) {
		t.Fatalf("unexpected image %+v", image)
	}
	if _, err := extractout.NewFileImageLoader().Load(context.Background(), filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
