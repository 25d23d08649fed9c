package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

type mockGenerator struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
	prompts    []string
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.generateFn(ctx, prompt)
}

func TestContentService_UsesGeneratedText(t *testing.T) {
	gen := &mockGenerator{generateFn: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "image generation prompt") {
			return "  Snowy office with warm lights  ", nil
		}
		return "Merry Christmas, network! 🎄 #Christmas", nil
	}}
	svc := NewContentService(gen)

	caption := svc.GenerateCaption(context.Background(), "Christmas")
	prompt := svc.GenerateImagePrompt(context.Background(), "Christmas")

	if caption != "Merry Christmas, network! 🎄 #Christmas" {
		t.Errorf("caption = %q", caption)
	}
	if prompt != "Snowy office with warm lights" {
		t.Errorf("image prompt = %q, want trimmed text", prompt)
	}
	if len(gen.prompts) != 2 || !strings.Contains(gen.prompts[0], `"Christmas"`) {
		t.Errorf("prompts = %v, want two prompts seeded with the occasion", gen.prompts)
	}
}

func TestContentService_FallbackOnError(t *testing.T) {
	gen := &mockGenerator{generateFn: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	svc := NewContentService(gen)

	caption := svc.GenerateCaption(context.Background(), "Earth Day")
	prompt := svc.GenerateImagePrompt(context.Background(), "Earth Day")

	if caption != FallbackCaption("Earth Day") {
		t.Errorf("caption = %q, want fallback", caption)
	}
	if !strings.Contains(caption, "Happy Earth Day!") || !strings.Contains(caption, "#LinkedIn") {
		t.Errorf("fallback caption must embed occasion and hashtags: %q", caption)
	}
	if prompt != FallbackImagePrompt {
		t.Errorf("image prompt = %q, want fallback", prompt)
	}
}

func TestContentService_FallbacksAreIndependent(t *testing.T) {
	calls := 0
	gen := &mockGenerator{generateFn: func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("timeout")
		}
		return "Generated image prompt", nil
	}}
	svc := NewContentService(gen)

	caption := svc.GenerateCaption(context.Background(), "Halloween")
	prompt := svc.GenerateImagePrompt(context.Background(), "Halloween")

	if caption != FallbackCaption("Halloween") {
		t.Errorf("caption = %q, want fallback", caption)
	}
	if prompt != "Generated image prompt" {
		t.Errorf("image prompt = %q, want generated text", prompt)
	}
}

func TestContentService_EmptyTextFallsBack(t *testing.T) {
	gen := &mockGenerator{generateFn: func(ctx context.Context, prompt string) (string, error) {
		return "   ", nil
	}}
	if got := NewContentService(gen).GenerateCaption(context.Background(), "Labour Day"); got != FallbackCaption("Labour Day") {
		t.Errorf("caption = %q, want fallback", got)
	}
}

func TestContentService_PanicFallsBack(t *testing.T) {
	gen := &mockGenerator{generateFn: func(ctx context.Context, prompt string) (string, error) {
		panic("nil model")
	}}
	if got := NewContentService(gen).GenerateImagePrompt(context.Background(), "Labour Day"); got != FallbackImagePrompt {
		t.Errorf("image prompt = %q, want fallback", got)
	}
}

func TestContentService_NilGenerator(t *testing.T) {
	if got := NewContentService(nil).GenerateCaption(context.Background(), "Christmas"); got != FallbackCaption("Christmas") {
		t.Errorf("caption = %q, want fallback", got)
	}
}

func TestPlaceholderImageURL(t *testing.T) {
	tests := []struct {
		occasion string
		want     string
	}{
		{"Christmas", "https://via.placeholder.com/800x600/4A90E2/FFFFFF?text=Christmas"},
		{"Earth Day", "https://via.placeholder.com/800x600/4A90E2/FFFFFF?text=Earth%20Day"},
		{"Valentine's Day", "https://via.placeholder.com/800x600/4A90E2/FFFFFF?text=Valentine's%20Day"},
		{"Independence Day (USA)", "https://via.placeholder.com/800x600/4A90E2/FFFFFF?text=Independence%20Day%20(USA)"},
		{"Go! *now* ~ok", "https://via.placeholder.com/800x600/4A90E2/FFFFFF?text=Go!%20*now*%20~ok"},
		{"a+b & c=d/e", "https://via.placeholder.com/800x600/4A90E2/FFFFFF?text=a%2Bb%20%26%20c%3Dd%2Fe"},
		{"Tuesday, November 25, 2025", "https://via.placeholder.com/800x600/4A90E2/FFFFFF?text=Tuesday%2C%20November%2025%2C%202025"},
	}
	for _, tt := range tests {
		if got := PlaceholderImageURL(tt.occasion); got != tt.want {
			t.Errorf("PlaceholderImageURL(%q) = %q, want %q", tt.occasion, got, tt.want)
		}
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("LinkedIn ")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	if got := responseText(resp); got != "Hello LinkedIn" {
		t.Errorf("responseText = %q", got)
	}
	if got := responseText(nil); got != "" {
		t.Errorf("responseText(nil) = %q", got)
	}
}
