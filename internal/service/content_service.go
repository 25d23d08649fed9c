package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// TextGenerator produces prose for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ContentService never fails: provider errors are replaced by fixed fallback text.
type ContentService interface {
	GenerateCaption(ctx context.Context, occasion string) string
	GenerateImagePrompt(ctx context.Context, occasion string) string
}

type contentService struct {
	gen TextGenerator
}

func NewContentService(gen TextGenerator) ContentService {
	return &contentService{gen: gen}
}

const placeholderImageBase = "https://via.placeholder.com/800x600/4A90E2/FFFFFF?text="

const FallbackImagePrompt = "Professional celebration image with blue and gold tones, modern office setting, inspiring atmosphere"

func FallbackCaption(occasion string) string {
	return fmt.Sprintf(`🎉 Happy %s!

Wishing everyone a wonderful day filled with opportunities and success. Let's make today count!

What are you working on today? Share in the comments! 👇

#MondayMotivation #Success #Growth #LinkedIn #Professional`, occasion)
}

// PlaceholderImageURL derives the stand-in image for an occasion.
func PlaceholderImageURL(occasion string) string {
	return placeholderImageBase + escapeURIComponent(occasion)
}

// componentUnescaper restores the characters a URI component may carry literally
// and that url.QueryEscape encodes anyway.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeURIComponent leaves only A-Z a-z 0-9 and - _ . ! ~ * ' ( ) unescaped.
func escapeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func captionPrompt(occasion string) string {
	return fmt.Sprintf(`Create a professional and engaging LinkedIn post for "%s".

Requirements:
- Make it inspiring and professional
- Include relevant emojis (2-3 maximum)
- Keep it between 100-150 words
- Add 3-5 relevant hashtags at the end
- Make it suitable for a business audience
- Focus on positive messaging

Return only the post text without any additional formatting or explanations.`, occasion)
}

func imagePromptPrompt(occasion string) string {
	return fmt.Sprintf(`Create a brief, detailed image generation prompt for "%s".

Requirements:
- Describe a professional, celebratory image suitable for LinkedIn
- Include colors, mood, and visual elements
- Keep it under 150 characters
- Make it professional and business-appropriate
- Focus on positive, uplifting imagery

Return only the image prompt without any additional text.`, occasion)
}

func (s *contentService) GenerateCaption(ctx context.Context, occasion string) string {
	text, err := s.generate(ctx, captionPrompt(occasion))
	if err != nil {
		slog.Warn("caption generation failed, using fallback", "occasion", occasion, "error", err)
		return FallbackCaption(occasion)
	}
	return text
}

func (s *contentService) GenerateImagePrompt(ctx context.Context, occasion string) string {
	text, err := s.generate(ctx, imagePromptPrompt(occasion))
	if err != nil {
		slog.Warn("image prompt generation failed, using fallback", "occasion", occasion, "error", err)
		return FallbackImagePrompt
	}
	return text
}

func (s *contentService) generate(ctx context.Context, prompt string) (text string, err error) {
	if s.gen == nil {
		return "", ErrGeneratorUnavailable
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("text generator panicked: %v", p)
		}
	}()

	text, err = s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}
