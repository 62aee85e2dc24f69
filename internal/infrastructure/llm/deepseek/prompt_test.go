package deepseek

import (
	"strings"
	"testing"

	"github.com/dkrasnov/docvault/internal/core/domain"
)

// The taxonomy embedded in the system prompt and the normalizer whitelist
// must never drift apart.
func TestSystemPromptStaysInLockstepWithTaxonomy(t *testing.T) {
	for _, category := range domain.Taxonomy() {
		if !strings.Contains(systemPrompt, string(category)) {
			t.Fatalf("system prompt is missing taxonomy label %q", category)
		}
	}
	for _, category := range []domain.Category{domain.CategoryGeneral, domain.CategoryError} {
		if strings.Contains(systemPrompt, string(category)+":") {
			t.Fatalf("system prompt must not define failure-tier label %q", category)
		}
	}
}

func TestBuildMessagesTextVariant(t *testing.T) {
	messages := buildClassificationMessages("https://files.example/a.pdf", domain.TextContent("hello world"))

	if len(messages) != 2 {
		t.Fatalf("expected system + user turns, got %d", len(messages))
	}
	if messages[0].Role != "system" {
		t.Fatalf("first turn role = %q", messages[0].Role)
	}
	userContent, ok := messages[1].Content.(string)
	if !ok {
		t.Fatalf("text variant must produce a plain text turn, got %T", messages[1].Content)
	}
	if !strings.Contains(userContent, "Analyze this extracted text") || !strings.Contains(userContent, "hello world") {
		t.Fatalf("unexpected user turn: %q", userContent)
	}
}

func TestBuildMessagesImageVariantCarriesDataURI(t *testing.T) {
	messages := buildClassificationMessages("https://files.example/scan.jpg", domain.ImageContent("aGVsbG8="))

	parts, ok := messages[1].Content.([]contentPart)
	if !ok {
		t.Fatalf("image variant must produce a multimodal turn, got %T", messages[1].Content)
	}
	if len(parts) != 2 {
		t.Fatalf("expected instruction + image parts, got %d", len(parts))
	}
	if parts[0].Type != "text" || parts[0].Text == "" {
		t.Fatalf("first part must be the instruction, got %+v", parts[0])
	}
	if parts[1].Type != "image_url" || parts[1].ImageURL == nil {
		t.Fatalf("second part must be the image, got %+v", parts[1])
	}
	if parts[1].ImageURL.URL != "data:image/jpeg;base64,aGVsbG8=" {
		t.Fatalf("unexpected data uri: %q", parts[1].ImageURL.URL)
	}
}

func TestBuildMessagesEmptyVariantFallsBackToURL(t *testing.T) {
	messages := buildClassificationMessages("https://files.example/unknown.bin", domain.EmptyContent())

	userContent, ok := messages[1].Content.(string)
	if !ok {
		t.Fatalf("empty variant must produce a plain text turn, got %T", messages[1].Content)
	}
	if !strings.Contains(userContent, "https://files.example/unknown.bin") {
		t.Fatalf("url cue missing from user turn: %q", userContent)
	}
}
