package deepseek

import (
	"encoding/json"
	"strings"

	"github.com/dkrasnov/docvault/internal/core/domain"
)

// Normalize repairs a raw classifier response into a usable result. It is
// total: the structured JSON shape is tried first, then the legacy
// "Category: Summary" shape, then a fixed default. The category is validated
// against the closed taxonomy and anything else collapses to the catch-all
// label; normalization never emits a failure-tier category.
func Normalize(raw string) domain.ClassificationResult {
	result, ok := parseStructured(raw)
	if !ok {
		result, ok = parseLegacy(raw)
	}
	if !ok {
		return domain.ClassificationResult{
			Category: domain.DefaultCategory,
			Summary:  domain.DefaultSummary,
		}
	}

	if !result.Category.InTaxonomy() {
		result.Category = domain.DefaultCategory
	}
	if strings.TrimSpace(result.Summary) == "" {
		result.Summary = domain.PlaceholderSummary
	}
	return result
}

func parseStructured(raw string) (domain.ClassificationResult, bool) {
	obj := extractJSONObject(raw)
	if !strings.HasPrefix(obj, "{") {
		return domain.ClassificationResult{}, false
	}

	var parsed struct {
		Category string `json:"category"`
		Summary  string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return domain.ClassificationResult{}, false
	}
	return domain.ClassificationResult{
		Category: domain.Category(strings.TrimSpace(parsed.Category)),
		Summary:  strings.TrimSpace(parsed.Summary),
	}, true
}

// parseLegacy handles the historical free-text "Category: Summary" response
// shape, kept only for backward compatibility with older upstream models.
func parseLegacy(raw string) (domain.ClassificationResult, bool) {
	before, after, found := strings.Cut(raw, ":")
	if !found {
		return domain.ClassificationResult{}, false
	}
	category := strings.TrimSpace(before)
	summary := strings.TrimSpace(after)
	if category == "" && summary == "" {
		return domain.ClassificationResult{}, false
	}
	return domain.ClassificationResult{
		Category: domain.Category(category),
		Summary:  summary,
	}, true
}

// extractJSONObject salvages the outermost object from responses that wrap
// JSON in markdown fences or surrounding prose.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
