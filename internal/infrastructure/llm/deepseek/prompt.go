package deepseek

import (
	"github.com/dkrasnov/docvault/internal/core/domain"
)

// systemPrompt fixes the category taxonomy and the output contract. The
// labels here must match the normalizer whitelist exactly; prompt_test locks
// the two together.
const systemPrompt = `You are a professional document classifier.
Identify the category based on these rules:
- Receipt: store transaction slips, bills and billing documents.
- ID: government identification like passports or licenses.
- Work: everything else, such as reports, resumes and other professional or academic documents.

Respond ONLY with a valid JSON object containing a "category" field and a "summary" field.
The summary is 2-3 sentences derived only from the provided content, never invented.`

// buildClassificationMessages assembles the modality-appropriate request: one
// fixed system turn plus one user turn selected by the content variant.
func buildClassificationMessages(url string, content domain.ExtractedContent) []message {
	messages := []message{{Role: "system", Content: systemPrompt}}

	switch content.Kind {
	case domain.ContentText:
		messages = append(messages, message{
			Role:    "user",
			Content: "Analyze this extracted text: " + content.Text,
		})
	case domain.ContentImage:
		messages = append(messages, message{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: "Analyze this document image:"},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + content.ImageBase64}},
			},
		})
	default:
		// No extractable content: the URL itself is the only analysis cue.
		messages = append(messages, message{
			Role:    "user",
			Content: "Analyze this document URL: " + url,
		})
	}
	return messages
}
