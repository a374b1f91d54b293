package pipeline

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/RohitSen1235/resumegen/internal/llm"
	"github.com/RohitSen1235/resumegen/internal/token"
)

// FallbackJobTitle is used when title extraction fails or produces nothing.
const FallbackJobTitle = "Ambiguous_job_title"

const jobTitleSystemPrompt = "You are an expert recruiter. Extract only the main job title/role " +
	"from the given job description. Return only the title, nothing else."

// extractJobTitle asks the LLM for the job title with a dedicated short
// prompt and sanitizes it for use in keys and file names.
func (o *Orchestrator) extractJobTitle(ctx context.Context, acct *token.Accountant, jobDescription string) string {
	prompt := "Extract the main job title from this job description:\n\n" + jobDescription
	resp, err := o.llm.ChatCompletion(ctx, llm.Request{
		Model: o.opts.LLMModel,
		Messages: []llm.Message{
			{Role: "system", Content: jobTitleSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   30,
	})
	if err != nil {
		o.logger.Warn("pipeline: job title extraction failed", "error", err)
		return FallbackJobTitle
	}
	acct.RecordLLMCall(prompt, resp.Content)

	title := SanitizeJobTitle(resp.Content)
	if title == "" {
		return FallbackJobTitle
	}
	return title
}

// foldAccents strips combining marks so accented titles survive the ASCII
// sanitization below.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeJobTitle lowercases the title, joins words with hyphens and maps
// every other non-alphanumeric rune to an underscore.
func SanitizeJobTitle(title string) string {
	folded, _, err := transform.String(foldAccents, title)
	if err == nil {
		title = folded
	}

	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "-_")
}
