package transform

import (
	"fmt"
	"strings"
)

// buildPrompt assembles the prompt for a request. Every prompt carries an
// explicit instruction to leave the code tokens unchanged; this is advisory
// only, the restorer tolerates codes the model altered anyway.
func buildPrompt(req Request, text string, codes []string) string {
	if req.PromptTemplate != "" {
		prompt := strings.ReplaceAll(req.PromptTemplate, "{text}", text)
		prompt = strings.ReplaceAll(prompt, "{target_lang}", req.TargetLanguage)
		prompt = strings.ReplaceAll(prompt, "{source_lang}", req.SourceLanguage)
		return prompt
	}

	if req.Op == OpTranslate {
		return translatePrompt(req, text, codes)
	}
	return summarizePrompt(req, text, codes)
}

func summarizePrompt(req Request, text string, codes []string) string {
	var b strings.Builder
	b.WriteString("Please provide a concise summary of the following text.\n")
	b.WriteString("Focus on the main points and key information.\n")
	if req.MaxWords > 0 {
		fmt.Fprintf(&b, "Keep the summary under %d words.\n", req.MaxWords)
	}
	b.WriteString(codeInstruction(codes))
	fmt.Fprintf(&b, "\nText to summarize:\n%s\n\nSummary:", text)
	return b.String()
}

func translatePrompt(req Request, text string, codes []string) string {
	var b strings.Builder
	if req.SourceLanguage != "" {
		fmt.Fprintf(&b, "Translate the following text from %s to %s.\n", req.SourceLanguage, req.TargetLanguage)
	} else {
		fmt.Fprintf(&b, "Translate the following text to %s.\n", req.TargetLanguage)
	}
	b.WriteString("Maintain the original meaning and tone. ")
	b.WriteString(codeInstruction(codes))
	fmt.Fprintf(&b, "\nText to translate:\n%s\n\nTranslation in %s:", text, req.TargetLanguage)
	return b.String()
}

func codeInstruction(codes []string) string {
	if len(codes) == 0 {
		return "Keep any abbreviations or codes unchanged.\n"
	}
	return fmt.Sprintf("Keep any abbreviations or codes (like %s) unchanged.\n", strings.Join(codes, ", "))
}
