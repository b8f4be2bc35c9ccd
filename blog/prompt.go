package blog

import (
	"fmt"
	"unicode/utf8"
)

const systemPrompt = "You are a blog writer who creates content strictly from provided transcripts without adding external information."

const promptTemplate = `
You are a blog writer who creates content STRICTLY from video transcripts.

TRANSCRIPT FROM VIDEO "%s":
%s

INSTRUCTIONS:
1. Create a blog post using ONLY the information from the transcript above
2. DO NOT add external knowledge or information not in the transcript
3. Use the actual content, topics, and examples mentioned in the transcript
4. Create a relevant title based on what's discussed in the transcript
5. Structure: Title, Introduction, Main Content (2-3 sections), Conclusion
6. Include specific quotes or points from the transcript
7. Stay true to the actual video content

Generate a complete blog post now:
`

// Truncate cuts text to at most budget characters. Characters are runes, so
// multi-byte text is never split inside a code point.
func Truncate(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= budget {
		return text
	}
	n := 0
	for i := range text {
		if n == budget {
			return text[:i]
		}
		n++
	}
	return text
}

// BuildPrompt embeds the already capped transcript and the title in the
// fixed instruction template.
func BuildPrompt(transcript, title string) string {
	return fmt.Sprintf(promptTemplate, title, transcript)
}
