package semantic

import (
	"fmt"
	"strings"
)

// The rubric asks for a single decimal line so the parser has a stable
// anchor, but parsing never depends on the exact wording coming back.
const promptTemplate = `You are a grading expert for a retrieval system. Judge whether the passage
below contains information that directly or indirectly answers the question.

Question: %s

Passage: %s

Scoring bands:
- 1.000: the passage contains a direct, explicit answer to the question.
- 0.800 - 0.999: highly relevant; it provides the core evidence needed to answer.
- 0.600 - 0.799: on-topic, but the reader must infer or summarize to get an answer.
- 0.300 - 0.599: touches the edges of the question without answering it.
- 0.001 - 0.299: looks related but on inspection does not answer the question.
- 0.000: completely unrelated.

First identify which sentence in the passage is the key evidence, then grade.
Respond in exactly this format with no extra text:

score: <decimal between 0.000 and 1.000, three decimal places>
reason: <one sentence>`

func BuildPrompt(query, passage string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(query), strings.TrimSpace(passage))
}
