package services

import (
	"fmt"
	"strings"
)

// Prompt templates for the two generation flows. The instructions at
// the end exist to keep completions parseable: JSON only, no fences,
// and base64 for anything multi-line (a raw newline inside a JSON
// string would sink the whole parse). The extract package still guards
// against models ignoring them.

func ExplanationPrompt(code, language string) string {
	if strings.TrimSpace(language) == "" {
		language = "unspecified"
	}
	return strings.Join([]string{
		"Explain the following code in a structured technical format.",
		"",
		fmt.Sprintf("Code:\n%s", code),
		"",
		fmt.Sprintf("Language:\n%s", language),
		"",
		"Return ONLY valid JSON in the following structure:",
		"{",
		`  "summary": "2-4 line explanation of what the code does",`,
		`  "timeComplexity": "Big-O time complexity with reason",`,
		`  "spaceComplexity": "Big-O space complexity with reason",`,
		`  "logicBreakdown": [`,
		`    "step 1",`,
		`    "step 2",`,
		`    "step 3"`,
		"  ],",
		`  "edgeCases": [`,
		`    "edge case 1",`,
		`    "edge case 2"`,
		"  ],",
		`  "bugs": [`,
		`    "possible bug 1",`,
		`    "possible bug 2"`,
		"  ],",
		`  "beginnerExplanation": "Simple explanation a beginner can understand",`,
		`  "recommendation": "one concise recommendation to improve the code",`,
		`  "optimizedVersion": "Improved or more efficient version of the code (same language)",`,
		`  "keyConcepts": [`,
		`    "concept 1",`,
		`    "concept 2",`,
		`    "concept 3"`,
		"  ]",
		"}",
		"",
		"STRICT RULES:",
		"- Return ONLY JSON",
		"- No markdown",
		"- No numbering",
		"- No explanation outside JSON",
		"- No backticks",
		"- No headings",
	}, "\n")
}

func TutorialPrompt(topic, level, category, language string) string {
	return strings.Join([]string{
		fmt.Sprintf("Create a compact study card for the %s %q tailored for %s learners.", category, topic, level),
		"Return ONLY valid JSON (no markdown/backticks) matching this shape:",
		"{",
		`  "title": "Readable title for the concept",`,
		`  "level": "beginner | medium | hard",`,
		`  "category": "algorithm | data structure",`,
		`  "theory": "3-5 sentences explaining the intuition and when it matters",`,
		`  "implementationSteps": ["step 1", "step 2", "step 3"],`,
		`  "pseudocodeB64": "base64-encoded pseudocode text",`,
		`  "codeExample": { "language": "preferred code language", "codeB64": "base64-encoded code snippet" },`,
		`  "useCases": ["when to use it", "another good use"],`,
		`  "complexity": { "time": "O(...)" , "space": "O(...)" },`,
		`  "tips": ["practical tip or pitfall", "one more improvement"],`,
		`  "relatedConcepts": ["related topic", "another"]`,
		"}",
		"Rules: all free-text (theory, pseudocodeB64 decoded, codeExample.codeB64 decoded) must be concise; codeExample under 30 lines.",
		"Do NOT include raw newlines in JSON strings; encode multi-line text in base64 fields only.",
		fmt.Sprintf("Preferred language for codeExample: %s.", language),
	}, "\n")
}
