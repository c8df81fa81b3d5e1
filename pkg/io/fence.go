package io

import (
	"bufio"
	"slices"
	"strings"
)

// fencePriority orders the fence tags that may hold a graph; diagram
// fences win over generic ones.
var fencePriority = []string{"arch", "aveva-arch", "json", "yaml", "yml", ""}

type fence struct {
	tag  string
	body string
}

// ExtractBlock returns the graph document embedded in text.
//
// When text contains Markdown code fences the body of the best one is
// returned: ```arch and ```aveva-arch first, then ```json, ```yaml, and
// finally an untagged fence. Fences in other languages are ignored, and text
// made only of those yields ErrNoGraph. Text without fences is returned
// trimmed. Blank input yields ErrNoGraph.
func ExtractBlock(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNoGraph
	}
	fences := scanFences(text)
	if len(fences) == 0 {
		return strings.TrimSpace(text), nil
	}
	for _, tag := range fencePriority {
		if i := slices.IndexFunc(fences, func(f fence) bool { return f.tag == tag }); i >= 0 {
			return strings.TrimSpace(fences[i].body), nil
		}
	}
	return "", ErrNoGraph
}

// scanFences collects every closed ``` block. An unterminated final block
// is ignored.
func scanFences(text string) []fence {
	var (
		out  []fence
		open bool
		cur  fence
		body strings.Builder
	)
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case !open && strings.HasPrefix(trimmed, "```"):
			open = true
			cur = fence{tag: strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "```")))}
			body.Reset()
		case open && trimmed == "```":
			open = false
			cur.body = body.String()
			out = append(out, cur)
		case open:
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	return out
}
