package script

import (
	"regexp"
	"strconv"
	"strings"

	"vidxiv/types"
)

var (
	sceneHeaderRe = regexp.MustCompile(`(?mi)^\s*Scene\s+(\d+)\s*:`)
	figureHintRe  = regexp.MustCompile(`(?i)fig(?:ure)?\.?\s*(\d+)`)
)

// figureKeywords trigger a best-effort mapping to the first paper
// figure when a hint names no explicit number.
var figureKeywords = []string{"graph", "chart", "plot", "diagram", "image", "photo", "table"}

// Parse converts raw scene-formatted text into an ordered scene list.
// Scenes with empty narration are dropped; an empty result means the
// text was unusable.
func Parse(raw string) []types.Scene {
	locs := sceneHeaderRe.FindAllStringIndex(raw, -1)
	var scenes []types.Scene
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := raw[loc[1]:end]

		scene := types.Scene{
			Title:     fieldValue(block, "Title"),
			Narration: fieldValue(block, "Text"),
			Visual:    parseHint(fieldValue(block, "Figure Hint")),
		}
		if scene.Narration == "" {
			continue
		}
		scenes = append(scenes, scene)
	}
	return scenes
}

// parseHint maps a free-form figure hint to a visual reference.
// "Figure 2" style hints become a 0-based figure index; bare visual
// keywords fall back to the first figure; anything else means no
// figure was requested.
func parseHint(hint string) types.VisualRef {
	hint = strings.TrimSpace(hint)
	if hint == "" || strings.EqualFold(hint, "none") {
		return types.NoVisual()
	}

	if m := figureHintRe.FindStringSubmatch(hint); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return types.FigureRef(n - 1)
		}
	}

	lower := strings.ToLower(hint)
	for _, kw := range figureKeywords {
		if strings.Contains(lower, kw) {
			return types.FigureRef(0)
		}
	}
	return types.NoVisual()
}

// fieldValue extracts the value of a "Key: value" line from a scene
// block, tolerating extra whitespace and multi-line values up to the
// next known field.
func fieldValue(block, key string) string {
	// [ \t]* after the colon keeps an empty value from swallowing the
	// next line's field.
	re := regexp.MustCompile(`(?mi)^\s*` + regexp.QuoteMeta(key) + `\s*:[ \t]*(.*)$`)
	m := re.FindStringSubmatchIndex(block)
	if m == nil {
		return ""
	}
	value := block[m[2]:m[3]]

	// Text values may wrap onto following lines until the next field
	rest := strings.TrimPrefix(block[m[3]:], "\n")
	for _, line := range strings.Split(rest, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isFieldLine(trimmed) {
			break
		}
		value += " " + trimmed
	}
	return strings.TrimSpace(value)
}

func isFieldLine(line string) bool {
	for _, key := range []string{"Title:", "Text:", "Figure Hint:", "Scene "} {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}
