package analysis

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

var (
	// [HH:MM:SS] Speaker: content
	strictLinePattern = regexp.MustCompile(`^\s*\[(\d{2}:\d{2}:\d{2})\]\s*([^:]+):(.*)$`)
	// any bracketed HH:MM:SS anywhere in the line
	timestampPattern = regexp.MustCompile(`\[(\d{2}:\d{2}:\d{2})\]`)
)

// ExtractUtterances parses transcript text into utterances, one per recognised line,
// in line order. Lines that carry no bracketed timestamp and speaker are skipped.
func ExtractUtterances(text string) []entities.Utterance {
	utterances := make([]entities.Utterance, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if u, ok := parseStrict(line); ok {
			utterances = append(utterances, u)
			continue
		}
		if u, ok := parseLenient(line); ok {
			utterances = append(utterances, u)
		}
	}
	return utterances
}

func parseStrict(line string) (entities.Utterance, bool) {
	m := strictLinePattern.FindStringSubmatch(line)
	if m == nil {
		return entities.Utterance{}, false
	}
	return entities.Utterance{
		Timestamp: m[1],
		Speaker:   strings.TrimSpace(m[2]),
		Content:   strings.TrimSpace(m[3]),
	}, true
}

func parseLenient(line string) (entities.Utterance, bool) {
	loc := timestampPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return entities.Utterance{}, false
	}
	rest := line[loc[1]:]
	speaker, content, found := strings.Cut(rest, ":")
	if !found {
		return entities.Utterance{}, false
	}
	return entities.Utterance{
		Timestamp: line[loc[2]:loc[3]],
		Speaker:   strings.TrimSpace(speaker),
		Content:   strings.TrimSpace(content),
	}, true
}

// renderConversation flattens utterances into "speaker: content" lines
func renderConversation(utterances []entities.Utterance) string {
	lines := make([]string, 0, len(utterances))
	for _, u := range utterances {
		lines = append(lines, u.Line())
	}
	return strings.Join(lines, "\n")
}
