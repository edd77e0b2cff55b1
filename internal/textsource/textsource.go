// Package textsource turns raw text into named exercise blocks.
package textsource

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/torusk/Dvorak-Typing/internal/model"
)

//go:embed texts/*.txt
var textFS embed.FS

const defaultTextFile = "texts/default.txt"

// fallbackText is used when even the bundled default cannot be parsed.
const fallbackText = "the quick brown fox jumps over the lazy dog"

// ParseBlocks splits raw text into named exercise blocks. A heading line
// (one or more '#' followed by whitespace) names the block that follows;
// a blank line also starts a new block. The remaining lines of each block
// are joined with single spaces, and blocks without content are dropped.
func ParseBlocks(raw string) []model.Exercise {
	var (
		out     []model.Exercise
		name    string
		content []string
	)
	unnamed := 0
	flush := func() {
		if len(content) == 0 {
			name = ""
			return
		}
		if name == "" {
			unnamed++
			name = fmt.Sprintf("Exercise %d", unnamed)
		}
		out = append(out, model.Exercise{
			Name: name,
			Text: strings.Join(content, " "),
		})
		name = ""
		content = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			// A blank line between a heading and its text keeps the
			// pending name for the paragraph that follows.
			if len(content) > 0 {
				flush()
			}
			continue
		}
		if heading, ok := parseHeading(line); ok {
			flush()
			name = heading
			continue
		}
		content = append(content, line)
	}
	flush()
	return out
}

func parseHeading(line string) (string, bool) {
	if !strings.HasPrefix(line, "#") {
		return "", false
	}
	rest := strings.TrimLeft(line, "#")
	if rest == line {
		return "", false
	}
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// LoadFile reads and parses an exercise file.
func LoadFile(path string) ([]model.Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	blocks := ParseBlocks(string(data))
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no usable exercise blocks in %s", path)
	}
	return blocks, nil
}

// Default returns the bundled exercises. It never fails: if the embedded
// text yields nothing, a minimal in-memory fallback block is returned.
func Default() []model.Exercise {
	data, err := textFS.ReadFile(defaultTextFile)
	if err == nil {
		if blocks := ParseBlocks(string(data)); len(blocks) > 0 {
			return blocks
		}
	}
	return []model.Exercise{{Name: "Fallback", Text: fallbackText}}
}
