package extract

import (
	"strings"

	"github.com/ja-he/wardmap/internal/syntax"
)

// Block is the `{ ... }` region following a pipeline statement. Line numbers
// are 1-based.
type Block struct {
	Pipeline int
	Open     int
	// Close is the line of the closing brace, 0 for an unterminated block.
	Close int
	// Last is the last line belonging to the block: Close, or the line
	// before the statement that interrupted an unterminated block.
	Last     int
	Children []int
}

// Terminated tells whether the block has a closing brace.
func (b Block) Terminated() bool { return b.Close > 0 }

// Inline tells whether the opening brace sits on the pipeline line itself.
func (b Block) Inline() bool { return b.Open == b.Pipeline }

// Blocks locates the pipeline blocks of a text.
func Blocks(text string) []Block {
	return scanBlocks(syntax.SplitLines(text))
}

// BlockLines returns the set of lines belonging to pipeline blocks (braces
// and children, not the pipeline statements themselves).
func BlockLines(text string) map[int]bool {
	return blockLines(Blocks(text))
}

// StripBlockOpen removes a trailing opening brace from a pipeline line.
func StripBlockOpen(line string) (string, bool) {
	trimmed := strings.TrimRight(line, " \t")
	if strings.HasSuffix(trimmed, "{") {
		return strings.TrimRight(trimmed[:len(trimmed)-1], " \t"), true
	}
	return line, false
}

// scanBlocks finds every block opened right after a pipeline statement,
// either by a trailing `{` or by a `{` on the next non-blank line. A block
// runs to its `}`; a statement other than a child component (or the end of
// the text) before that leaves the block unterminated.
func scanBlocks(lines []string) []Block {
	blocks := []Block{}
	for i := 0; i < len(lines); i++ {
		if syntax.IsComment(lines[i]) || syntax.Keyword(lines[i]) != "pipeline" {
			continue
		}
		b := Block{Pipeline: i + 1}

		if _, inline := StripBlockOpen(lines[i]); inline {
			b.Open = i + 1
		} else {
			j := i + 1
			for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
				j++
			}
			if j < len(lines) && strings.TrimSpace(lines[j]) == "{" {
				b.Open = j + 1
			}
		}
		if b.Open == 0 {
			continue
		}

		b.Last = len(lines)
		for k := b.Open; k < len(lines); k++ {
			trimmed := strings.TrimSpace(lines[k])
			if trimmed == "}" {
				b.Close = k + 1
				b.Last = k + 1
				break
			}
			if trimmed == "" || syntax.IsComment(trimmed) {
				continue
			}
			if syntax.Keyword(trimmed) == "component" {
				b.Children = append(b.Children, k+1)
				continue
			}
			b.Last = k
			break
		}

		blocks = append(blocks, b)
		i = b.Last - 1
	}
	return blocks
}

func blockLines(blocks []Block) map[int]bool {
	inside := map[int]bool{}
	for _, b := range blocks {
		start := b.Open
		if b.Inline() {
			start++
		}
		for n := start; n <= b.Last; n++ {
			inside[n] = true
		}
	}
	return inside
}
