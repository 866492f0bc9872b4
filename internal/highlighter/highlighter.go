package highlighter

import (
	"bytes"
	"strings"
	"time"

	. "sled/internal/logger"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

func DetectLang(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil { return "" }
	config := lexer.Config()
	if config == nil { return "" }
	return strings.ToLower(config.Name)
}

type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// New returns a highlighter for a 256 color terminal. Unknown theme names use
// chroma's fallback style.
func New(theme string) *Highlighter {
	return &Highlighter{style: styles.Get(theme), formatter: formatters.TTY256}
}

// Colorize returns lines with terminal color escapes, one per input line.
// Files with no matching lexer, or a tokenization that does not line up with
// the input, come back unchanged.
func (h *Highlighter) Colorize(lines []string, filename string) []string {
	if len(lines) == 0 { return lines }

	start := time.Now()

	// get lexer depending on Name
	lexer := lexers.Match(filename)
	if lexer == nil { return lines }
	lexer = chroma.Coalesce(lexer)

	var code strings.Builder
	for _, line := range lines {
		code.WriteString(line)
		code.WriteByte('\n')
	}

	iterator, err := lexer.Tokenise(nil, code.String())
	if err != nil {
		Log.Error("tokenization error:", err.Error())
		return lines
	}

	tokensIntoLines := chroma.SplitTokensIntoLines(iterator.Tokens())
	if len(tokensIntoLines) < len(lines) { return lines }

	colored := make([]string, len(lines))
	for i := range lines {
		tokens := tokensIntoLines[i]
		for j := range tokens {
			tokens[j].Value = strings.TrimSuffix(tokens[j].Value, "\n")
		}

		var out bytes.Buffer
		if err := h.formatter.Format(&out, h.style, chroma.Literator(tokens...)); err != nil {
			Log.Error("format error:", err.Error())
			return lines
		}
		colored[i] = out.String()
	}

	Log.Debug("colorize end, elapsed:", time.Since(start).String())
	return colored
}
