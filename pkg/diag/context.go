package diag

import (
	"fmt"
	"strings"
)

// Context is a range of text in a source file. It is used for errors that
// can be associated with a part of the source code, like lex and parse errors
// and the statement that raised a runtime error.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit. They are reset by
// [SetColor].
var (
	culpritLineBegin   = "\033[1;4m"
	culpritLineEnd     = "\033[m"
	culpritPlaceHolder = "^"
)

// Position returns the 1-based line and column of the start of the range.
// Columns count runes, not bytes.
func (c *Context) Position() (line, col int) {
	if c.From < 0 || c.From > len(c.Source) {
		return 0, 0
	}
	before := c.Source[:c.From]
	line = strings.Count(before, "\n") + 1
	col = len([]rune(lastLine(before))) + 1
	return line, col
}

// Describe returns "name:line:col", or just the name when the position is
// unknown.
func (c *Context) Describe() string {
	if err := c.checkPosition(); err != nil {
		return c.Name
	}
	line, col := c.Position()
	return fmt.Sprintf("%s:%d:%d", c.Name, line, col)
}

// Show shows the Context, with the position on the first line and the
// relevant source on the next.
func (c *Context) Show(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Describe() + "\n" + sourceIndent + c.relevantSource()
}

// ShowCompact is like Show, but puts the position and the source on the same
// line.
func (c *Context) ShowCompact() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Describe() + ": " + c.relevantSource()
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

// Only the first line of the culprit is shown.
func (c *Context) relevantSource() string {
	head := lastLine(c.Source[:c.From])
	culprit := firstLine(c.Source[c.From:c.To])
	var tail string
	if c.From+len(culprit) == c.To {
		tail = firstLine(c.Source[c.To:])
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	var sb strings.Builder
	sb.WriteString(head)
	sb.WriteString(culpritLineBegin)
	sb.WriteString(culprit)
	sb.WriteString(culpritLineEnd)
	sb.WriteString(tail)
	return sb.String()
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
