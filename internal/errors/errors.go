// Package errors formats parser and lexer errors with source context and
// a visual caret pointing at the offending byte.
package errors

import (
	"fmt"
	"strings"
)

// Position locates a point in the input stream the way this runtime's
// lexer and parser actually address it: a byte offset into the source
// text, and (once lexing has happened) the index of the token that
// starts there. Line and column are derived from ByteOffset on demand
// rather than carried alongside it, since the lexer itself never
// computes them.
type Position struct {
	ByteOffset int
	TokenIndex int
}

// LineCol resolves a byte offset against source text into a 1-indexed
// (line, column) pair.
func (p Position) LineCol(source string) (line, column int) {
	line, column = 1, 1
	limit := p.ByteOffset
	if limit > len(source) {
		limit = len(source)
	}
	for i := 0; i < limit; i++ {
		if source[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// CompilerError represents a single error with position and source
// context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context. If color is
// true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	line, column := e.Pos.LineCol(e.Source)

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d (byte %d)\n", e.File, line, column, e.Pos.ByteOffset))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d (byte %d)\n", line, column, e.Pos.ByteOffset))
	}

	sourceLine := e.getSourceLine(line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific 1-indexed line from the source code.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}

	return lines[lineNum-1]
}

// getSourceContext extracts lines (lineNum-contextBefore) through
// (lineNum+contextAfter), inclusive and clamped to the source's extent.
func (e *CompilerError) getSourceContext(lineNum, contextBefore, contextAfter int) []string {
	if e.Source == "" {
		return nil
	}

	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}

	start := lineNum - contextBefore
	if start < 1 {
		start = 1
	}

	end := lineNum + contextAfter
	if end > len(lines) {
		end = len(lines)
	}

	return lines[start-1 : end]
}

// FormatWithContext formats the error with surrounding source context.
func (e *CompilerError) FormatWithContext(contextLines int, color bool) string {
	var sb strings.Builder

	line, column := e.Pos.LineCol(e.Source)

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, line, column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", line, column))
	}

	contextLinesList := e.getSourceContext(line, contextLines, contextLines)
	if len(contextLinesList) == 0 {
		return e.Format(color)
	}

	startLine := line - contextLines
	if startLine < 1 {
		startLine = 1
	}

	for i, text := range contextLinesList {
		currentLine := startLine + i
		lineNumStr := fmt.Sprintf("%4d | ", currentLine)

		if currentLine == line {
			if color {
				sb.WriteString("\033[1m")
			}
			sb.WriteString(lineNumStr)
			sb.WriteString(text)
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")

			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		} else {
			if color {
				sb.WriteString("\033[2m")
			}
			sb.WriteString(lineNumStr)
			sb.WriteString(text)
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// FormatErrors formats multiple compiler errors, each with source
// context.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}

	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))

	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}
