package command

import (
	"errors"
	"fmt"
	"strings"
)

// ParseResult holds the parsed command word and arguments from one input line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words, case preserved.
	Args []string
}

// Arg returns the i-th argument, or false if there are not enough arguments.
func (p ParseResult) Arg(i int) (string, bool) {
	if i < 0 || i >= len(p.Args) {
		return "", false
	}
	return p.Args[i], true
}

// Parse splits a text line into a command word and arguments.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty and Args is nil.
func Parse(line string) ParseResult {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParseResult{}
	}
	res := ParseResult{Command: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		res.Args = fields[1:]
	}
	return res
}

// Lookup parses line and resolves its command word against r.
//
// Postcondition: Returns an error for a blank line or an unknown command.
func (r *Registry) Lookup(line string) (*Command, ParseResult, error) {
	parsed := Parse(line)
	if parsed.Command == "" {
		return nil, parsed, errors.New("empty command")
	}
	cmd, ok := r.Resolve(parsed.Command)
	if !ok {
		return nil, parsed, fmt.Errorf("unknown command %q; type help", parsed.Command)
	}
	return cmd, parsed, nil
}
