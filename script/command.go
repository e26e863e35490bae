// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

var (
	ErrEmptyLine          = errors.New("empty line")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingArgument    = errors.New("missing key argument")
	ErrUnexpectedArgument = errors.New("command takes no argument")
	ErrBadArgument        = errors.New("key is not an integer")
)

// Op identifies a tree operation.
type Op int

const (
	OpInsert Op = iota
	OpDelete
	OpContains
	OpFindMin
	OpFindMax
	OpHeight
	OpSize
	OpPrintTree
	OpRotation
	OpVerify
)

type opSpec struct {
	name   string
	hasArg bool
}

var ops = map[Op]opSpec{
	OpInsert:    {"Insert", true},
	OpDelete:    {"Delete", true},
	OpContains:  {"Contains", true},
	OpFindMin:   {"FindMin", false},
	OpFindMax:   {"FindMax", false},
	OpHeight:    {"Height", false},
	OpSize:      {"Size", false},
	OpPrintTree: {"PrintTree", false},
	OpRotation:  {"Rotation", false},
	OpVerify:    {"Verify", false},
}

// opsByName is keyed by lower-cased command name.
var opsByName = func() map[string]Op {
	m := make(map[string]Op, len(ops))
	for op, spec := range ops {
		m[strings.ToLower(spec.name)] = op
	}
	return m
}()

func (op Op) String() string {
	if spec, ok := ops[op]; ok {
		return spec.name
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Command is one parsed input line.
type Command struct {
	Op  Op
	Key int
	// Line is the input the command was parsed from, trimmed.
	Line string
}

// Parse reads a "Name" or "Name:key" line. Names are case-insensitive and
// whitespace around either part is ignored. The key is a decimal integer in
// strconv.Atoi syntax, so a leading sign or zeros ("+5", "007") are accepted.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrEmptyLine
	}

	name, arg, hasArg := strings.Cut(line, ":")
	return build(line, strings.TrimSpace(name), strings.TrimSpace(arg), hasArg)
}

// ParseWords reads shell style input such as `insert 45`, splitting on
// shell word rules. A single "Name:key" word is accepted too.
func ParseWords(line string) (Command, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return Command{}, fmt.Errorf("failed to parse %q: %w", line, err)
	}

	switch len(words) {
	case 0:
		return Command{}, ErrEmptyLine
	case 1:
		return Parse(words[0])
	case 2:
		return build(strings.TrimSpace(line), words[0], words[1], true)
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnexpectedArgument, strings.Join(words[2:], " "))
	}
}

func build(line, name, arg string, hasArg bool) (Command, error) {
	op, ok := opsByName[strings.ToLower(name)]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	cmd := Command{Op: op, Line: line}

	if !ops[op].hasArg {
		if hasArg && arg != "" {
			return Command{}, fmt.Errorf("%s: %w", op, ErrUnexpectedArgument)
		}
		return cmd, nil
	}

	if arg == "" {
		return Command{}, fmt.Errorf("%s: %w", op, ErrMissingArgument)
	}
	key, err := strconv.Atoi(arg)
	if err != nil {
		return Command{}, fmt.Errorf("%s: %w: %q", op, ErrBadArgument, arg)
	}
	cmd.Key = key
	return cmd, nil
}
