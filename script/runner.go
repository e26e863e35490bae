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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cybrota/lazyavl/avl"
)

// ErrorPrefix starts every output line written for a failed command.
const ErrorPrefix = "Error with line: "

// MaxLineSize is the longest input line Run accepts. Anything under it that
// is not a valid command still gets an ErrorPrefix result.
const MaxLineSize = 1024 * 1024

// Stats summarizes a Run.
type Stats struct {
	Lines    int
	Commands int
	Errors   int
}

// Runner executes commands against a single tree. It is not safe for
// concurrent use.
type Runner struct {
	tree         *avl.Tree
	log          *slog.Logger
	lastRotation avl.RotationKind

	// OnLine, if set, is called after every input line has been handled.
	OnLine func()
}

func NewRunner(tree *avl.Tree, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{tree: tree, log: log}
}

func (r *Runner) Tree() *avl.Tree {
	return r.tree
}

// Exec runs one command and returns its textual result.
func (r *Runner) Exec(cmd Command) (string, error) {
	switch cmd.Op {
	case OpInsert:
		res, err := r.tree.Insert(cmd.Key)
		if err != nil {
			return "", err
		}
		r.lastRotation = res.Rotation
		if res.Rotation != avl.NoRotation {
			r.log.Debug("rebalanced", "key", cmd.Key, "rotation", res.Rotation.String())
		}
		return strconv.FormatBool(res.Inserted), nil
	case OpDelete:
		ok, err := r.tree.Delete(cmd.Key)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ok), nil
	case OpContains:
		ok, err := r.tree.Contains(cmd.Key)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ok), nil
	case OpFindMin:
		return strconv.Itoa(r.tree.FindMin()), nil
	case OpFindMax:
		return strconv.Itoa(r.tree.FindMax()), nil
	case OpHeight:
		return strconv.Itoa(r.tree.Height()), nil
	case OpSize:
		return strconv.Itoa(r.tree.Size()), nil
	case OpPrintTree:
		return r.tree.Serialize(), nil
	case OpRotation:
		return r.lastRotation.String(), nil
	case OpVerify:
		if err := r.tree.Verify(); err != nil {
			return err.Error(), nil
		}
		return "ok", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Op)
	}
}

// ExecLine parses and runs a single "Name:key" line.
func (r *Runner) ExecLine(line string) (string, error) {
	cmd, err := Parse(line)
	if err != nil {
		return "", err
	}
	return r.Exec(cmd)
}

// Run reads commands from in, one per line, and writes one result line per
// command to out. Blank lines and lines starting with '#' are skipped. A
// command that fails writes an ErrorPrefix line and the run continues; only
// I/O failures and context cancellation end it early.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	var stats Stats
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	w := bufio.NewWriter(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			// results so far are still written out
			_ = w.Flush()
			return stats, err
		}
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())

		if line != "" && !strings.HasPrefix(line, "#") {
			stats.Commands++
			result, err := r.ExecLine(line)
			if err != nil {
				stats.Errors++
				r.log.Debug("command failed", "line", stats.Lines, "input", line, "err", err)
				result = ErrorPrefix + line
			}
			if _, err := fmt.Fprintln(w, result); err != nil {
				return stats, fmt.Errorf("writing result for line %d: %w", stats.Lines, err)
			}
		}

		if r.OnLine != nil {
			r.OnLine()
		}
	}
	if err := scanner.Err(); err != nil {
		_ = w.Flush()
		return stats, fmt.Errorf("reading commands: %w", err)
	}
	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flushing results: %w", err)
	}

	r.log.Info("script finished", "lines", stats.Lines, "commands", stats.Commands, "errors", stats.Errors)
	return stats, nil
}

// IsKeyError reports whether err came from a key outside the tree's range.
func IsKeyError(err error) bool {
	return errors.Is(err, avl.ErrOutOfRange)
}
