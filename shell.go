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

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cybrota/lazyavl/avl"
	"github.com/cybrota/lazyavl/script"
)

type shellStyles struct {
	Prompt lipgloss.Style
	Result lipgloss.Style
	Error  lipgloss.Style
	Hint   lipgloss.Style
}

func newShellStyles(color bool, scheme ColorScheme) shellStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return shellStyles{Prompt: plain, Result: plain, Error: plain, Hint: plain}
	}
	return shellStyles{
		Prompt: lipgloss.NewStyle().
			Foreground(scheme.Prompt).
			Bold(true),
		Result: lipgloss.NewStyle().
			Foreground(scheme.Result),
		Error: lipgloss.NewStyle().
			Foreground(scheme.Error),
		Hint: lipgloss.NewStyle().
			Foreground(scheme.Muted),
	}
}

const shellHelp = `commands: insert <key>, delete <key>, contains <key>,
          findmin, findmax, height, size, printtree, rotation, verify,
          help, exit`

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. The lines channel is closed at EOF, on a read error (sent
// on errc) or when ctx is done.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// runShell reads shell style commands from in until EOF, exit, or ctx is
// cancelled. Cancellation (Ctrl-C) ends the shell immediately, even while
// waiting for input.
func runShell(ctx context.Context, runner *script.Runner, in io.Reader, out io.Writer, cfg ShellConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	styles := newShellStyles(cfg.Color, currentColorScheme())
	lines, errc := readLines(ctx, in)

	fmt.Fprintln(out, styles.Hint.Render(fmt.Sprintf("keys %d..%d, type help for commands", avl.MinKey, avl.MaxKey)))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, styles.Prompt.Render(cfg.Prompt))

		var raw string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if err := ctx.Err(); err != nil {
					return err
				}
				return <-errc
			}
			raw = l
		}

		line := strings.TrimSpace(raw)
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			fmt.Fprintln(out, styles.Hint.Render(shellHelp))
			continue
		}

		cmd, err := script.ParseWords(line)
		if err == nil {
			var result string
			result, err = runner.Exec(cmd)
			if err == nil {
				fmt.Fprintln(out, styles.Result.Render(result))
				continue
			}
		}
		fmt.Fprintln(out, styles.Error.Render(shellErrorMessage(err)))
	}
}

func shellErrorMessage(err error) string {
	switch {
	case script.IsKeyError(err):
		return fmt.Sprintf("error: key must be between %d and %d", avl.MinKey, avl.MaxKey)
	case errors.Is(err, script.ErrUnknownCommand):
		return "error: " + err.Error() + " (type help)"
	default:
		return "error: " + err.Error()
	}
}
