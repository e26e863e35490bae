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
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/cybrota/lazyavl/avl"
	"github.com/cybrota/lazyavl/script"
)

// runScriptFile executes the command file at inputPath against a fresh
// tree and writes the results to outputPath.
func runScriptFile(ctx context.Context, log *slog.Logger, inputPath, outputPath string, progress io.Writer) (script.Stats, error) {
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return script.Stats{}, fmt.Errorf("failed to read input: %w", err)
	}

	output, err := os.Create(outputPath)
	if err != nil {
		return script.Stats{}, fmt.Errorf("failed to create output: %w", err)
	}
	defer output.Close()

	runner := script.NewRunner(avl.New(), log.With("input", inputPath))

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = newLineProgressBar(progress, countLines(input))
		runner.OnLine = func() { _ = bar.Add(1) }
	}

	stats, err := runner.Run(ctx, bytes.NewReader(input), output)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return stats, err
	}
	if err := output.Close(); err != nil {
		return stats, fmt.Errorf("failed to close output: %w", err)
	}
	return stats, nil
}

func countLines(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func newLineProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Running commands..."),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
