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
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/lazyavl/avl"
)

func runScript(t *testing.T, input string) ([]string, Stats) {
	t.Helper()
	var out bytes.Buffer
	stats, err := NewRunner(avl.New(), nil).Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"), stats
}

func TestRunCanonicalScript(t *testing.T) {
	input := `# canonical sequence
Insert:45
Insert:30
Insert:47
Insert:2
Insert:5
Rotation
Delete:5
Insert:50
Insert:60
Rotation
Delete:60
PrintTree
Height
Size
FindMin
FindMax
Contains:5
Insert:5
Rotation
Contains:5
Verify
`
	lines, stats := runScript(t, input)
	assert.Equal(t, []string{
		"true", "true", "true", "true", "true",
		"double",
		"true",
		"true", "true",
		"single",
		"true",
		"45 *5 2 30 50 47 *60",
		"2",
		"7",
		"2",
		"50",
		"false",
		"true",
		"none",
		"true",
		"ok",
	}, lines)
	assert.Equal(t, Stats{Lines: 22, Commands: 21, Errors: 0}, stats)
}

func TestRunReportsBadLines(t *testing.T) {
	input := "Insert:10\nInsert:0\nInsert:100\nDelete:-5\nContains:1000\nFrobnicate\nInsert:x\n\nSize\n"
	lines, stats := runScript(t, input)
	assert.Equal(t, []string{
		"true",
		ErrorPrefix + "Insert:0",
		ErrorPrefix + "Insert:100",
		ErrorPrefix + "Delete:-5",
		ErrorPrefix + "Contains:1000",
		ErrorPrefix + "Frobnicate",
		ErrorPrefix + "Insert:x",
		"1",
	}, lines)
	assert.Equal(t, 6, stats.Errors)
	assert.Equal(t, 8, stats.Commands)
	assert.Equal(t, 9, stats.Lines)
}

func TestRunEmptyTreeQueries(t *testing.T) {
	lines, _ := runScript(t, "PrintTree\nHeight\nSize\nFindMin\nFindMax\nRotation\n")
	assert.Equal(t, []string{"", "-1", "0", "-1", "-1", "none"}, lines)
}

func TestRunOnLineHook(t *testing.T) {
	calls := 0
	r := NewRunner(avl.New(), nil)
	r.OnLine = func() { calls++ }

	var out bytes.Buffer
	_, err := r.Run(context.Background(), strings.NewReader("Insert:1\n\n# note\nSize\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(avl.New(), nil)
	r.OnLine = cancel

	var out bytes.Buffer
	stats, err := r.Run(ctx, strings.NewReader("Insert:1\nInsert:2\nInsert:3\n"), &out)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stats.Commands)
	assert.Equal(t, "true\n", out.String())
	assert.Equal(t, 1, r.Tree().Size())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRunWriteError(t *testing.T) {
	// bufio only hits the writer once its buffer fills up, or on Flush
	_, err := NewRunner(avl.New(), nil).Run(context.Background(), strings.NewReader("Size\n"), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestExecKeyError(t *testing.T) {
	r := NewRunner(avl.New(), nil)
	_, err := r.ExecLine("Insert:100")
	require.Error(t, err)
	assert.True(t, IsKeyError(err))

	_, err = r.ExecLine("Insert:abc")
	require.Error(t, err)
	assert.False(t, IsKeyError(err))
}

func TestExecVerifyAndUnknownOp(t *testing.T) {
	r := NewRunner(avl.New(), nil)
	out, err := r.Exec(Command{Op: OpVerify})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, err = r.Exec(Command{Op: Op(99)})
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRunLongLineIsReportedNotFatal(t *testing.T) {
	long := "Insert:" + strings.Repeat("1", 70000)
	lines, stats := runScript(t, "Insert:5\n"+long+"\nSize\n")

	assert.Equal(t, []string{"true", ErrorPrefix + long, "1"}, lines)
	assert.Equal(t, Stats{Lines: 3, Commands: 3, Errors: 1}, stats)
}

func TestRunKeepsResultsWhenLineTooLong(t *testing.T) {
	input := "Insert:5\n" + strings.Repeat("1", MaxLineSize+1) + "\nSize\n"

	var out bytes.Buffer
	stats, err := NewRunner(avl.New(), nil).Run(context.Background(), strings.NewReader(input), &out)
	require.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Equal(t, 1, stats.Commands)
	assert.Equal(t, "true\n", out.String())
}

func TestRunKeepsResultsWhenReadFails(t *testing.T) {
	in := io.MultiReader(strings.NewReader("Insert:5\nInsert:6\n"), iotest.ErrReader(errors.New("device gone")))

	var out bytes.Buffer
	stats, err := NewRunner(avl.New(), nil).Run(context.Background(), in, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device gone")
	assert.Equal(t, 2, stats.Commands)
	assert.Equal(t, "true\ntrue\n", out.String())
}
