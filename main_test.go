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
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootRunCommand(t *testing.T) {
	input, output := writeInput(t, "Insert:45\nInsert:30\nInsert:47\nPrintTree\nHeight\n")

	_, _, err := executeRoot(t, "", "run", input, output)
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "true\ntrue\ntrue\n45 30 47\n1\n", string(got))
}

func TestRootRunCommandLogsFailures(t *testing.T) {
	input, output := writeInput(t, "Insert:0\n")

	_, stderr, err := executeRoot(t, "", "run", input, output, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "command failed")
	assert.Contains(t, stderr, "some commands failed")
}

func TestRootRunCommandArgs(t *testing.T) {
	_, _, err := executeRoot(t, "", "run", "only-one")
	require.Error(t, err)
}

func TestRootInvalidLogLevel(t *testing.T) {
	_, _, err := executeRoot(t, "", "version", "--log-level", "chatty")
	require.Error(t, err)
}

func TestRootDefaultsToShell(t *testing.T) {
	stdout, _, err := executeRoot(t, "insert 7\nsize\nexit\n")
	require.NoError(t, err)
	assert.Contains(t, stdout, "true")
	assert.Contains(t, stdout, "1")
}

func TestRootVersion(t *testing.T) {
	stdout, _, err := executeRoot(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", stdout)
}

func TestRootSettings(t *testing.T) {
	home := t.TempDir()
	cmd := newRootCmd()
	t.Setenv("HOME", home)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"settings"})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(home, configFileName))
	assert.Contains(t, stdout.String(), "level: warn")
}

func TestUsageMarkdown(t *testing.T) {
	text := getUsageMarkdown()
	assert.Contains(t, text, "lazyavl run commands.txt results.txt")
	assert.Contains(t, text, configFileName)
	assert.NotEmpty(t, getHelpMessage())
}

func TestShellInterruptIsCleanExit(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := defaultConfig
	a := &app{config: &cfg, log: discardLogger()}
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	cmd.SetIn(pr)
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, a.shell(cmd))
}
