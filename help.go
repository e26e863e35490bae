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
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"

	"github.com/cybrota/lazyavl/avl"
)

func getUsageMarkdown() string {
	return fmt.Sprintf(`
 **lazyavl %s**

A self-balancing search tree over the keys %d to %d with lazy deletion.
Deleted keys stay in the tree and come back on the next insert.

Built with Go %s

# 1. Command files
Run a file of commands, one per line, and write one result per line:

    lazyavl run commands.txt results.txt

Each line is either *Name* or *Name:key*. Lines starting with # are skipped.

* Insert:key, Delete:key, Contains:key print true or false
* FindMin, FindMax print the smallest or largest live key, -1 if none
* Height, Size print integers (Size counts deleted keys)
* PrintTree prints the pre-order keys, deleted ones marked with *
* Rotation prints none, single or double for the last insert
* Verify prints ok or the first broken invariant

Bad lines print *Error with line: ...* and the run carries on.

# 2. Interactive shell
    lazyavl shell

Type *insert 45*, *printtree* and so on. *exit* leaves the shell.

# 3. Settings
Configuration lives in ~/%s. See *lazyavl settings*.

# License
Licensed under the Apache License, Version 2.0
`, version, avl.MinKey, avl.MaxKey, runtime.Version(), configFileName)
}

func getHelpMessage() string {
	return string(markdown.Render(getUsageMarkdown(), 80, 3))
}
