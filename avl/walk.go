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

package avl

import (
	"fmt"
	"strconv"
	"strings"
)

// DeletedMarker prefixes inactive keys in the serialized form.
const DeletedMarker = "*"

// Walk visits every node, active or not, in pre-order (node, left, right).
// It stops as soon as fn returns false.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if t.root == nil {
		return
	}
	stack := []*Node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		// right is pushed first so left is popped first
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
}

// inOrder visits every node in ascending key order.
func (t *Tree) inOrder(fn func(n *Node) bool) {
	t.ordered(false, fn)
}

// ordered visits every node in ascending key order, or descending when
// reverse is set.
func (t *Tree) ordered(reverse bool, fn func(n *Node) bool) {
	near := func(n *Node) *Node { return n.left }
	far := func(n *Node) *Node { return n.right }
	if reverse {
		near, far = far, near
	}

	var stack []*Node
	n := t.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = near(n)
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		n = far(n)
	}
}

func (t *Tree) firstActive(reverse bool) int {
	found := -1
	t.ordered(reverse, func(n *Node) bool {
		if n.active {
			found = n.key
			return false
		}
		return true
	})
	return found
}

// Size returns the number of nodes in the tree, counting deleted ones.
func (t *Tree) Size() int {
	size := 0
	t.Walk(func(*Node) bool {
		size++
		return true
	})
	return size
}

// Len returns the number of active keys.
func (t *Tree) Len() int {
	n := 0
	t.Walk(func(node *Node) bool {
		if node.active {
			n++
		}
		return true
	})
	return n
}

// Keys returns the active keys in ascending order.
func (t *Tree) Keys() []int {
	var keys []int
	t.inOrder(func(n *Node) bool {
		if n.active {
			keys = append(keys, n.key)
		}
		return true
	})
	return keys
}

// Serialize renders the tree in pre-order, space separated, with deleted
// keys prefixed by DeletedMarker. An empty tree gives "".
func (t *Tree) Serialize() string {
	var sb strings.Builder
	t.Walk(func(n *Node) bool {
		if !n.active {
			sb.WriteString(DeletedMarker)
		}
		sb.WriteString(strconv.Itoa(n.key))
		sb.WriteByte(' ')
		return true
	})
	return strings.TrimSpace(sb.String())
}

func (t *Tree) String() string {
	return t.Serialize()
}

// Verify checks the ordering, balance and cached height of every node and
// returns an error wrapping ErrInvariant on the first violation found.
func (t *Tree) Verify() error {
	var err error
	prev, first := 0, true
	t.inOrder(func(n *Node) bool {
		if !first && n.key <= prev {
			err = fmt.Errorf("%w: key %d follows %d in order", ErrInvariant, n.key, prev)
			return false
		}
		first, prev = false, n.key
		return true
	})
	if err != nil {
		return err
	}

	// Every cache agreeing with its children's caches is enough for all of
	// them to be correct, since absent children are fixed at -1.
	t.Walk(func(n *Node) bool {
		if want := max(height(n.left), height(n.right)) + 1; n.height != want {
			err = fmt.Errorf("%w: node %d caches height %d, want %d", ErrInvariant, n.key, n.height, want)
			return false
		}
		if b := balanceFactor(n); b < -1 || b > 1 {
			err = fmt.Errorf("%w: node %d has balance factor %d", ErrInvariant, n.key, b)
			return false
		}
		if ValidateKey(n.key) != nil {
			err = fmt.Errorf("%w: node key %d out of range", ErrInvariant, n.key)
			return false
		}
		return true
	})
	return err
}
