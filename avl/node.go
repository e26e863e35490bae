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

// Node is one key slot of the tree. A node is never removed once inserted;
// deleting its key only clears the active flag.
type Node struct {
	key    int
	left   *Node
	right  *Node
	active bool
	height int // -1 is reserved for the empty subtree, a leaf is 0
}

func newNode(key int) *Node {
	return &Node{key: key, active: true}
}

// Key returns the key the node was created with.
func (n *Node) Key() int { return n.key }

// Left returns the left child, holding smaller keys, or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, holding larger keys, or nil.
func (n *Node) Right() *Node { return n.right }

// Active reports whether the key is logically present.
func (n *Node) Active() bool { return n.active }

// Height returns the cached height of the subtree rooted at n.
func (n *Node) Height() int { return n.height }

// setLeft attaches child as the left subtree. The previous subtree is
// dropped; child must not be reachable from anywhere else.
func (n *Node) setLeft(child *Node) { n.left = child }

func (n *Node) setRight(child *Node) { n.right = child }

func (n *Node) setHeight(h int) { n.height = h }

func (n *Node) markDeleted() { n.active = false }

func (n *Node) markActive() { n.active = true }

// height returns the cached height of n, or -1 for an absent subtree.
func height(n *Node) int {
	if n == nil {
		return -1
	}
	return n.height
}
