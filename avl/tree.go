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

// RotationKind describes the restructuring performed by an insert.
type RotationKind int

const (
	NoRotation RotationKind = iota
	SingleRotation
	DoubleRotation
)

func (r RotationKind) String() string {
	switch r {
	case NoRotation:
		return "none"
	case SingleRotation:
		return "single"
	case DoubleRotation:
		return "double"
	default:
		return "unknown"
	}
}

// InsertResult is the outcome of Tree.Insert.
type InsertResult struct {
	// Inserted is true if a new node was created or a deleted key was
	// reactivated, false if the key was already present.
	Inserted bool
	Rotation RotationKind
}

// Tree is an AVL tree of integer keys in [MinKey, MaxKey] with lazy
// deletion: deleted keys stay in the tree, flagged inactive, and can be
// reactivated by a later Insert.
//
// Tree is not safe for concurrent use. Callers that share a tree between
// goroutines must synchronize access themselves.
type Tree struct {
	root *Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Root returns the root node, nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Insert adds key to the tree, or reactivates it if it was deleted.
func (t *Tree) Insert(key int) (InsertResult, error) {
	if err := ValidateKey(key); err != nil {
		return InsertResult{}, err
	}

	var res InsertResult
	t.root = t.insert(t.root, key, &res)
	return res, nil
}

func (t *Tree) insert(node *Node, key int, res *InsertResult) *Node {
	if node == nil {
		res.Inserted = true
		return newNode(key)
	}

	switch {
	case key < node.key:
		node.setLeft(t.insert(node.left, key, res))
	case key > node.key:
		node.setRight(t.insert(node.right, key, res))
	default:
		if !node.active {
			node.markActive()
			res.Inserted = true
		}
		// Nothing below changed, so heights and balance are intact.
		return node
	}

	updateHeight(node)
	return rebalance(node, key, res)
}

// rebalance restores the AVL property at node after key was inserted below
// it. Single versus double rotation is decided by comparing key with the
// heavy child's key.
func rebalance(node *Node, key int, res *InsertResult) *Node {
	balance := balanceFactor(node)

	if balance > 1 {
		if key < node.left.key {
			res.Rotation = SingleRotation
			return rotateRight(node)
		}
		// Left-Right case
		res.Rotation = DoubleRotation
		node.setLeft(rotateLeft(node.left))
		return rotateRight(node)
	}

	if balance < -1 {
		if key > node.right.key {
			res.Rotation = SingleRotation
			return rotateLeft(node)
		}
		// Right-Left case
		res.Rotation = DoubleRotation
		node.setRight(rotateRight(node.right))
		return rotateLeft(node)
	}

	return node
}

// Delete marks key as deleted. It returns false if the key is not in the
// tree or is already deleted. The tree structure is never changed.
func (t *Tree) Delete(key int) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	node := t.find(key)
	if node == nil || !node.active {
		return false, nil
	}
	node.markDeleted()
	return true, nil
}

// Contains reports whether key is in the tree and not deleted.
func (t *Tree) Contains(key int) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	node := t.find(key)
	return node != nil && node.active, nil
}

// find returns the node holding key regardless of its active flag.
func (t *Tree) find(key int) *Node {
	node := t.root
	for node != nil {
		switch {
		case key < node.key:
			node = node.left
		case key > node.key:
			node = node.right
		default:
			return node
		}
	}
	return nil
}

// FindMin returns the smallest active key, or -1 if there is none. A
// deleted node on the leftmost path is skipped over, so the answer can sit
// in the right subtree of a deleted leftmost node.
func (t *Tree) FindMin() int {
	return t.firstActive(false)
}

// FindMax returns the largest active key, or -1 if there is none.
func (t *Tree) FindMax() int {
	return t.firstActive(true)
}

// Height returns the height of the tree, -1 when empty.
func (t *Tree) Height() int {
	return height(t.root)
}

func updateHeight(node *Node) {
	node.setHeight(max(height(node.left), height(node.right)) + 1)
}

func balanceFactor(node *Node) int {
	return height(node.left) - height(node.right)
}

func rotateLeft(node *Node) *Node {
	pivot := node.right

	node.setRight(pivot.left)
	pivot.setLeft(node)

	// node is now below pivot, so it has to be updated first
	updateHeight(node)
	updateHeight(pivot)

	return pivot
}

func rotateRight(node *Node) *Node {
	pivot := node.left

	node.setLeft(pivot.right)
	pivot.setRight(node)

	updateHeight(node)
	updateHeight(pivot)

	return pivot
}
