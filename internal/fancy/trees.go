package fancy

import (
	"github.com/charmbracelet/lipgloss/tree"
)

// ComponentTree creates a component-specific styled tree
type ComponentTree struct {
	tree *tree.Tree
}

// NewComponentTree creates a new component tree with appropriate styling
func NewComponentTree(title string) *ComponentTree {
	t := tree.New()
	t.EnumeratorStyle(BranchStyle)
	t.Enumerator(tree.RoundedEnumerator)

	// Set the root with our title
	t.Root(title)

	return &ComponentTree{
		tree: t,
	}
}

// Tree returns the underlying tree
func (c *ComponentTree) Tree() *tree.Tree {
	return c.tree
}

// AddBranch adds a new branch with the given text
func (c *ComponentTree) AddBranch(text string) *tree.Tree {
	return c.tree.Child(text)
}

// AddChild adds a child node to the root branch
func (c *ComponentTree) AddChild(child interface{}) *tree.Tree {
	return c.tree.Child(child)
}

// ProviderTree creates a tree specifically for provider visualization
func ProviderTree(id string) *ComponentTree {
	t := NewComponentTree(ProviderStyle.Render(id))
	return t
}

// ServerTree creates a tree branch for MCP server visualization
func ServerTree(serverInfo string) *ComponentTree {
	t := NewComponentTree(ServerStyle.Render(serverInfo))
	return t
}
