package fancy_test

import (
	"testing"

	"github.com/ccswitch/ccswitch/internal/fancy"
	"github.com/stretchr/testify/assert"
)

// TestTree tests the creation of a basic tree with common styling
func TestTree(t *testing.T) {
	tree := fancy.Tree()
	assert.NotNil(t, tree)

	tree.Root("Root Node")
	child := tree.Child("Child Node")
	child.Child("Grandchild")

	treeString := tree.String()
	assert.Contains(t, treeString, "Root Node")
	assert.Contains(t, treeString, "Child Node")
	assert.Contains(t, treeString, "Grandchild")
}

// TestBranchNode tests creating a styled section header node
func TestBranchNode(t *testing.T) {
	title := "MCP Servers"
	count := "(5)"
	branchNode := fancy.BranchNode(title, count)
	assert.NotNil(t, branchNode)

	treeString := branchNode.String()
	assert.Contains(t, treeString, title)
	assert.Contains(t, treeString, count)
}

// TestTruncateString tests string truncation for various cases
func TestTruncateString(t *testing.T) {
	t.Run("String shorter than maxLength", func(t *testing.T) {
		result := fancy.TruncateString("Short string", 20)
		assert.Equal(t, "Short string", result, "Short strings should not be truncated")
	})

	t.Run("String longer than maxLength", func(t *testing.T) {
		longString := "This is a very long string that should be truncated"
		result := fancy.TruncateString(longString, 15)
		assert.Equal(t, "This is a ve...", result, "Long strings should be truncated with ellipsis")
		assert.Len(t, result, 15, "Truncated string length should match maxLength")
	})

	t.Run("Empty string", func(t *testing.T) {
		result := fancy.TruncateString("", 10)
		assert.Equal(t, "", result, "Empty strings should remain empty")
	})
}

// TestNewComponentTree tests the creation of a new component tree
func TestNewComponentTree(t *testing.T) {
	title := "Test Component"
	compTree := fancy.NewComponentTree(title)
	assert.NotNil(t, compTree)

	treeObj := compTree.Tree()
	assert.NotNil(t, treeObj)
	assert.Contains(t, treeObj.String(), title)
}

// TestAddBranchAndChild tests adding nodes to a component tree
func TestAddBranchAndChild(t *testing.T) {
	compTree := fancy.NewComponentTree("Root")

	branch := compTree.AddBranch("Branch 1")
	assert.NotNil(t, branch)
	branch.Child("Child 1.1")

	child := compTree.AddChild("Child Node")
	assert.NotNil(t, child)

	treeString := compTree.Tree().String()
	assert.Contains(t, treeString, "Branch 1")
	assert.Contains(t, treeString, "Child 1.1")
	assert.Contains(t, treeString, "Child Node")
}

// TestProviderTree tests creating a tree for provider visualization
func TestProviderTree(t *testing.T) {
	providerID := "anthropic-official"
	providerTree := fancy.ProviderTree(providerID)
	assert.NotNil(t, providerTree)

	treeString := providerTree.Tree().String()
	assert.Contains(t, treeString, providerID)
}

// TestServerTree tests creating a tree for MCP server visualization
func TestServerTree(t *testing.T) {
	serverInfo := "fetch (npx)"
	serverTree := fancy.ServerTree(serverInfo)
	assert.NotNil(t, serverTree)

	treeString := serverTree.Tree().String()
	assert.Contains(t, treeString, serverInfo)
}
