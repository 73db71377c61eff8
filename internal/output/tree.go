package output

import (
	"strings"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Description alignment column
	descriptionColumn = 36
)

// TreeNode represents a node in a rendered tree. Children keep their given
// order; sidebar order is significant so nothing is sorted.
type TreeNode struct {
	Name        string
	Description string
	Children    []*TreeNode
}

// Add appends a child node and returns it.
func (n *TreeNode) Add(name, description string) *TreeNode {
	child := &TreeNode{Name: name, Description: description}
	n.Children = append(n.Children, child)
	return child
}

// RenderTree renders root and its descendants with descriptions aligned at a
// fixed column.
func RenderTree(root *TreeNode, styles *Styles) string {
	if root == nil {
		return ""
	}

	var sb strings.Builder
	renderNode(&sb, root, "", true, true, styles)
	return sb.String()
}

// renderNode recursively renders a tree node with proper indentation and styling.
func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool, styles *Styles) {
	if isRoot {
		sb.WriteString(styles.Bold.Render(node.Name))
		if node.Description != "" {
			sb.WriteString(" ")
			sb.WriteString(styles.Muted.Render(node.Description))
		}
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		line := prefix + connector + node.Name
		sb.WriteString(styles.Muted.Render(prefix + connector))
		sb.WriteString(node.Name)

		// Add description if present, aligned to the description column
		if node.Description != "" {
			padding := descriptionColumn - len([]rune(line))
			if padding < 2 {
				padding = 2
			}
			sb.WriteString(strings.Repeat(" ", padding))
			sb.WriteString(styles.Noun.Render(node.Description))
		}

		sb.WriteString("\n")
	}

	for i, child := range node.Children {
		childIsLast := i == len(node.Children)-1

		var childPrefix string
		switch {
		case isRoot:
			childPrefix = ""
		case isLast:
			childPrefix = prefix + treeSpace
		default:
			childPrefix = prefix + treeVert
		}

		renderNode(sb, child, childPrefix, false, childIsLast, styles)
	}
}
