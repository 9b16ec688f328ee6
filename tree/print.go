package tree

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xlab/treeprint"
)

// GetSorted returns every value in ranking order, lowest ranked first.
func (t *RankTree) GetSorted() []string {
	return t.collect(t.root, make([]string, 0, t.sizeCount))
}

// GetTreeString dumps the structure one node per line with subtree sizes and
// L/R markers. Meant for diagnostics only.
func (t *RankTree) GetTreeString() string {
	if t.root == NoNode {
		return ""
	}
	printer := treeprint.NewWithRoot(t.nodeLabel(t.root))
	t.addBranches(printer, t.root)
	return strings.TrimSuffix(printer.String(), "\n")
}

func (t *RankTree) nodeLabel(index NodeIndex) string {
	return fmt.Sprintf("%s (%d)", t.nodes[index].Value, t.Size(index))
}

func (t *RankTree) addBranches(branch treeprint.Tree, index NodeIndex) {
	for _, direction := range []Direction{Left, Right} {
		child := t.nodes[index].child(direction)
		if child == NoNode {
			continue
		}
		t.addBranches(branch.AddMetaBranch(direction.String(), t.nodeLabel(child)), child)
	}
}

// GetTreeDiagram draws the tree top-down with every parent centered over its
// children.
func (t *RankTree) GetTreeDiagram() string {
	if t.root == NoNode {
		return ""
	}
	lines, _ := t.generateChildrenLines(t.root)
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}

func (t *RankTree) generateChildrenLines(index NodeIndex) ([]string, int) {
	leftLines := []string{}
	leftRootPosition := 0
	rightLines := []string{}
	rightRootPosition := 0
	leftBlockWidth := 0
	rightBlockWidth := 0

	node := t.nodes[index]
	if node.Left != NoNode {
		leftLines, leftRootPosition = t.generateChildrenLines(node.Left)
		leftBlockWidth = width(leftLines[0])
	}

	if node.Right != NoNode {
		rightLines, rightRootPosition = t.generateChildrenLines(node.Right)
		rightBlockWidth = width(rightLines[0])
	}

	for len(rightLines) < len(leftLines) {
		rightLines = append(rightLines, fillWithSpaces(rightBlockWidth))
	}
	for len(leftLines) < len(rightLines) {
		leftLines = append(leftLines, fillWithSpaces(leftBlockWidth))
	}

	// one column of air between sibling blocks
	if leftBlockWidth > 0 && rightBlockWidth > 0 {
		for i := range leftLines {
			leftLines[i] += " "
		}
		leftBlockWidth++
	}

	rootLine, rootPosition := fillRootLine(node.Value, leftRootPosition, rightRootPosition, leftBlockWidth, rightBlockWidth)

	retLines := []string{rootLine}
	for i := range leftLines {
		gap := width(rootLine) - width(leftLines[i]) - width(rightLines[i])
		retLines = append(retLines, leftLines[i]+fillWithSpaces(gap)+rightLines[i])
	}

	return retLines, rootPosition
}

func width(line string) int {
	return utf8.RuneCountInString(line)
}

func fillWithSpaces(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(" ", count)
}

func fillRootLine(data string, leftRootPosition, rightRootPosition, leftBlockWidth, rightBlockWidth int) (string, int) {
	dataWidth := width(data)
	rootPosition := 0
	if leftBlockWidth+rightBlockWidth > 0 {
		rootPosition = (leftRootPosition + (leftBlockWidth + dataWidth + rightRootPosition)) / 2
	}
	newLineLength := max(leftBlockWidth+dataWidth+rightBlockWidth, rootPosition+dataWidth)
	rootLine := fillWithSpaces(rootPosition) + data + fillWithSpaces(newLineLength-(rootPosition+dataWidth))
	return rootLine, rootPosition
}
