package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/hive-go/internal/domain/tasks"
)

// TaskTreeFormatter renders task trees for terminal output
type TaskTreeFormatter struct {
	useColors bool
}

// NewTaskTreeFormatter creates a new tree formatter
func NewTaskTreeFormatter(useColors bool) *TaskTreeFormatter {
	return &TaskTreeFormatter{useColors: useColors}
}

// FormatTree renders a task tree, one node per line
func (f *TaskTreeFormatter) FormatTree(root *tasks.TaskData) string {
	if root == nil {
		return "(empty tree)\n"
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

// formatNode recursively formats a node and its children
func (f *TaskTreeFormatter) formatNode(builder *strings.Builder, node *tasks.TaskData, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	builder.WriteString(fmt.Sprintf("%s%s%s%s%s\n",
		linePrefix,
		f.kindColor(node.Kind),
		node.Kind,
		f.colorReset(),
		f.detailText(node),
	))

	children := childrenOf(node)
	if len(children) == 0 {
		return
	}

	var childPrefix string
	if isRoot {
		childPrefix = ""
	} else if isLast {
		childPrefix = prefix + "    "
	} else {
		childPrefix = prefix + "│   "
	}

	for i, child := range children {
		f.formatNode(builder, child, childPrefix, i == len(children)-1, false)
	}
}

func childrenOf(node *tasks.TaskData) []*tasks.TaskData {
	if node.Inner != nil {
		return []*tasks.TaskData{node.Inner}
	}
	return node.Steps
}

// detailText returns the leaf parameters of a node
func (f *TaskTreeFormatter) detailText(node *tasks.TaskData) string {
	parts := []string{}
	if node.Target != "" {
		parts = append(parts, "target="+node.Target)
	}
	if node.Direction != "" {
		parts = append(parts, "direction="+node.Direction)
	}
	if node.SourceID != "" {
		parts = append(parts, "source="+node.SourceID)
	}
	if node.Kind == tasks.KindMultiStep {
		parts = append(parts, fmt.Sprintf("%d steps left", len(node.Steps)))
	}

	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// kindColor returns ANSI color code for a task kind
func (f *TaskTreeFormatter) kindColor(kind tasks.Kind) string {
	if !f.useColors {
		return ""
	}

	switch kind {
	case tasks.KindContinuous, tasks.KindPerpetual:
		return "\033[36m" // Cyan
	case tasks.KindMultiStep:
		return "\033[33m" // Yellow
	default:
		return "\033[32m" // Green
	}
}

// colorReset returns ANSI reset code
func (f *TaskTreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// FormatTreeSummary creates a compact summary of the tree
func (f *TaskTreeFormatter) FormatTreeSummary(root *tasks.TaskData) string {
	if root == nil {
		return "no task"
	}

	nodes, leaves := countNodes(root)
	return fmt.Sprintf("%s: %d nodes (%d actions), depth=%d", root.Kind, nodes, leaves, treeDepth(root))
}

func countNodes(node *tasks.TaskData) (nodes, leaves int) {
	children := childrenOf(node)
	if len(children) == 0 {
		return 1, 1
	}
	nodes = 1
	for _, child := range children {
		n, l := countNodes(child)
		nodes += n
		leaves += l
	}
	return nodes, leaves
}

func treeDepth(node *tasks.TaskData) int {
	depth := 0
	for _, child := range childrenOf(node) {
		depth = max(depth, treeDepth(child))
	}
	return depth + 1
}

func sortedWorkers(registry map[string]*tasks.TaskData) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
