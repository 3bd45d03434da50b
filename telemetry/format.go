package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/finreport/output"
)

// slowThreshold marks operations highlighted as slow in styled output.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes the tree rooted at root, for example:
//
//	report summary: 12ms
//	├─ loader.load dataset.json: 8ms
//	└─ report.generate summary/month: 3ms
//	   └─ report.aggregate: 1ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.duration()))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	duration := node.duration()
	timing := formatDuration(duration)
	treeChars := prefix + branch
	if styles != nil {
		treeChars = styles.Dim(treeChars)
		timing = styles.Timing(timing, duration >= slowThreshold)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", treeChars, node.name, timing)

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
