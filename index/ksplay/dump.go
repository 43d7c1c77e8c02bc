package ksplay

import (
	"bufio"
	"cmp"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/xlab/treeprint"
)

// String renders the node structure, one line per node, each labelled with
// its keys. External (nil) children are not shown.
func (t *Tree[K, V]) String() string {
	tree := treeprint.NewWithRoot(nodeLabel(t.root))
	addChildren(tree, t.root)
	return tree.String()
}

func addChildren[K cmp.Ordered, V any](tree treeprint.Tree, n *Node[K, V]) {
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		addChildren(tree.AddBranch(nodeLabel(c)), c)
	}
}

func nodeLabel[K cmp.Ordered, V any](n *Node[K, V]) string {
	return fmt.Sprint(n.Keys)
}

// WriteDOT writes the tree as a Graphviz digraph. Each node is an HTML table
// with one port per child slot; external slots are drawn empty.
func (t *Tree[K, V]) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph KSplay {")
	fmt.Fprintln(bw, "  graph [ranksep=0.8, nodesep=0.5, bgcolor=\"#ffffff\", rankdir=TB];")
	fmt.Fprintln(bw, "  node [shape=none, fontname=\"Helvetica\", fontsize=10];")
	fmt.Fprintln(bw, "  edge [arrowsize=0.8, color=\"#444444\"];")

	counter := 0
	var export func(n *Node[K, V]) string
	export = func(n *Node[K, V]) string {
		name := fmt.Sprintf("node%d", counter)
		counter++

		header := "#DAE8FC"
		if n == t.root {
			header = "#D5E8D4"
		}
		var label strings.Builder
		label.WriteString(`<<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" CELLPADDING="4">`)
		fmt.Fprintf(&label, `<TR><TD COLSPAN="%d" BGCOLOR="%s"><B>%d keys</B></TD></TR><TR>`, 2*len(n.Keys)+1, header, len(n.Keys))
		for i, c := range n.Children {
			bg := "#F5F5F5"
			if c != nil {
				bg = "#E1F5FE"
			}
			fmt.Fprintf(&label, `<TD PORT="f%d" BGCOLOR="%s"> </TD>`, i, bg)
			if i < len(n.Keys) {
				fmt.Fprintf(&label, `<TD BGCOLOR="#FFFFFF"><B>%s</B></TD>`, html.EscapeString(fmt.Sprint(n.Keys[i])))
			}
		}
		label.WriteString(`</TR></TABLE>>`)
		fmt.Fprintf(bw, "  %s [label=%s];\n", name, label.String())

		for i, c := range n.Children {
			if c == nil {
				continue
			}
			child := export(c)
			fmt.Fprintf(bw, "  %s:f%d -> %s;\n", name, i, child)
		}
		return name
	}
	export(t.root)

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
