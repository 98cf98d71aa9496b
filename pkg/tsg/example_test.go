package tsg_test

import (
	"fmt"

	"github.com/matzehuels/tsg/pkg/tsg"
)

func ExampleParseAttribute() {
	a, _ := tsg.ParseAttribute("ptf:f:8.20")
	fmt.Println(a)
	fmt.Println(a.Value.Float() * 2)
	// Output:
	// ptf:f:8.2
	// 16.4
}

func ExampleDocument_ResolveNode() {
	doc := tsg.NewDocument()
	a, _ := doc.AddGraph("gene_a")
	b, _ := doc.AddGraph("gene_b")
	_ = a.AddNode(tsg.Node{ID: "n3", Chrom: "chr12", Strand: tsg.StrandForward, Exons: []tsg.Interval{{300, 400}}})
	_ = b.AddNode(tsg.Node{ID: "n1", Chrom: "chr3", Strand: tsg.StrandReverse, Exons: []tsg.Interval{{50, 90}}})

	for _, ref := range []tsg.NodeRef{{Graph: "gene_b", Node: "n1"}, {Graph: "gene_b", Node: "n9"}} {
		n, ok := doc.ResolveNode(ref)
		if !ok {
			fmt.Println(ref, "unresolved")
			continue
		}
		fmt.Println(ref, n.Location())
	}
	// Output:
	// gene_b:n1 chr3:-:50-90
	// gene_b:n9 unresolved
}
