package io_test

import (
	"fmt"
	"os"
	"strings"

	tsgio "github.com/matzehuels/tsg/pkg/io"
)

func ExampleReadTSG() {
	input := `H	version	1.0
G	gene_a
N	n1	chr1:+:100-200	read1:SO	ACGT
N	n2	chr1:+:300-400	read1:SI	GGCC
E	e1	n1	n2	splice
P	p1	n1+	e1+	n2+
A	N	n1	ptc:i:010
`
	doc, err := tsgio.ReadTSG(strings.NewReader(input))
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = tsgio.WriteTSG(doc, os.Stdout)
	// Output:
	// H	version	1.0
	// G	gene_a
	// N	n1	chr1:+:100-200	read1:SO	ACGT
	// N	n2	chr1:+:300-400	read1:SI	GGCC
	// E	e1	n1	n2	splice
	// P	p1	n1+	e1+	n2+
	// A	N	n1	ptc:i:10
}

func ExampleReadTSG_error() {
	input := "G\tgene_a\nN\tn1\tchr1:+:1-5\t.\nN\tn2\tchr1:+:9-12\t.\nE\te1\tn1\tn2\nP\tp1\tn1\te1\tn2\n"
	_, err := tsgio.ReadTSG(strings.NewReader(input))
	fmt.Println(err)
	// Output:
	// line 5: MISSING_ORIENTATION: path step "n1" has no orientation [p1]
}
