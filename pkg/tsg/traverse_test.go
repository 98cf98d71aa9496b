package tsg

import (
	"testing"

	"github.com/matzehuels/tsg/pkg/errors"
)

// walkGraph builds a graph from node ids and {edge, source, target} triples.
func walkGraph(t *testing.T, nodes []string, edges ...[3]string) *Graph {
	t.Helper()
	g := NewGraph("g")
	for _, id := range nodes {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(Edge{ID: e[0], Source: e[1], Target: e[2]}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func walkStrings(paths []*Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.ID + ": " + p.Steps.String()
	}
	return out
}

func TestTraverse(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges [][3]string
		want  []string
	}{
		{
			name:  "linear",
			nodes: []string{"a", "b", "c"},
			edges: [][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}},
			want:  []string{"walk1: a+ e1+ b+ e2+ c+"},
		},
		{
			name:  "skipped exon",
			nodes: []string{"n1", "n2", "n3"},
			edges: [][3]string{{"e1", "n1", "n2"}, {"e2", "n2", "n3"}, {"e3", "n1", "n3"}},
			want:  []string{"walk1: n1+ e1+ n2+ e2+ n3+", "walk2: n1+ e3+ n3+"},
		},
		{
			name:  "two sources",
			nodes: []string{"a", "b", "c"},
			edges: [][3]string{{"e1", "a", "c"}, {"e2", "b", "c"}},
			want:  []string{"walk1: a+ e1+ c+", "walk2: b+ e2+ c+"},
		},
		{
			name:  "isolated node",
			nodes: []string{"a"},
			want:  []string{"walk1: a+"},
		},
		{
			name:  "back edge ends the walk",
			nodes: []string{"a", "b", "c"},
			edges: [][3]string{{"e1", "a", "b"}, {"e2", "b", "a"}, {"e3", "b", "c"}},
			want:  []string{"walk1: a+ e1+ b+ e3+ c+"},
		},
		{
			name:  "cycle at the end",
			nodes: []string{"a", "b", "c"},
			edges: [][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}, {"e3", "c", "b"}},
			want:  []string{"walk1: a+ e1+ b+ e2+ c+"},
		},
		{
			name:  "self loop",
			nodes: []string{"a", "b"},
			edges: [][3]string{{"e1", "a", "a"}, {"e2", "a", "b"}},
			want:  []string{"walk1: a+ e2+ b+"},
		},
		{
			name:  "no source",
			nodes: []string{"a", "b"},
			edges: [][3]string{{"e1", "a", "b"}, {"e2", "b", "a"}},
			want:  []string{},
		},
		{
			name:  "dangling edge ignored",
			nodes: []string{"a"},
			edges: [][3]string{{"e1", "ghost", "a"}, {"e2", "a", "ghost"}},
			want:  []string{"walk1: a+"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := walkGraph(t, tt.nodes, tt.edges...)
			paths, err := g.Traverse(0)
			if err != nil {
				t.Fatalf("Traverse: %v", err)
			}
			got := walkStrings(paths)
			if len(got) != len(tt.want) {
				t.Fatalf("walks = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("walk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTraverseDoesNotAddPaths(t *testing.T) {
	g := walkGraph(t, []string{"a", "b"}, [3]string{"e1", "a", "b"})
	if _, err := g.Traverse(0); err != nil {
		t.Fatal(err)
	}
	if len(g.Paths()) != 0 {
		t.Errorf("Traverse added %d paths to the graph", len(g.Paths()))
	}
}

func TestTraverseLimit(t *testing.T) {
	// Three independent bubbles: 2*2*2 walks.
	g := walkGraph(t, []string{"a", "b1", "b2", "c", "d1", "d2", "e", "f1", "f2", "h"},
		[3]string{"e1", "a", "b1"}, [3]string{"e2", "a", "b2"}, [3]string{"e3", "b1", "c"}, [3]string{"e4", "b2", "c"},
		[3]string{"e5", "c", "d1"}, [3]string{"e6", "c", "d2"}, [3]string{"e7", "d1", "e"}, [3]string{"e8", "d2", "e"},
		[3]string{"e9", "e", "f1"}, [3]string{"e10", "e", "f2"}, [3]string{"e11", "f1", "h"}, [3]string{"e12", "f2", "h"},
	)

	paths, err := g.Traverse(8)
	if err != nil || len(paths) != 8 {
		t.Fatalf("Traverse(8) = %d walks, %v; want 8", len(paths), err)
	}
	if _, err := g.Traverse(7); !errors.Is(err, errors.ErrCodeTooManyWalks) {
		t.Errorf("Traverse(7) error = %v, want TOO_MANY_WALKS", err)
	}
}
