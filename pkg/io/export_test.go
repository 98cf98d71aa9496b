package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tsg/pkg/tsg"
)

func TestWriteTSGCanonical(t *testing.T) {
	doc := readSample(t)

	var buf bytes.Buffer
	if err := WriteTSG(doc, &buf); err != nil {
		t.Fatalf("WriteTSG: %v", err)
	}

	data, err := os.ReadFile(filepath.Join("testdata", "two_genes.tsg"))
	if err != nil {
		t.Fatal(err)
	}
	var want []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" && !strings.HasPrefix(line, "#") {
			want = append(want, line)
		}
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i+1, got[i], want[i])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"sample", ""},
		{"attribute coercion", "G\tg\tlen:i:0010\tscore:f:8.20\tnote:Z:a:b\n"},
		{"repeated keys", "G\tg\nN\tn1\tchr1:+:1-5\t.\nA\tN\tn1\tx:i:1\nA\tN\tn1\tx:i:2\tx:Z:three\n"},
		{"multi exon node", "G\tg\nN\tn1\tchr1:-:1-5,10-20,30-40\tr:SO,r:SI\tACGT\n"},
		{"set duplicates", "G\tg\nN\tn1\tchr1:+:1-5\t.\nU\tu1\tn1\tn1\n"},
		{"self loop", "G\tg\nN\tn1\tchr1:+:1-5\nE\te1\tn1\tn1\tduplication\n"},
		{"unknown evidence code", "G\tg\nN\tn1\tchr1:+:1-5\tr1:ZZ\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var first *tsg.Document
			var err error
			if tt.input == "" {
				first = readSample(t)
			} else if first, err = ReadTSG(strings.NewReader(tt.input)); err != nil {
				t.Fatalf("ReadTSG: %v", err)
			}

			var buf bytes.Buffer
			if err := WriteTSG(first, &buf); err != nil {
				t.Fatalf("WriteTSG: %v", err)
			}
			second, err := ReadTSG(&buf)
			if err != nil {
				t.Fatalf("re-read: %v", err)
			}
			if !tsg.Equal(first, second) {
				t.Error("parse(serialize(doc)) differs from doc")
			}
		})
	}
}

func TestWriteTSGCoercion(t *testing.T) {
	doc, err := ReadTSG(strings.NewReader("G\tg\tlen:i:0010\tscore:f:8.20\n"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteTSG(doc, &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "G\tg\tlen:i:10\tscore:f:8.2\n"; got != want {
		t.Errorf("WriteTSG = %q, want %q", got, want)
	}
}

func TestExportTSG(t *testing.T) {
	doc := readSample(t)
	path := filepath.Join(t.TempDir(), "out.tsg")
	if err := ExportTSG(doc, path); err != nil {
		t.Fatalf("ExportTSG: %v", err)
	}
	again, err := ImportTSG(path)
	if err != nil {
		t.Fatalf("ImportTSG: %v", err)
	}
	if !tsg.Equal(doc, again) {
		t.Error("exported file does not re-import to the same document")
	}
}

func TestWriteGraph(t *testing.T) {
	doc := readSample(t)
	b, _ := doc.Graph("gene_b")

	var buf bytes.Buffer
	if err := WriteGraph(b, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "G\tgene_b\tname:Z:ALK\n") {
		t.Errorf("WriteGraph should start with the G record, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "gene_a") {
		t.Error("WriteGraph leaked another graph")
	}
}
