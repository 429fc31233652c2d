package hierarchy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/hiermatch/types"
)

// Document is the YAML form of a hierarchy file. Both sections may be used
// in the same document.
//
//	subclass_of:
//	  http://example.org/B: [http://example.org/A]
//	edges:
//	  - child: http://example.org/C
//	    parent: http://example.org/B
type Document struct {
	SubClassOf map[types.TypeID][]types.TypeID `yaml:"subclass_of"`
	Edges      []Edge                          `yaml:"edges"`
}

// LoadYAML reads subclass-of edges from a YAML document. Edges coming from
// the subclass_of map are sorted so the result is deterministic.
func LoadYAML(r io.Reader) ([]Edge, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, types.NewError(types.ErrHierarchyLoad, "failed to parse hierarchy yaml").WithCause(err)
	}

	children := make([]types.TypeID, 0, len(doc.SubClassOf))
	for child := range doc.SubClassOf {
		children = append(children, child)
	}
	sort.Strings(children)

	edges := make([]Edge, 0, len(doc.SubClassOf)+len(doc.Edges))
	for _, child := range children {
		for _, parent := range doc.SubClassOf[child] {
			edges = append(edges, Edge{Child: child, Parent: parent})
		}
	}
	edges = append(edges, doc.Edges...)

	for i, e := range edges {
		if strings.TrimSpace(e.Child) == "" || strings.TrimSpace(e.Parent) == "" {
			return nil, types.Errorf(types.ErrHierarchyLoad, "edge %d has an empty child or parent", i)
		}
	}
	return edges, nil
}

// LoadTSV reads "child<TAB>parent" lines. Blank lines and lines starting
// with '#' are skipped.
func LoadTSV(r io.Reader) ([]Edge, error) {
	var edges []Edge
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, types.Errorf(types.ErrHierarchyLoad, "line %d: expected 2 tab-separated fields, got %d", lineNo, len(fields))
		}
		child, parent := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
		if child == "" || parent == "" {
			return nil, types.Errorf(types.ErrHierarchyLoad, "line %d: empty child or parent", lineNo)
		}
		edges = append(edges, Edge{Child: child, Parent: parent})
	}
	if err := scanner.Err(); err != nil {
		return nil, types.NewError(types.ErrHierarchyLoad, "failed to read hierarchy tsv").WithCause(err)
	}
	return edges, nil
}

// LoadFile reads edges from path; ".yaml" and ".yml" files are parsed as
// YAML, everything else as TSV.
func LoadFile(path string) ([]Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewError(types.ErrHierarchyLoad, fmt.Sprintf("failed to open %s", path)).WithCause(err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return LoadTSV(f)
	}
}
