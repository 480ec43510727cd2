package mdast_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/gomdhl/pkg/mdast"
)

func buildTestTree() *mdast.Node {
	// Document
	//   Heading
	//     Text
	//   Paragraph
	//     Text
	//     Emphasis
	//       Text
	heading := mdast.NewNode(mdast.NodeHeading)
	mdast.AppendChild(heading, mdast.NewText("Title"))

	para := mdast.NewParagraph("plain ")
	emphasis := mdast.NewNode(mdast.NodeEmphasis)
	mdast.AppendChild(emphasis, mdast.NewText("loud"))
	mdast.AppendChild(para, emphasis)

	return mdast.NewDocument(heading, para)
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []mdast.NodeKind
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeText,
		mdast.NodeParagraph,
		mdast.NodeText,
		mdast.NodeEmphasis,
		mdast.NodeText,
	}
	if len(visited) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	count := 0
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		count++
		if n.Kind == mdast.NodeParagraph {
			return errStop
		}
		return nil
	})

	if !errors.Is(err, errStop) {
		t.Errorf("Walk() error = %v, want %v", err, errStop)
	}
	if count != 4 {
		t.Errorf("visited %d nodes before stopping, want 4", count)
	}
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	if err := mdast.Walk(nil, func(*mdast.Node) error { return errors.New("called") }); err != nil {
		t.Errorf("Walk(nil) error = %v", err)
	}
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	texts := mdast.FindByKind(buildTestTree(), mdast.NodeText)
	if len(texts) != 3 {
		t.Fatalf("found %d text nodes, want 3", len(texts))
	}
	if got := texts[2].TextContent(); got != "loud" {
		t.Errorf("last text = %q, want %q", got, "loud")
	}
}
