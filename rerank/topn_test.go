package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/pipeline"
)

func scored(id string, score float64) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	return it
}

func TestTopNNode(t *testing.T) {
	node := &TopNNode{N: 3}
	if node.Kind() != pipeline.KindReRank {
		t.Fatalf("Kind() = %v", node.Kind())
	}

	in := []*core.Item{
		scored("c", 0.2),
		scored("a", 0.9),
		scored("b", 0.5),
		scored("d", 0.7),
	}
	out, err := node.Process(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := []string{"a", "d", "b"}
	if len(out) != len(want) {
		t.Fatalf("got %d items, want %d", len(out), len(want))
	}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("out[%d].ID = %q, want %q", i, out[i].ID, id)
		}
	}

	// 输入切片不被重排
	if in[0].ID != "c" {
		t.Fatal("Process mutated its input slice")
	}
}

func TestTopNNode_TieBreakByID(t *testing.T) {
	node := &TopNNode{N: 0}
	in := []*core.Item{
		scored("z", 0.5),
		scored("a", 0.5),
		scored("m", 0.5),
	}
	out, err := node.Process(context.Background(), nil, in)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "m", "z"}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("out[%d].ID = %q, want %q (同分按 ID 升序)", i, out[i].ID, id)
		}
	}
}

func TestTopNNode_NoTruncation(t *testing.T) {
	node := &TopNNode{N: 10}
	out, err := node.Process(context.Background(), nil, []*core.Item{scored("a", 1)})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d items, want 1", len(out))
	}

	out, err = node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("empty input: got %d items", len(out))
	}
}
