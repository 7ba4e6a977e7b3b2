package builders

import (
	"context"
	"testing"

	"github.com/rushteam/recmap/config"
	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/pipeline"
	"github.com/rushteam/recmap/recall"
	"github.com/rushteam/recmap/rerank"
)

func TestInitRegistersBuiltins(t *testing.T) {
	types := config.SupportedTypes()
	want := []string{"filter", "recall.cold_start", "recall.fanout", "recall.hot", "recall.known_user", "rerank.topn"}
	got := map[string]bool{}
	for _, tp := range types {
		got[tp] = true
	}
	for _, tp := range want {
		if !got[tp] {
			t.Fatalf("type %q not registered (have %v)", tp, types)
		}
	}
}

func TestBuildFanoutNode(t *testing.T) {
	node, err := BuildFanoutNode(map[string]any{
		"sources": []any{
			map[string]any{"type": "hot", "ids": []any{"a", "b"}},
		},
		"timeout":        2,
		"max_concurrent": 4,
		"merge_strategy": "priority",
	})
	if err != nil {
		t.Fatalf("BuildFanoutNode: %v", err)
	}
	fanout, ok := node.(*recall.Fanout)
	if !ok {
		t.Fatalf("node is %T, want *recall.Fanout", node)
	}
	if len(fanout.Sources) != 1 || fanout.MaxConcurrent != 4 || fanout.MergeStrategy != "priority" {
		t.Fatalf("fanout = %+v", fanout)
	}

	if _, err := BuildFanoutNode(map[string]any{}); err == nil {
		t.Fatal("BuildFanoutNode accepted config without sources")
	}
	_, err = BuildFanoutNode(map[string]any{
		"sources": []any{map[string]any{"type": "ann"}},
	})
	if err == nil {
		t.Fatal("BuildFanoutNode accepted unknown source type")
	}
}

func TestBuildHotNode(t *testing.T) {
	node, err := BuildHotNode(map[string]any{
		"ids":  []any{"x", "y"},
		"topn": 50,
	})
	if err != nil {
		t.Fatalf("BuildHotNode: %v", err)
	}
	hot := node.(*recall.Hot)
	if len(hot.IDs) != 2 || hot.TopN != 50 {
		t.Fatalf("hot = %+v", hot)
	}
}

func TestBuildEngineNodesRequireInjection(t *testing.T) {
	if _, err := BuildKnownUserNode(nil); err == nil {
		t.Fatal("BuildKnownUserNode should fail without an engine")
	}
	if _, err := BuildColdStartNode(nil); err == nil {
		t.Fatal("BuildColdStartNode should fail without an engine")
	}
}

func TestBuildFilterNode(t *testing.T) {
	node, err := BuildFilterNode(map[string]any{
		"blacklist": []any{"bad"},
		"expr":      `item.score < 0.1`,
	})
	if err != nil {
		t.Fatalf("BuildFilterNode: %v", err)
	}

	in := []*core.Item{core.NewItem("bad"), core.NewItem("ok")}
	in[1].Score = 0.5
	out, err := node.Process(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != "ok" {
		t.Fatalf("got %v", out)
	}

	if _, err := BuildFilterNode(map[string]any{}); err == nil {
		t.Fatal("BuildFilterNode accepted empty config")
	}
	if _, err := BuildFilterNode(map[string]any{"expr": "item.score <"}); err == nil {
		t.Fatal("BuildFilterNode accepted malformed expression")
	}
}

func TestBuildTopNNode(t *testing.T) {
	node, err := BuildTopNNode(map[string]any{"n": 3})
	if err != nil {
		t.Fatalf("BuildTopNNode: %v", err)
	}
	if topn := node.(*rerank.TopNNode); topn.N != 3 {
		t.Fatalf("N = %d, want 3", topn.N)
	}
}

func TestValidateAndBuildFromConfig(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "feed"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "recall.hot", Config: map[string]any{"ids": []any{"1", "2", "3"}}},
		{Type: "rerank.topn", Config: map[string]any{"n": 2}},
	}

	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig: %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2 after topn", len(out))
	}

	bad := &pipeline.Config{}
	bad.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "no.such"}}
	if err := config.ValidatePipelineConfig(bad); err == nil {
		t.Fatal("ValidatePipelineConfig accepted unknown type")
	}
}
