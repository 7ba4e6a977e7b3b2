package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/pipeline"
)

// TopNNode 是一个 Top-N 截断节点：按分数降序排序后截取前 N 个物品。
// 同分时按外部物品 ID 升序排列，保证结果可复现。
// 通常放在召回/过滤之后，作为 Pipeline 出口的 cutoff。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.KnownUser{Engine: eng, Cutoff: 100},
//	        &filter.FilterNode{Filters: ...},
//	        &rerank.TopNNode{N: 20},
//	    },
//	}
type TopNNode struct {
	// N 要保留的物品数量（Top N）
	// 如果 N <= 0，则只排序，不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	if n.N > 0 && len(out) > n.N {
		out = out[:n.N]
	}
	return out, nil
}
