package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/recmap/config"
	"github.com/rushteam/recmap/filter"
	"github.com/rushteam/recmap/pipeline"
	"github.com/rushteam/recmap/pkg/conv"
	"github.com/rushteam/recmap/recall"
	"github.com/rushteam/recmap/rerank"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("recall.known_user", BuildKnownUserNode)
	config.Register("recall.cold_start", BuildColdStartNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildFanoutNode(cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "hot":
			ids := conv.SliceAnyToString(sourceMap["ids"])
			if ids == nil {
				ids = []string{}
			}
			sources = append(sources, &recall.Hot{IDs: ids})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	fanout := &recall.Fanout{
		Sources: sources,
		Dedup:   conv.ConfigGet(cfg, "dedup", true),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	fanout.MergeStrategy = conv.ConfigGet(cfg, "merge_strategy", "first")
	return fanout, nil
}

func BuildHotNode(cfg map[string]any) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	if ids == nil {
		ids = []string{}
	}
	node := &recall.Hot{IDs: ids}
	if n := conv.ConfigGetInt64(cfg, "topn", 0); n > 0 {
		node.TopN = int(n)
	}
	return node, nil
}

func BuildKnownUserNode(cfg map[string]any) (pipeline.Node, error) {
	// 引擎召回需要注入 Engine（Mapper + Scorer + 交互矩阵），无法从纯配置构建
	return nil, fmt.Errorf("recall.known_user requires an injected engine; construct it programmatically")
}

func BuildColdStartNode(cfg map[string]any) (pipeline.Node, error) {
	return nil, fmt.Errorf("recall.cold_start requires an injected engine; construct it programmatically")
}

func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	var filters []filter.Filter
	if ids := conv.SliceAnyToString(cfg["blacklist"]); len(ids) > 0 {
		filters = append(filters, filter.NewBlacklistFilter(ids, nil, ""))
	}
	if ids := conv.SliceAnyToString(cfg["allowlist"]); len(ids) > 0 {
		filters = append(filters, filter.NewAllowlistFilter(ids))
	}
	if expr := conv.ConfigGet(cfg, "expr", ""); expr != "" {
		f, err := filter.NewExprFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("build expr filter: %w", err)
		}
		filters = append(filters, f)
	}
	if len(filters) == 0 {
		return nil, fmt.Errorf("filter config needs at least one of blacklist / allowlist / expr")
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	return &rerank.TopNNode{N: int(n)}, nil
}
