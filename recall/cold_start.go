package recall

import (
	"context"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/engine"
	"github.com/rushteam/recmap/pipeline"
	"github.com/rushteam/recmap/pkg/conv"
)

// ColdStart 是冷启动召回源：用户不在索引中时，从
// rctx.Params["interacted_item_ids"] 读取其部分交互集合，
// 走引擎的冷启动链路打分召回。
// 交互列表中的未知物品 ID 会让整次召回失败（与已知用户链路一致）。
type ColdStart struct {
	Engine *engine.Engine

	// Cutoff 返回的最大候选数，<= 0 时取 20
	Cutoff int

	// Forbidden 请求级黑名单（可选）
	Forbidden []string

	// Allowed 白名单（可选）；非空时候选被限制在该集合内
	Allowed []string
}

func (r *ColdStart) Name() string        { return "recall.cold_start" }
func (r *ColdStart) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *ColdStart) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *ColdStart) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil || rctx == nil {
		return nil, nil
	}

	var interacted []string
	if rctx.Params != nil {
		interacted = conv.SliceAnyToString(rctx.Params["interacted_item_ids"])
	}

	cutoff := r.Cutoff
	if cutoff <= 0 {
		cutoff = 20
	}

	opts := make([]engine.Option, 0, 2)
	if len(r.Forbidden) > 0 {
		opts = append(opts, engine.WithForbidden(r.Forbidden...))
	}
	if len(r.Allowed) > 0 {
		opts = append(opts, engine.WithAllowed(r.Allowed...))
	}
	return r.Engine.RecommendForNewUser(ctx, interacted, cutoff, opts...)
}
