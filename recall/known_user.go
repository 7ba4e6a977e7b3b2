package recall

import (
	"context"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/engine"
	"github.com/rushteam/recmap/pipeline"
)

// KnownUser 是基于 Engine 的已知用户召回源：按 rctx.UserID 走引擎的
// 已知用户链路，返回剔除已交互物品后的 TopK 候选。
// 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type KnownUser struct {
	Engine *engine.Engine

	// Cutoff 返回的最大候选数，<= 0 时取 20
	Cutoff int

	// Forbidden 请求级黑名单（可选）
	Forbidden []string

	// Allowed 白名单（可选）；非空时候选被限制在该集合内
	Allowed []string
}

func (r *KnownUser) Name() string        { return "recall.known_user" }
func (r *KnownUser) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *KnownUser) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。rctx.UserID 为空时返回空结果；
// UserID 不在映射中时返回 UNKNOWN_USER 错误。
func (r *KnownUser) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
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
	return r.Engine.RecommendForUser(ctx, rctx.UserID, cutoff, opts...)
}
