package recall

import (
	"context"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/pipeline"
	"github.com/rushteam/recmap/pkg/utils"
)

// UserHistory 是基于用户历史行为的召回源：从 Store 读取用户最近交互的物品。
// 典型用途是把存储里的交互流喂给 ColdStart（作为 interacted_item_ids 的来源），
// 或者直接作为“再看一次”类召回。
type UserHistory struct {
	Store UserHistoryStore

	// KeyPrefix 是 Store 中的 key 前缀，实际 key 为 {KeyPrefix}:{UserID}
	KeyPrefix string

	// TopK 返回 TopK 个物品，<= 0 时取 20
	TopK int
}

// UserHistoryStore 是用户历史存储接口。
type UserHistoryStore interface {
	// GetUserHistory 获取用户最近交互的物品 ID 列表（按时间降序）
	GetUserHistory(ctx context.Context, userID, keyPrefix string, limit int) ([]string, error)
}

func (r *UserHistory) Name() string        { return "recall.user_history" }
func (r *UserHistory) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *UserHistory) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *UserHistory) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	keyPrefix := r.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "user:history"
	}
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	itemIDs, err := r.Store.GetUserHistory(ctx, rctx.UserID, keyPrefix, topK)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return nil, nil
	}

	out := make([]*core.Item, 0, len(itemIDs))
	for _, id := range itemIDs {
		it := core.NewItem(id)
		it.PutLabel("recall_source", utils.Label{Value: "user_history", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
