package filter

import (
	"context"

	"github.com/rushteam/recmap/core"
)

// UserBlockFilter 是用户拉黑过滤器，过滤掉当前用户主动拉黑的物品。
// 引擎的 WithForbidden 是请求级黑名单；此过滤器覆盖的是用户维度的
// 持久拉黑列表，从 Store 按 {KeyPrefix}:{UserID} 读取。
type UserBlockFilter struct {
	// Store 用于从存储中读取用户拉黑列表
	Store UserBlockStore

	// KeyPrefix 是 Store 中的 key 前缀，为空时取 "user:block"
	KeyPrefix string
}

// UserBlockStore 是用户拉黑存储接口。
type UserBlockStore interface {
	// GetUserBlocks 获取用户拉黑的物品 ID 列表
	GetUserBlocks(ctx context.Context, userID, keyPrefix string) ([]string, error)
}

// NewUserBlockFilter 创建一个用户拉黑过滤器。
func NewUserBlockFilter(store UserBlockStore, keyPrefix string) *UserBlockFilter {
	return &UserBlockFilter{
		Store:     store,
		KeyPrefix: keyPrefix,
	}
}

func (f *UserBlockFilter) Name() string {
	return "filter.user_block"
}

func (f *UserBlockFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || rctx.UserID == "" {
		return false, nil
	}
	if f.Store == nil {
		return false, nil
	}

	keyPrefix := f.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "user:block"
	}

	blockedIDs, err := f.Store.GetUserBlocks(ctx, rctx.UserID, keyPrefix)
	if err != nil {
		// 读取失败时放行，不中断整条链路
		return false, nil
	}
	for _, id := range blockedIDs {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}
