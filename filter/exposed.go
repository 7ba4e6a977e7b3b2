package filter

import (
	"context"

	"github.com/rushteam/recmap/core"
)

// ExposedFilter 是已曝光过滤器，过滤掉用户已经看过的物品。
// 曝光集合从 Store 读取，key 为 {KeyPrefix}:{UserID}。
// 引擎内部已经剔除了交互矩阵中的已交互物品；此过滤器覆盖的是
// 矩阵构建之后新产生的曝光（实时数据）。
type ExposedFilter struct {
	// Store 用于从存储中读取用户曝光历史
	Store ExposedStore

	// KeyPrefix 是 Store 中的 key 前缀，为空时取 "user:exposed"
	KeyPrefix string
}

// ExposedStore 是曝光历史存储接口。
type ExposedStore interface {
	// GetExposedItems 获取用户已曝光的物品 ID 列表
	GetExposedItems(ctx context.Context, userID, keyPrefix string) ([]string, error)
}

// NewExposedFilter 创建一个已曝光过滤器。
func NewExposedFilter(store ExposedStore, keyPrefix string) *ExposedFilter {
	return &ExposedFilter{
		Store:     store,
		KeyPrefix: keyPrefix,
	}
}

func (f *ExposedFilter) Name() string {
	return "filter.exposed"
}

func (f *ExposedFilter) ShouldFilter(
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
		keyPrefix = "user:exposed"
	}

	exposedIDs, err := f.Store.GetExposedItems(ctx, rctx.UserID, keyPrefix)
	if err != nil {
		// 读取失败时放行，不中断整条链路
		return false, nil
	}
	for _, id := range exposedIDs {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}
