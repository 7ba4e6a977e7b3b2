package filter

import (
	"context"

	"github.com/rushteam/recmap/core"
)

// AllowlistFilter 是白名单过滤器：过滤掉不在白名单中的物品。
// 与黑名单相反，它把候选集限制在指定集合内，常用于运营圈品、合规场景。
// 注意：空白名单意味着过滤一切；不需要限制时不要挂载此过滤器。
type AllowlistFilter struct {
	ids map[string]struct{}
}

// NewAllowlistFilter 创建一个白名单过滤器。
func NewAllowlistFilter(itemIDs []string) *AllowlistFilter {
	ids := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		ids[id] = struct{}{}
	}
	return &AllowlistFilter{ids: ids}
}

func (f *AllowlistFilter) Name() string {
	return "filter.allowlist"
}

func (f *AllowlistFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	_, ok := f.ids[item.ID]
	return !ok, nil
}
