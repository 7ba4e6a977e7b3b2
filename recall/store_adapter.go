package recall

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/recmap/core"
)

// StoreAdapter 将 core.Store 适配为 UserHistoryStore。
// - KeyValueStore 后端：从有序集合 {keyPrefix}:{userID} 按分数（时间戳）降序读取
// - 普通 Store 后端：从同名 key 读取 JSON 数组
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建存储适配器。
func NewStoreAdapter(store core.Store) *StoreAdapter {
	return &StoreAdapter{store: store}
}

var _ UserHistoryStore = (*StoreAdapter)(nil)

// GetUserHistory 实现 UserHistoryStore。key 不存在时返回空列表，不报错。
func (a *StoreAdapter) GetUserHistory(ctx context.Context, userID, keyPrefix string, limit int) ([]string, error) {
	if a.store == nil || userID == "" {
		return nil, nil
	}
	key := fmt.Sprintf("%s:%s", keyPrefix, userID)

	if kvStore, ok := a.store.(core.KeyValueStore); ok {
		members, err := kvStore.ZRange(ctx, key, 0, int64(limit)-1)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return members, nil
	}

	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("recall: decode user history %s: %w", key, err)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
