package filter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/recmap/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// - 黑名单：从 Key 读取 JSON 数组
// - 曝光历史/用户拉黑：KeyValueStore 后端走有序集合 {keyPrefix}:{userID}，
//   普通后端从同名 key 读取 JSON 数组
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建存储适配器。
func NewStoreAdapter(store core.Store) *StoreAdapter {
	return &StoreAdapter{store: store}
}

var (
	_ BlacklistStore = (*StoreAdapter)(nil)
	_ ExposedStore   = (*StoreAdapter)(nil)
	_ UserBlockStore = (*StoreAdapter)(nil)
)

// GetBlacklist 实现 BlacklistStore。key 不存在时返回空列表，不报错。
func (a *StoreAdapter) GetBlacklist(ctx context.Context, key string) ([]string, error) {
	if a.store == nil || key == "" {
		return nil, nil
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
		return nil, fmt.Errorf("filter: decode blacklist %s: %w", key, err)
	}
	return ids, nil
}

// GetExposedItems 实现 ExposedStore。key 不存在时返回空列表，不报错。
func (a *StoreAdapter) GetExposedItems(ctx context.Context, userID, keyPrefix string) ([]string, error) {
	return a.userScopedList(ctx, userID, keyPrefix)
}

// GetUserBlocks 实现 UserBlockStore。key 不存在时返回空列表，不报错。
func (a *StoreAdapter) GetUserBlocks(ctx context.Context, userID, keyPrefix string) ([]string, error) {
	return a.userScopedList(ctx, userID, keyPrefix)
}

// userScopedList 读取 {keyPrefix}:{userID} 下的物品列表：
// KeyValueStore 后端走有序集合，其余后端读 JSON 数组。
func (a *StoreAdapter) userScopedList(ctx context.Context, userID, keyPrefix string) ([]string, error) {
	if a.store == nil || userID == "" {
		return nil, nil
	}
	key := fmt.Sprintf("%s:%s", keyPrefix, userID)

	if kvStore, ok := a.store.(core.KeyValueStore); ok {
		members, err := kvStore.ZRange(ctx, key, 0, -1)
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
		return nil, fmt.Errorf("filter: decode user item list %s: %w", key, err)
	}
	return ids, nil
}
