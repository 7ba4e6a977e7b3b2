// Package mapping 提供外部 ID 与内部稠密索引之间的双向映射。
// 打分后端只认稠密整数索引；调用方只认外部字符串 ID（通常是 UUID）。
// IDMapper 是两者之间的命名层。
package mapping

import (
	"fmt"

	"github.com/rushteam/recmap/core"
)

// IDMapper 是用户/物品外部 ID 到内部索引的双射映射。
//
// 设计要点：
//   - 两个 map 提供 ID → 索引的 O(1) 查询，两个切片提供索引 → ID 的 O(1) 反查
//   - 构建时校验 ID 列表长度与交互矩阵形状一致，并拒绝重复 ID
//     （重复 ID 会让两个索引坍缩到同一个外部名字，破坏双射）
//   - 构建后不可变，可被多个 goroutine 并发查询，无需加锁
type IDMapper struct {
	userToIndex map[string]int
	itemToIndex map[string]int
	userIDs     []string
	itemIDs     []string
}

// NewIDMapper 构建映射。userIDs / itemIDs 的顺序决定内部索引；
// 长度必须分别等于交互矩阵的行数和列数。
func NewIDMapper(userIDs, itemIDs []string, interactions core.InteractionMatrix) (*IDMapper, error) {
	rows, cols := interactions.Dims()
	if len(userIDs) != rows {
		return nil, core.NewDomainError(core.ModuleMapping, core.ErrorCodeValidation,
			fmt.Sprintf("mapping: %d user ids for %d matrix rows", len(userIDs), rows))
	}
	if len(itemIDs) != cols {
		return nil, core.NewDomainError(core.ModuleMapping, core.ErrorCodeValidation,
			fmt.Sprintf("mapping: %d item ids for %d matrix columns", len(itemIDs), cols))
	}

	userToIndex := make(map[string]int, len(userIDs))
	for i, id := range userIDs {
		if _, ok := userToIndex[id]; ok {
			return nil, core.NewDomainError(core.ModuleMapping, core.ErrorCodeValidation,
				fmt.Sprintf("mapping: duplicate user id %q", id))
		}
		userToIndex[id] = i
	}
	itemToIndex := make(map[string]int, len(itemIDs))
	for i, id := range itemIDs {
		if _, ok := itemToIndex[id]; ok {
			return nil, core.NewDomainError(core.ModuleMapping, core.ErrorCodeValidation,
				fmt.Sprintf("mapping: duplicate item id %q", id))
		}
		itemToIndex[id] = i
	}

	m := &IDMapper{
		userToIndex: userToIndex,
		itemToIndex: itemToIndex,
		userIDs:     append([]string(nil), userIDs...),
		itemIDs:     append([]string(nil), itemIDs...),
	}
	return m, nil
}

// UserIndex 返回用户的内部行索引。
func (m *IDMapper) UserIndex(id string) (int, error) {
	idx, ok := m.userToIndex[id]
	if !ok {
		return 0, core.NewDomainError(core.ModuleMapping, core.ErrorCodeUnknownUser,
			fmt.Sprintf("mapping: unknown user id %q", id))
	}
	return idx, nil
}

// ItemIndex 返回物品的内部列索引。
func (m *IDMapper) ItemIndex(id string) (int, error) {
	idx, ok := m.itemToIndex[id]
	if !ok {
		return 0, core.NewDomainError(core.ModuleMapping, core.ErrorCodeUnknownItem,
			fmt.Sprintf("mapping: unknown item id %q", id))
	}
	return idx, nil
}

// ItemIndices 批量解析物品 ID，遇到未知 ID 立即失败。
func (m *IDMapper) ItemIndices(ids []string) ([]int, error) {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		idx, err := m.ItemIndex(id)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

// UserID 返回索引对应的外部用户 ID。索引合法时纯数组查询，不会失败。
func (m *IDMapper) UserID(index int) string {
	return m.userIDs[index]
}

// ItemID 返回索引对应的外部物品 ID。索引合法时纯数组查询，不会失败。
func (m *IDMapper) ItemID(index int) string {
	return m.itemIDs[index]
}

// NumUsers 返回用户数。
func (m *IDMapper) NumUsers() int { return len(m.userIDs) }

// NumItems 返回物品数。
func (m *IDMapper) NumItems() int { return len(m.itemIDs) }
