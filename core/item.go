package core

import "github.com/rushteam/recmap/pkg/utils"

// Item 是推荐链路中的统一承载结构：外部物品 ID、分数、标签。
// ID 是调用方可见的外部标识（字符串/UUID）；Score 用于排序决策；
// Labels 用于解释与策略驱动。
type Item struct {
	ID     string
	Score  float64
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 获取物品级 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	lbl, ok := it.Labels[key]
	return lbl, ok
}
