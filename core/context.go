package core

import "github.com/rushteam/recmap/pkg/utils"

// RecommendContext 承载一次推荐请求的用户/场景/参数信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string // 外部用户 ID（字符串/UUID，冷启动请求可为空）
	Scene  string

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：新用户、重度用户等
	Labels map[string]utils.Label

	// Params 请求级上下文参数，例如：
	//   - interacted_item_ids：冷启动召回用的交互物品列表
	//   - cutoff：请求级截断数量
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
