// Package engine 实现 ID 映射之上的推荐编排：
// 取分数、剔除已交互物品、套用黑/白名单、截取 TopK、把内部索引翻译回外部 ID。
//
// 两条链路：
//   - RecommendForUser：已知用户，按内部行索引向 Scorer 取分
//   - RecommendForNewUser：冷启动，用部分交互集合构造稀疏向量取分
//
// 两者都是纯函数：同样的 (映射, 分数, 过滤参数) 永远产出同样的有序结果。
package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/mapping"
	"github.com/rushteam/recmap/pkg/utils"
	"github.com/rushteam/recmap/sparse"
)

// Engine 组合 IDMapper、注入的 Scorer 和只读交互矩阵。
// 构建后不持有任何可变状态，可被并发调用。
type Engine struct {
	mapper       *mapping.IDMapper
	scorer       core.Scorer
	interactions core.InteractionMatrix
}

// New 创建推荐引擎。interactions 的形状必须与 mapper 一致。
func New(mapper *mapping.IDMapper, scorer core.Scorer, interactions core.InteractionMatrix) (*Engine, error) {
	if mapper == nil || scorer == nil || interactions == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeValidation,
			"engine: mapper, scorer and interactions are all required")
	}
	rows, cols := interactions.Dims()
	if rows != mapper.NumUsers() || cols != mapper.NumItems() {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeValidation,
			fmt.Sprintf("engine: matrix shape (%d, %d) does not match mapper (%d, %d)",
				rows, cols, mapper.NumUsers(), mapper.NumItems()))
	}
	return &Engine{mapper: mapper, scorer: scorer, interactions: interactions}, nil
}

// Mapper 返回底层 ID 映射。
func (e *Engine) Mapper() *mapping.IDMapper { return e.mapper }

// RecommendForUser 为已知用户生成最多 cutoff 条推荐。
// 用户已交互过的物品（交互矩阵该行的非零列）和 WithForbidden 指定的物品
// 不会出现在结果中；结果按分数降序、同分按内部物品索引升序排列。
// 候选不足 cutoff 时静默截断；候选为空时返回空切片，不报错。
func (e *Engine) RecommendForUser(ctx context.Context, userID string, cutoff int, opts ...Option) ([]*core.Item, error) {
	if cutoff <= 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeValidation,
			fmt.Sprintf("engine: cutoff must be positive, got %d", cutoff))
	}
	userIndex, err := e.mapper.UserIndex(userID)
	if err != nil {
		return nil, err
	}

	rows, err := e.scorer.ScoreUsers(ctx, []int{userIndex})
	if err != nil {
		return nil, fmt.Errorf("engine: score user: %w", err)
	}
	if len(rows) != 1 || len(rows[0]) != e.mapper.NumItems() {
		return nil, fmt.Errorf("engine: scorer returned malformed score matrix for user %q", userID)
	}
	scores := rows[0]

	excluded := make([]bool, e.mapper.NumItems())
	seen, _ := e.interactions.RowNonzeros(userIndex)
	for _, j := range seen {
		excluded[j] = true
	}
	return e.rank(scores, excluded, applyOptions(opts), cutoff, "engine.known_user"), nil
}

// RecommendForNewUser 为不在索引中的新用户生成推荐：
// 把 interactedItemIDs 解析成长度为物品数的出现指示向量（1.0），
// 走 Scorer 的冷启动打分，再执行与已知用户一致的剔除/过滤/排序/截断。
// interactedItemIDs 中的未知 ID 直接报 UNKNOWN_ITEM，与已知用户链路保持一致。
func (e *Engine) RecommendForNewUser(ctx context.Context, interactedItemIDs []string, cutoff int, opts ...Option) ([]*core.Item, error) {
	if cutoff <= 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeValidation,
			fmt.Sprintf("engine: cutoff must be positive, got %d", cutoff))
	}
	positions, err := e.mapper.ItemIndices(interactedItemIDs)
	if err != nil {
		return nil, err
	}

	profile := sparse.PresenceVector(e.mapper.NumItems(), positions)
	scores, err := e.scorer.ScoreColdStart(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("engine: score cold start: %w", err)
	}
	if len(scores) != e.mapper.NumItems() {
		return nil, fmt.Errorf("engine: scorer returned %d cold-start scores, want %d",
			len(scores), e.mapper.NumItems())
	}

	excluded := make([]bool, e.mapper.NumItems())
	for _, j := range positions {
		excluded[j] = true
	}
	return e.rank(scores, excluded, applyOptions(opts), cutoff, "engine.cold_start"), nil
}

// rank 套用黑/白名单、排序并截断。excluded 已含“已交互”剔除。
func (e *Engine) rank(scores []float64, excluded []bool, o *options, cutoff int, source string) []*core.Item {
	numItems := e.mapper.NumItems()
	for _, id := range o.forbidden {
		if idx, err := e.mapper.ItemIndex(id); err == nil {
			excluded[idx] = true
		}
	}
	var allowed []bool
	if o.hasAllowed {
		allowed = make([]bool, numItems)
		for _, id := range o.allowed {
			if idx, err := e.mapper.ItemIndex(id); err == nil {
				allowed[idx] = true
			}
		}
	}

	candidates := make([]int, 0, numItems)
	for j := 0; j < numItems; j++ {
		if excluded[j] {
			continue
		}
		if allowed != nil && !allowed[j] {
			continue
		}
		candidates = append(candidates, j)
	}

	// 分数降序，同分按内部索引升序，保证结果可复现
	sort.Slice(candidates, func(a, b int) bool {
		ja, jb := candidates[a], candidates[b]
		if scores[ja] != scores[jb] {
			return scores[ja] > scores[jb]
		}
		return ja < jb
	})
	if len(candidates) > cutoff {
		candidates = candidates[:cutoff]
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, j := range candidates {
		it := core.NewItem(e.mapper.ItemID(j))
		it.Score = scores[j]
		it.PutLabel("recall_source", utils.Label{Value: source, Source: "engine"})
		out = append(out, it)
	}
	return out
}
