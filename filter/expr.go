package filter

import (
	"context"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/pkg/dsl"
)

// ExprFilter 是表达式过滤器：用 CEL 表达式描述要剔除的候选。
// 表达式求值为 true 的候选会被过滤掉。
// 表达式在构建时编译一次，之后对每个候选只做求值。
type ExprFilter struct {
	expr *dsl.Expr
}

// NewExprFilter 编译表达式并创建过滤器。
// 例如 NewExprFilter(`item.score < 0.1`) 会剔除低分候选。
func NewExprFilter(src string) (*ExprFilter, error) {
	expr, err := dsl.Compile(src)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{expr: expr}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return f.expr.EvalItem(item, rctx)
}
