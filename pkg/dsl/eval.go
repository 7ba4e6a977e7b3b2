// Package dsl 提供基于 CEL (Common Expression Language) 的候选过滤表达式。
// CEL 是 Google 开发的表达式语言，类型安全、高性能、线程安全。
//
// 表达式中可用的变量：
//   - item：候选物品，item.id / item.score
//   - label：候选物品的标签值，label.recall_source 等
//   - rctx：请求上下文，rctx.user_id / rctx.scene / rctx.params
//
// 示例：
//   - `item.score < 0.1` → 过滤低分候选
//   - `label.recall_source.contains("hot")` → 召回来源包含 "hot"
//   - `rctx.scene == "feed" && item.score < 0.5` → 按场景设置分数下限
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/recmap/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Expr 是一条编译好的过滤表达式，可以对多个候选重复求值。
type Expr struct {
	src string
	prg cel.Program
}

// Compile 编译表达式。表达式必须求值为布尔。
func Compile(src string) (*Expr, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("dsl: init cel env: %w", err)
	}
	ast, iss := env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("dsl: compile %q: %w", src, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program %q: %w", src, err)
	}
	return &Expr{src: src, prg: prg}, nil
}

// Source 返回表达式原文。
func (e *Expr) Source() string { return e.src }

// EvalItem 对单个候选求值，返回布尔结果。
func (e *Expr) EvalItem(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	labels := map[string]string{}
	var itemVar map[string]any
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = v.Value
		}
		itemVar = map[string]any{
			"id":    item.ID,
			"score": item.Score,
		}
	}
	rctxVar := map[string]any{}
	if rctx != nil {
		rctxVar["user_id"] = rctx.UserID
		rctxVar["scene"] = rctx.Scene
		if rctx.Params != nil {
			rctxVar["params"] = rctx.Params
		}
	}

	out, _, err := e.prg.Eval(map[string]any{
		"item":  itemVar,
		"label": labels,
		"rctx":  rctxVar,
	})
	if err != nil {
		return false, fmt.Errorf("dsl: eval %q: %w", e.src, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression %q did not evaluate to bool", e.src)
	}
	return result, nil
}
