// Package recmap 是推荐系统的 ID 映射与候选检索层。
//
// 设计要点：
//   - Mapping-first: 外部字符串 ID 与打分后端的稠密索引之间是严格双射
//     （mapping.IDMapper），构建后不可变
//   - Engine: 已知用户与冷启动两条推荐链路（engine.Engine），
//     剔除已交互物品、套用黑/白名单、确定性 TopK
//   - Split: 交互矩阵的按行训练/测试切分（split.Rowwise），
//     按元素类型特化内核，给定种子完全可复现
//   - Pipeline: 召回 → 过滤 → 重排的可组合 Node 链，支持 YAML/JSON 配置驱动
package recmap

import "github.com/rushteam/recmap/pipeline"

// 轻量 facade：便于用户直接 import "recmap" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
