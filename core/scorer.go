package core

import "context"

// Scorer 是打分后端的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由调用方注入实现（本地模型、RPC 服务均可）
//   - 引擎只消费分数，不关心模型形态
//   - 两个方法都必须对请求的每个位置返回有限分数，分数越高越相关
//
// 实现：
//   - 测试中使用固定分数矩阵的编内实现
//   - 生产中可由任意暴露 per-user / per-interaction-vector 分数的服务实现
type Scorer interface {
	// ScoreUsers 对一批已知用户（内部行索引）批量打分，
	// 返回 [len(userIndices) x 物品数] 的稠密分数矩阵，行序与入参一致
	ScoreUsers(ctx context.Context, userIndices []int) ([][]float64, error)

	// ScoreColdStart 对一条稀疏交互向量（长度 = 物品数）打分，
	// 返回长度为物品数的稠密分数向量
	ScoreColdStart(ctx context.Context, interactions *SparseVector) ([]float64, error)
}
