package core

// InteractionMatrix 是交互矩阵的只读领域接口。
// 行对应用户、列对应物品，非零元表示观测到的交互（隐式/显式反馈权重）。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（sparse）实现
//   - 引擎只需要形状查询和按行遍历非零元，不关心存储格式
//   - 矩阵由调用方持有，引擎只保留只读引用
type InteractionMatrix interface {
	// Dims 返回矩阵形状 (用户数, 物品数)
	Dims() (rows, cols int)

	// RowNonzeros 返回第 row 行的非零列索引（升序）及对应数值。
	// 返回的切片不可修改。
	RowNonzeros(row int) (indices []int, values []float64)
}

// SparseVector 是长度为 Dim 的稀疏向量，Indices 升序且与 Values 一一对应。
// 冷启动打分时用它承载用户的部分交互集合。
type SparseVector struct {
	Indices []int
	Values  []float64
	Dim     int
}

// NNZ 返回非零元个数。
func (v *SparseVector) NNZ() int {
	return len(v.Indices)
}

// ToDense 展开为稠密 float64 向量。
func (v *SparseVector) ToDense() []float64 {
	dense := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		if idx >= 0 && idx < v.Dim {
			dense[idx] = v.Values[i]
		}
	}
	return dense
}
