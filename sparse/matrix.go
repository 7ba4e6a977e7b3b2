// Package sparse 提供 CSR 格式的稀疏交互矩阵实现。
// 行对应用户、列对应物品；数值按元素类型（DType）原样保存，
// 供 split 包做按类型特化的切分。
package sparse

import (
	"fmt"
	"sort"

	"github.com/rushteam/recmap/core"
)

// DType 是矩阵元素类型标记。Float64 / Float32 / Int64 有专门的切分内核；
// 其余类型走统一的 float64 升档回退路径。
type DType int

const (
	Float64 DType = iota
	Float32
	Int64
	Int32
	Int8
)

func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	case Int8:
		return "int8"
	default:
		return fmt.Sprintf("dtype(%d)", int(d))
	}
}

// Element 是矩阵数值的类型集合。
type Element interface {
	~float32 | ~float64 | ~int8 | ~int32 | ~int64
}

// Matrix 是 CSR 格式的稀疏矩阵。构建后视为不可变，可被多个 goroutine 并发读取。
type Matrix struct {
	rows, cols int
	dtype      DType
	indptr     []int // 长度 rows+1，第 i 行非零元位于 [indptr[i], indptr[i+1])
	indices    []int // 列索引，每行内升序
	data       any   // []float32 / []float64 / []int8 / []int32 / []int64，与 dtype 一致
}

// NewCSR 从 CSR 三元组构建矩阵。data 必须是受支持的数值切片类型，
// 且 len(indices) == len(data) == indptr[rows]。
func NewCSR(rows, cols int, indptr, indices []int, data any) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, core.NewDomainError(core.ModuleSparse, core.ErrorCodeValidation,
			fmt.Sprintf("sparse: invalid shape (%d, %d)", rows, cols))
	}
	dtype, n, err := inspectData(data)
	if err != nil {
		return nil, err
	}
	if len(indptr) != rows+1 {
		return nil, core.NewDomainError(core.ModuleSparse, core.ErrorCodeValidation,
			fmt.Sprintf("sparse: indptr length %d, want %d", len(indptr), rows+1))
	}
	if indptr[0] != 0 {
		return nil, core.NewDomainError(core.ModuleSparse, core.ErrorCodeValidation,
			fmt.Sprintf("sparse: indptr must start at 0, got %d", indptr[0]))
	}
	if len(indices) != n || indptr[rows] != n {
		return nil, core.NewDomainError(core.ModuleSparse, core.ErrorCodeValidation,
			fmt.Sprintf("sparse: nnz mismatch: indices=%d data=%d indptr[-1]=%d", len(indices), n, indptr[rows]))
	}
	for i := 0; i < rows; i++ {
		if indptr[i] > indptr[i+1] {
			return nil, core.NewDomainError(core.ModuleSparse, core.ErrorCodeValidation,
				fmt.Sprintf("sparse: indptr not monotonic at row %d", i))
		}
	}
	for _, j := range indices {
		if j < 0 || j >= cols {
			return nil, core.NewDomainError(core.ModuleSparse, core.ErrorCodeValidation,
				fmt.Sprintf("sparse: column index %d out of range [0, %d)", j, cols))
		}
	}
	return &Matrix{rows: rows, cols: cols, dtype: dtype, indptr: indptr, indices: indices, data: data}, nil
}

// FromDense 从稠密矩阵构建，丢弃零元，数值转为 dtype 指定的类型。
func FromDense(values [][]float64, dtype DType) (*Matrix, error) {
	rows := len(values)
	cols := 0
	if rows > 0 {
		cols = len(values[0])
	}
	indptr := make([]int, rows+1)
	var indices []int
	var dense []float64
	for i, row := range values {
		if len(row) != cols {
			return nil, core.NewDomainError(core.ModuleSparse, core.ErrorCodeValidation,
				fmt.Sprintf("sparse: ragged dense input at row %d", i))
		}
		for j, v := range row {
			if v != 0 {
				indices = append(indices, j)
				dense = append(dense, v)
			}
		}
		indptr[i+1] = len(indices)
	}
	return NewCSR(rows, cols, indptr, indices, castFromFloat64(dense, dtype))
}

// Dims 返回形状 (rows, cols)。
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// NNZ 返回非零元总数。
func (m *Matrix) NNZ() int { return len(m.indices) }

// DType 返回元素类型标记。
func (m *Matrix) DType() DType { return m.dtype }

// Data 返回底层数值切片（只读），类型与 DType 对应。
func (m *Matrix) Data() any { return m.data }

// CSR 返回底层 indptr / indices（只读）。
func (m *Matrix) CSR() (indptr, indices []int) { return m.indptr, m.indices }

// RowNonzeros 返回第 row 行的非零列索引（升序）及 float64 数值。
// indices 为底层切片，不可修改；values 为拷贝。
func (m *Matrix) RowNonzeros(row int) ([]int, []float64) {
	lo, hi := m.indptr[row], m.indptr[row+1]
	return m.indices[lo:hi], toFloat64s(m.data, lo, hi)
}

// RowNNZ 返回第 row 行的非零元个数。
func (m *Matrix) RowNNZ(row int) int {
	return m.indptr[row+1] - m.indptr[row]
}

// AsDType 返回数值转为目标类型的新矩阵；数值经 float64 中转。
// indptr / indices 与原矩阵共享（两者均视为不可变）。
func (m *Matrix) AsDType(dtype DType) *Matrix {
	if dtype == m.dtype {
		return m
	}
	dense := toFloat64s(m.data, 0, len(m.indices))
	return &Matrix{
		rows:    m.rows,
		cols:    m.cols,
		dtype:   dtype,
		indptr:  m.indptr,
		indices: m.indices,
		data:    castFromFloat64(dense, dtype),
	}
}

// Dense 展开为稠密 float64 矩阵（测试/调试用）。
func (m *Matrix) Dense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		out[i] = make([]float64, m.cols)
		cols, vals := m.RowNonzeros(i)
		for k, j := range cols {
			out[i][j] = vals[k]
		}
	}
	return out
}

// PresenceVector 构建一条长度 dim 的出现指示向量：positions 中的位置置 1.0。
// positions 会被去重并按升序排列。
func PresenceVector(dim int, positions []int) *core.SparseVector {
	seen := make(map[int]struct{}, len(positions))
	uniq := make([]int, 0, len(positions))
	for _, p := range positions {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}
	sort.Ints(uniq)
	values := make([]float64, len(uniq))
	for i := range values {
		values[i] = 1.0
	}
	return &core.SparseVector{Indices: uniq, Values: values, Dim: dim}
}

var _ core.InteractionMatrix = (*Matrix)(nil)

func inspectData(data any) (DType, int, error) {
	switch d := data.(type) {
	case []float64:
		return Float64, len(d), nil
	case []float32:
		return Float32, len(d), nil
	case []int64:
		return Int64, len(d), nil
	case []int32:
		return Int32, len(d), nil
	case []int8:
		return Int8, len(d), nil
	default:
		return 0, 0, core.NewDomainError(core.ModuleSparse, core.ErrorCodeNotSupported,
			fmt.Sprintf("sparse: unsupported data type %T", data))
	}
}

func toFloat64s(data any, lo, hi int) []float64 {
	switch d := data.(type) {
	case []float64:
		out := make([]float64, hi-lo)
		copy(out, d[lo:hi])
		return out
	case []float32:
		return convertToFloat64(d[lo:hi])
	case []int64:
		return convertToFloat64(d[lo:hi])
	case []int32:
		return convertToFloat64(d[lo:hi])
	case []int8:
		return convertToFloat64(d[lo:hi])
	default:
		return nil
	}
}

func convertToFloat64[T Element](src []T) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func castFromFloat64(src []float64, dtype DType) any {
	switch dtype {
	case Float64:
		out := make([]float64, len(src))
		copy(out, src)
		return out
	case Float32:
		return convertFromFloat64[float32](src)
	case Int64:
		return convertFromFloat64[int64](src)
	case Int32:
		return convertFromFloat64[int32](src)
	case Int8:
		return convertFromFloat64[int8](src)
	default:
		return nil
	}
}

func convertFromFloat64[T Element](src []float64) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(v)
	}
	return out
}
