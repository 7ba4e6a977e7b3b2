// Package split 把稀疏交互矩阵按行切分成互不相交的训练/测试两个矩阵。
// 每行的每个非零元以 testRatio 的概率独立落入测试集，否则留在训练集；
// 切分是行内局部的：元素不会跨行迁移，行与行之间没有相关性。
//
// 数值内核按元素类型特化（float32 / float64 / int64 直连泛型内核），
// 其余类型升档到 float64 切分后再转回原类型，用少量精度/内存成本
// 换取全类型覆盖，避免内核逻辑重复。
package split

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recmap/core"
	"github.com/rushteam/recmap/sparse"
)

type options struct {
	seed        int64
	hasSeed     bool
	parallelism int
}

// Option 配置单次切分。
type Option func(*options)

// WithSeed 固定随机种子。给定种子时结果完全可复现，
// 且与并行度无关（每行的随机流由 (seed, row) 派生）。
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// WithParallelism 限制行级并行度；不设置时取 GOMAXPROCS。
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// Rowwise 切分矩阵，返回与输入同形状、同元素类型的 (train, test)。
// testRatio 必须在 [0, 1] 内；未指定种子时从系统熵源取一个。
func Rowwise(m *sparse.Matrix, testRatio float64, opts ...Option) (train, test *sparse.Matrix, err error) {
	if m == nil {
		return nil, nil, core.NewDomainError(core.ModuleSplit, core.ErrorCodeValidation,
			"split: matrix is required")
	}
	if testRatio < 0 || testRatio > 1.0 {
		return nil, nil, core.NewDomainError(core.ModuleSplit, core.ErrorCodeValidation,
			fmt.Sprintf("split: test ratio must be within [0.0, 1.0], got %v", testRatio))
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	seed := o.seed
	if !o.hasSeed {
		seed = entropySeed()
	}
	parallelism := o.parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	switch data := m.Data().(type) {
	case []float64:
		return rowwiseKernel(m, data, testRatio, seed, parallelism)
	case []float32:
		return rowwiseKernel(m, data, testRatio, seed, parallelism)
	case []int64:
		return rowwiseKernel(m, data, testRatio, seed, parallelism)
	default:
		// 回退路径：升档到 float64，切分后两个输出都转回原类型
		upcast := m.AsDType(sparse.Float64)
		trainF, testF, err := rowwiseKernel(upcast, upcast.Data().([]float64), testRatio, seed, parallelism)
		if err != nil {
			return nil, nil, err
		}
		return trainF.AsDType(m.DType()), testF.AsDType(m.DType()), nil
	}
}

// rowwiseKernel 是与元素类型无关的切分算法本体。
// 每个 goroutine 只写自己行的槽位，无共享可变状态。
func rowwiseKernel[T sparse.Element](m *sparse.Matrix, data []T, testRatio float64, seed int64, parallelism int) (*sparse.Matrix, *sparse.Matrix, error) {
	rows, cols := m.Dims()
	indptr, indices := m.CSR()

	trainIdx := make([][]int, rows)
	trainVal := make([][]T, rows)
	testIdx := make([][]int, rows)
	testVal := make([][]T, rows)

	eg := new(errgroup.Group)
	eg.SetLimit(parallelism)
	for i := 0; i < rows; i++ {
		row := i
		eg.Go(func() error {
			lo, hi := indptr[row], indptr[row+1]
			if lo == hi {
				return nil
			}
			rng := rowRNG(seed, row)
			for k := lo; k < hi; k++ {
				if rng.Float64() < testRatio {
					testIdx[row] = append(testIdx[row], indices[k])
					testVal[row] = append(testVal[row], data[k])
				} else {
					trainIdx[row] = append(trainIdx[row], indices[k])
					trainVal[row] = append(trainVal[row], data[k])
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	train, err := assemble(rows, cols, trainIdx, trainVal)
	if err != nil {
		return nil, nil, err
	}
	test, err := assemble(rows, cols, testIdx, testVal)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

func assemble[T sparse.Element](rows, cols int, rowIdx [][]int, rowVal [][]T) (*sparse.Matrix, error) {
	indptr := make([]int, rows+1)
	nnz := 0
	for i := range rowIdx {
		nnz += len(rowIdx[i])
		indptr[i+1] = nnz
	}
	indices := make([]int, 0, nnz)
	data := make([]T, 0, nnz)
	for i := range rowIdx {
		indices = append(indices, rowIdx[i]...)
		data = append(data, rowVal[i]...)
	}
	return sparse.NewCSR(rows, cols, indptr, indices, data)
}

// rowRNG 从 (seed, row) 派生该行的独立随机流。
// 派生只依赖行号，与调度顺序和并行度无关。
func rowRNG(seed int64, row int) *rand.Rand {
	s := splitmix64(uint64(seed) ^ splitmix64(uint64(row)+1))
	return rand.New(rand.NewPCG(s, splitmix64(s)))
}

// splitmix64 出自 Vigna 的 SplitMix64，用作种子混淆。
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func entropySeed() int64 {
	var b [8]byte
	// crypto/rand 在受支持平台上不会失败
	_, _ = crand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}
