package scheduler

import (
	"errors"
	"math/rand"
)

const (
	DefaultMaxDaysPerWorker = 5
	DefaultMaxPerShift      = 2
	DefaultMinPerShift      = 2
)

// 排班限制参数
type Parameters struct {
	MaxDaysPerWorker int // 每名员工每周最多工作的天数
	MaxPerShift      int // 每个班次最多容纳的人数
	MinPerShift      int // 每个班次至少需要的人数
}

func DefaultParameters() *Parameters {
	return &Parameters{
		MaxDaysPerWorker: DefaultMaxDaysPerWorker,
		MaxPerShift:      DefaultMaxPerShift,
		MinPerShift:      DefaultMinPerShift,
	}
}

func (p *Parameters) Validate() error {
	if p.MaxDaysPerWorker < 1 {
		return errors.New("每名员工每周最多工作天数必须大于 0")
	}
	if p.MaxPerShift < 1 {
		return errors.New("每个班次最多人数必须大于 0")
	}
	if p.MinPerShift < 0 {
		return errors.New("每个班次最少人数不能为负数")
	}
	return nil
}

// RandomSource 是排班过程中所有随机步骤的来源
// 包括偏好阶段的顺序、顺延重试的顺序、备选班次的顺序以及补位时的随机挑选
// *rand.Rand 满足这个接口
type RandomSource interface {
	Shuffle(n int, swap func(i, j int))
	Intn(n int) int
}

// NewRandomSource 创建一个固定种子的随机源，相同种子、相同名册得到相同的排班结果
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}
