package scheduler

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameters   = errors.New("遗传算法参数不合法")
	ErrRunFailed           = errors.New("排班运行失败")
	ErrMalformedIndividual = errors.New("个体结构不合法")
)

type InvalidParametersError struct {
	Field  string
	Reason string
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidParameters, e.Field, e.Reason)
}

func (e *InvalidParametersError) Unwrap() error {
	return ErrInvalidParameters
}

// Phase 表示一代中的某个阶段，用于定位运行失败的位置
type Phase string

const (
	PhaseInitialize Phase = "initialize"
	PhaseSelection  Phase = "selection"
	PhaseCrossover  Phase = "crossover"
	PhaseMutation   Phase = "mutation"
	PhaseEvaluation Phase = "evaluation"
	PhaseCancelled  Phase = "cancelled"
)

// RunError: 运行失败，整个运行作废，不返回任何部分结果
type RunError struct {
	Generation int
	Phase      Phase
	Err        error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: 第 %d 代 %s 阶段: %v", ErrRunFailed, e.Generation, e.Phase, e.Err)
}

func (e *RunError) Is(target error) bool {
	return target == ErrRunFailed
}

func (e *RunError) Unwrap() error {
	return e.Err
}
