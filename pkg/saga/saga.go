package saga

import (
	"context"
	"fmt"
)

// Step один шаг саги. Compensate может быть nil, если шаг не требует отката.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Saga последовательность шагов с компенсацией.
// При ошибке шага N выполняются компенсации шагов N-1..0 в обратном порядке.
type Saga struct {
	name   string
	steps  []Step
	logger Logger
}

// New создает сагу с указанным именем (используется в логах)
func New(name string, logger Logger) *Saga {
	return &Saga{name: name, logger: logger}
}

// AddStep добавляет шаг в конец саги
func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Execute выполняет шаги по порядку. Возвращает ошибку упавшего шага;
// ошибки компенсаций логируются, но не подменяют исходную ошибку.
func (s *Saga) Execute(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			s.logger.Error("saga %s: step %s failed: %v", s.name, step.Name, err)
			s.compensate(ctx, i-1)
			return fmt.Errorf("saga %s: step %s: %w", s.name, step.Name, err)
		}
		s.logger.Info("saga %s: step %s completed", s.name, step.Name)
	}
	return nil
}

// compensate откатывает шаги from..0 в обратном порядке
func (s *Saga) compensate(ctx context.Context, from int) {
	for i := from; i >= 0; i-- {
		step := s.steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			// Компенсация обязана быть идемпотентной; при её сбое оставляем
			// след в логах для ручного разбора, но продолжаем откат остальных шагов
			s.logger.Error("saga %s: compensation for step %s failed: %v", s.name, step.Name, err)
			continue
		}
		s.logger.Info("saga %s: step %s compensated", s.name, step.Name)
	}
}
