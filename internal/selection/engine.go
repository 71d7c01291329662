package selection

import (
	"math"
	"sort"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// State неизменяемое состояние выбора слотов: упорядоченный набор
// стартовых времён, в норме образующий один непрерывный диапазон.
// Все операции возвращают новое состояние, входное не мутируется.
type State struct {
	indexes []int // позиции в дневной сетке, отсортированы по возрастанию
}

// Empty возвращает пустой выбор
func Empty() State {
	return State{}
}

// FromTimes строит состояние из списка стартовых времён.
// Времена должны быть выровнены по 30-минутной сетке; дубликаты схлопываются.
func FromTimes(times []types.TimeString) (State, error) {
	seen := make(map[int]struct{}, len(times))
	indexes := make([]int, 0, len(times))

	for _, t := range times {
		idx := domain.SlotIndex(t)
		if idx < 0 {
			return State{}, ErrInvalidSlot
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		indexes = append(indexes, idx)
	}

	sort.Ints(indexes)
	return State{indexes: indexes}, nil
}

// Times возвращает стартовые времена выбранных слотов по возрастанию
func (s State) Times() []types.TimeString {
	times := make([]types.TimeString, len(s.indexes))
	for i, idx := range s.indexes {
		times[i] = domain.SlotTime(idx)
	}
	return times
}

// IsEmpty возвращает true, если ничего не выбрано
func (s State) IsEmpty() bool {
	return len(s.indexes) == 0
}

// Size возвращает количество выбранных слотов
func (s State) Size() int {
	return len(s.indexes)
}

func (s State) min() int { return s.indexes[0] }
func (s State) max() int { return s.indexes[len(s.indexes)-1] }

func (s State) contains(idx int) bool {
	i := sort.SearchInts(s.indexes, idx)
	return i < len(s.indexes) && s.indexes[i] == idx
}

// IsContiguous возвращает true, если выбор пуст или образует один
// непрерывный диапазон без пропусков
func (s State) IsContiguous() bool {
	for i := 1; i < len(s.indexes); i++ {
		if s.indexes[i] != s.indexes[i-1]+1 {
			return false
		}
	}
	return true
}

// Reduce применяет клик по слоту к текущему выбору и возвращает новый выбор.
// Чистая функция: не выполняет I/O, состояние аргументов не меняется.
// Клик по недоступному слоту игнорируется.
func Reduce(s State, clicked types.TimeString, catalog []domain.TimeSlot) (State, error) {
	if len(catalog) != domain.SlotsPerDay {
		return s, ErrInvalidCatalog
	}

	idx := domain.SlotIndex(clicked)
	if idx < 0 {
		return s, ErrInvalidSlot
	}

	// Клик по недоступному слоту — no-op
	if !catalog[idx].IsAvailable() {
		return s, nil
	}

	if s.IsEmpty() {
		return autoHour(idx, catalog), nil
	}

	if s.contains(idx) {
		return removeClicked(s, idx), nil
	}

	switch {
	case idx == s.min()-1:
		return grow(s, idx)

	case idx == s.max()+1:
		return grow(s, idx)

	case idx < s.min() || idx > s.max():
		// Разрыв больше одного слота — начинаем выбор заново с кликнутого слота
		return autoHour(idx, catalog), nil

	default:
		// Слот строго внутри [min, max], но не выбран: пересобираем
		// диапазон [min, idx] целиком или отклоняем операцию
	}

	return reslice(s, idx, catalog)
}

// autoHour выбор с нуля: кликнутый слот плюс следующий, если тот доступен
// (автоматический выбор одного часа)
func autoHour(idx int, catalog []domain.TimeSlot) State {
	if idx+1 < domain.SlotsPerDay && catalog[idx+1].IsAvailable() {
		return State{indexes: []int{idx, idx + 1}}
	}
	return State{indexes: []int{idx}}
}

// removeClicked обрабатывает клик по уже выбранному слоту
func removeClicked(s State, idx int) State {
	// Клик по внутреннему слоту сбрасывает выбор целиком
	if idx != s.min() && idx != s.max() {
		return Empty()
	}

	// Клик по границе укорачивает диапазон; одинокий слот не оставляем
	if len(s.indexes) <= 2 {
		return Empty()
	}

	indexes := make([]int, 0, len(s.indexes)-1)
	for _, i := range s.indexes {
		if i != idx {
			indexes = append(indexes, i)
		}
	}
	return State{indexes: indexes}
}

// grow расширяет диапазон на один слот, примыкающий к границе
func grow(s State, idx int) (State, error) {
	if len(s.indexes)+1 > domain.MaxSelectionSlots {
		return s, ErrMaxDurationExceeded
	}

	indexes := make([]int, 0, len(s.indexes)+1)
	indexes = append(indexes, s.indexes...)
	indexes = append(indexes, idx)
	sort.Ints(indexes)
	return State{indexes: indexes}, nil
}

// reslice пересобирает диапазон [min, idx]. Каждый слот диапазона должен
// быть доступен или уже выбран, иначе операция отклоняется целиком.
func reslice(s State, idx int, catalog []domain.TimeSlot) (State, error) {
	lo := s.min()
	if idx-lo+1 > domain.MaxSelectionSlots {
		return s, ErrMaxDurationExceeded
	}

	indexes := make([]int, 0, idx-lo+1)
	for i := lo; i <= idx; i++ {
		if !catalog[i].IsAvailable() && !s.contains(i) {
			return s, ErrNonContiguous
		}
		indexes = append(indexes, i)
	}
	return State{indexes: indexes}, nil
}

// Summary производные характеристики непустого выбора
type Summary struct {
	StartTime     types.TimeString
	EndTime       types.TimeString // exclusive
	DurationHours float64
	BasePrice     int64
}

// Summarize возвращает производные характеристики выбора.
// Для пустого выбора возвращает (nil, false).
func Summarize(s State, hourlyRate int64) (*Summary, bool) {
	if s.IsEmpty() {
		return nil, false
	}

	end, _ := domain.SlotTime(s.max()).AddMinutes(domain.SlotDurationMinutes)
	durationHours := float64(s.Size()) * 0.5

	return &Summary{
		StartTime:     domain.SlotTime(s.min()),
		EndTime:       end,
		DurationHours: durationHours,
		BasePrice:     int64(math.Round(durationHours * float64(hourlyRate))),
	}, true
}
