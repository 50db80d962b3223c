package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Generator разворачивает определение в слоты на диапазоне дат.
// Ничего не сохраняет; даты интерпретируются в зоне loc.
type Generator struct {
	loc *time.Location
}

// NewGenerator создает генератор для указанной временной зоны (nil = UTC)
func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{loc: loc}
}

// Count считает итоги генерации без создания слотов (режим предпросмотра)
func (g *Generator) Count(def *domain.AppointmentDefinition, startDate, endDate time.Time) (Summary, error) {
	first, last, err := g.bounds(startDate, endDate)
	if err != nil {
		return Summary{}, err
	}

	// полные недели дают по одному совпадению на каждый выбранный день,
	// остаток недели проверяется поштучно
	total := int(dayNumber(last)-dayNumber(first)) + 1
	perWeek := 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if def.Weekdays.Contains(wd) {
			perWeek++
		}
	}
	matching := total / 7 * perWeek
	for i := 0; i < total%7; i++ {
		if def.Weekdays.Contains(time.Weekday((int(first.Weekday()) + i) % 7)) {
			matching++
		}
	}

	summary := Summary{
		TotalDays:    total,
		MatchingDays: matching,
		SlotsPerDay:  def.SlotsPerDay(),
	}
	summary.TotalSlots = summary.MatchingDays * summary.SlotsPerDay

	return summary, nil
}

// Expand создает слоты: сначала по дням, внутри дня по времени.
// Слоты открыты и не назначены; ID не заполнены.
func (g *Generator) Expand(def *domain.AppointmentDefinition, startDate, endDate time.Time) ([]*domain.Slot, Summary, error) {
	summary, err := g.Count(def, startDate, endDate)
	if err != nil {
		return nil, Summary{}, err
	}

	first, last, _ := g.bounds(startDate, endDate)
	duration := time.Duration(def.SlotDurationMinutes) * time.Minute
	windowStart := def.WindowStart.Minutes()

	slots := make([]*domain.Slot, 0, summary.TotalSlots)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !def.Weekdays.Contains(day.Weekday()) {
			continue
		}

		y, m, d := day.Date()
		for i := 0; i < summary.SlotsPerDay; i++ {
			// time.Date нормализует минуты за пределами суток на следующий день
			start := time.Date(y, m, d, 0, windowStart+i*def.SlotDurationMinutes, 0, 0, g.loc)
			slots = append(slots, &domain.Slot{
				DefinitionID: def.ID,
				Date:         day,
				StartAt:      start,
				EndAt:        start.Add(duration),
				Status:       domain.SlotOpen,
				Assignment:   domain.NoAssignment(),
				IsActive:     true,
			})
		}
	}

	return slots, summary, nil
}

// bounds переносит календарные даты в зону генератора
func (g *Generator) bounds(startDate, endDate time.Time) (time.Time, time.Time, error) {
	first := g.calendarDay(startDate)
	last := g.calendarDay(endDate)

	if last.Before(first) {
		return time.Time{}, time.Time{}, domain.NewValidationError("endDate", "must not be before startDate")
	}

	return first, last, nil
}

func (g *Generator) calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, g.loc)
}

// Days число дней в диапазоне включительно
func Days(startDate, endDate time.Time) int {
	return int(dayNumber(endDate)-dayNumber(startDate)) + 1
}

// dayNumber порядковый номер календарного дня t.
// time.Duration не покрывает диапазоны длиннее ~292 лет, поэтому считаем через Unix.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
