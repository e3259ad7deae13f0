package get_week_availability

import (
	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// Request модель запроса доступности на неделю
type Request struct {
	Date types.Date // Любая дата недели; если не задана, берется сегодняшняя
}

// Response матрица доступности: дни пн-сб, слоты в порядке сетки
type Response struct {
	Days []Day
}

// Day доступность слотов одного дня
type Day struct {
	Date  types.Date
	Slots []Slot
}

// Slot доступность одного слота
type Slot struct {
	Slot      domain.Slot
	Available bool
}
