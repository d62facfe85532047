package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
// nil поля заменяются значениями по умолчанию
type Request struct {
	Date               time.Time // Дата (время суток игнорируется)
	DurationMinutes    *int      // Длительность записи
	BufferMinutes      *int      // Перерыв после записи
	GranularityMinutes *int      // Шаг перебора времени начала
	ServiceIDs         []int64   // Услуги; если длительность не задана, она равна сумме их длительностей
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date               time.Time
	DurationMinutes    int
	BufferMinutes      int
	GranularityMinutes int
	FallbackWindow     bool     // Для дня недели не настроено ни одного окна
	Slots              []string // Время начала в формате YYYY-MM-DDTHH:MM:SS, по возрастанию внутри окна
}

// Defaults значения по умолчанию для расчета
type Defaults struct {
	DurationMinutes    int
	BufferMinutes      int
	GranularityMinutes int
	Window             domain.WorkWindow // Окно для дня недели без настроенных окон
}

// DefaultSettings значения по умолчанию 30/15/15 и окно 08:00-18:00
func DefaultSettings() Defaults {
	return Defaults{
		DurationMinutes:    domain.DefaultDurationMinutes,
		BufferMinutes:      domain.DefaultBufferMinutes,
		GranularityMinutes: domain.DefaultGranularityMinutes,
		Window:             domain.DefaultWorkWindow(domain.Monday),
	}
}

// params разрешенные параметры расчета
type params struct {
	date        time.Time
	duration    *int
	buffer      int
	granularity int
}
