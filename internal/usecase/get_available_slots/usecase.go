package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	windowRepo      WorkWindowRepository
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	txManager       TxManager
	metrics         MetricsRecorder
	defaults        Defaults
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	windowRepo WorkWindowRepository,
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	txManager TxManager,
	metrics MetricsRecorder,
	defaults Defaults,
	logger Logger,
) *UseCase {
	return &UseCase{
		windowRepo:      windowRepo,
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		metrics:         metrics,
		defaults:        defaults,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных (до любого обращения к хранилищу)
	p, err := validateRequest(req, uc.defaults)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		uc.observe(metrics.OutcomeInvalid, "", 0)
		return nil, err
	}

	weekday := domain.WeekdayOf(p.date)
	uc.logger.Info("GetAvailableSlots: date=%s, weekday=%d, services=%v",
		p.date.Format(domain.DateFormat), weekday, req.ServiceIDs)

	// 2. Читаем окна, записи дня и длительности услуг в одном снимке данных
	var (
		configured   []*domain.WorkWindow
		appointments []*domain.Appointment
		durations    map[int64]int
	)

	err = uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error

		configured, err = uc.windowRepo.GetByWeekday(ctx, weekday)
		if err != nil {
			return fmt.Errorf("get work windows: %w", err)
		}

		appointments, err = uc.appointmentRepo.ListPendingInRange(ctx, domain.DayStart(p.date), domain.DayEnd(p.date))
		if err != nil {
			return fmt.Errorf("list appointments: %w", err)
		}

		durations, err = uc.catalogRepo.GetDurations(ctx, collectServiceIDs(appointments, req.ServiceIDs))
		if err != nil {
			return fmt.Errorf("get service durations: %w", err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: storage read failed for date=%s: %v", p.date.Format(domain.DateFormat), err)
		uc.observe(metrics.OutcomeUnavailable, "", 0)
		return nil, fmt.Errorf("%w: %v", ErrComputationUnavailable, err)
	}

	// 3. Длительность по услугам запроса, если не задана явно
	var duration int
	if p.duration != nil {
		duration = *p.duration
	} else {
		duration = domain.TotalDuration(req.ServiceIDs, durations)
		uc.logger.Info("GetAvailableSlots: duration=%d computed from services %v", duration, req.ServiceIDs)
	}

	// 4. Окна дня (или окно по умолчанию) и занятые интервалы
	fallback := uc.defaults.Window
	fallback.Weekday = weekday
	windows, usedFallback := resolveWindows(configured, fallback)

	occupied := occupiedIntervals(appointments, durations, p.buffer)

	// 5. Перебор кандидатов
	slots := formatSlots(scanSlots(p.date, windows, occupied, duration, p.buffer, p.granularity))

	windowsLabel := "configured"
	if usedFallback {
		windowsLabel = "fallback"
	}
	uc.observe(metrics.OutcomeOK, windowsLabel, len(slots))

	uc.logger.Info("GetAvailableSlots: %d slots for date=%s (windows=%d %s, occupied=%d, duration=%d, buffer=%d, granularity=%d)",
		len(slots), p.date.Format(domain.DateFormat), len(windows), windowsLabel, len(occupied), duration, p.buffer, p.granularity)

	return &Response{
		Date:               p.date,
		DurationMinutes:    duration,
		BufferMinutes:      p.buffer,
		GranularityMinutes: p.granularity,
		FallbackWindow:     usedFallback,
		Slots:              slots,
	}, nil
}

func (uc *UseCase) observe(outcome, windows string, slots int) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveAvailability(outcome, windows, slots)
}
