package workers

import (
	"context"
	"sync"
	"time"

	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/models"
	"chatroom_backend/internal/services"
)

const inactivityWorkerName = "inactivity"

// SweepResult - итог одного прохода
type SweepResult struct {
	Checked int
	Evicted int
	Failed  int
}

// InactivityWorker периодически выселяет участников, которые не подавали
// признаков жизни дольше threshold, и объявляет об их уходе.
type InactivityWorker struct {
	participants services.ParticipantService
	interval     time.Duration
	threshold    time.Duration
	now          services.Clock

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewInactivityWorker(participants services.ParticipantService, interval, threshold time.Duration, clock services.Clock) *InactivityWorker {
	if clock == nil {
		clock = time.Now
	}
	return &InactivityWorker{
		participants: participants,
		interval:     interval,
		threshold:    threshold,
		now:          clock,
	}
}

// Start запускает фоновый цикл. Повторный вызов без Stop ничего не делает.
func (w *InactivityWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(ctx, w.done)

	logger.Info("Inactivity worker started", "interval", w.interval, "threshold", w.threshold)
}

// Stop останавливает цикл и ждет завершения текущего прохода
func (w *InactivityWorker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *InactivityWorker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Inactivity worker stopped")
			return
		case <-ticker.C:
			result := w.Sweep(ctx)
			if result.Evicted > 0 || result.Failed > 0 {
				logger.Info("Inactivity sweep finished",
					"checked", result.Checked,
					"evicted", result.Evicted,
					"failed", result.Failed,
				)
			}
		}
	}
}

// Sweep выполняет один проход синхронно.
// Ошибка чтения списка прерывает проход, ошибки по отдельным участникам
// логируются и проход продолжается.
func (w *InactivityWorker) Sweep(ctx context.Context) SweepResult {
	var result SweepResult

	participants, err := w.participants.List(ctx)
	if err != nil {
		logger.WorkerLog(inactivityWorkerName, "list", err)
		return result
	}

	cutoff := models.IdleCutoff(w.now(), w.threshold)
	for _, p := range participants {
		result.Checked++
		if !p.IdleSince(cutoff) {
			continue
		}

		evicted, err := w.participants.Evict(ctx, p.Name, cutoff)
		if err != nil {
			result.Failed++
			logger.WorkerLog(inactivityWorkerName, "evict", err, "name", p.Name)
			if evicted {
				result.Evicted++
			}
			continue
		}
		if evicted {
			result.Evicted++
			logger.Debug("Participant evicted", "name", p.Name)
		}
	}
	return result
}
