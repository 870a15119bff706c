package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/permit"
)

// deliveryJob carries one pending notification to a gateway attempt.
type deliveryJob struct {
	NotificationID int64
	Recipient      string
	Message        string
}

type worker struct {
	ID         int
	WorkerPool chan chan deliveryJob
	JobChannel chan deliveryJob
	Logger     *slog.Logger
}

func newWorker(id int, workerPool chan chan deliveryJob, logger *slog.Logger) *worker {
	return &worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan deliveryJob),
		Logger:     logger,
	}
}

func (w *worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(deliveryJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker processing delivery", "worker_id", w.ID, "notification_id", job.NotificationID)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Dispatcher orchestrates notification delivery for permit lifecycle
// events: persist a pending record, attempt delivery through the gateway,
// persist the terminal outcome. The attempt happens at most once; a failed
// delivery stays failed.
//
// In inline mode the gateway call runs on the caller's goroutine, bounded
// by the send timeout. In async mode jobs are queued and drained by a
// bounded worker pool, and callers get the pending record back.
type Dispatcher struct {
	repo    Repository
	gateway Gateway
	cfg     internal.NotificationConfig
	logger  *slog.Logger

	jobQueue   chan deliveryJob
	workerPool chan chan deliveryJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewDispatcher(repo Repository, gateway Gateway, cfg internal.NotificationConfig, logger *slog.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	d := &Dispatcher{
		repo:    repo,
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan deliveryJob, queueSize),
		workerPool: make(chan chan deliveryJob, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	if cfg.DispatchMode == internal.DispatchModeAsync {
		d.startWorkerPool()
	}

	return d
}

func (d *Dispatcher) startWorkerPool() {
	d.once.Do(func() {
		for i := 0; i < d.maxWorkers; i++ {
			w := newWorker(i, d.workerPool, d.logger)
			w.Start(d.ctx, &d.wg, d.processDelivery)
		}

		d.wg.Add(1)
		go d.dispatchLoop()

		d.logger.Info("notification worker pool started",
			"max_workers", d.maxWorkers,
			"queue_size", cap(d.jobQueue))
	})
}

func (d *Dispatcher) dispatchLoop() {
	defer d.wg.Done()

	for {
		select {
		case job := <-d.jobQueue:
			select {
			case jobChannel := <-d.workerPool:
				jobChannel <- job
			case <-d.ctx.Done():
				return
			}
		case <-d.ctx.Done():
			return
		}
	}
}

// Close stops the worker pool and waits for in-flight deliveries.
func (d *Dispatcher) Close() {
	d.cancel()
	d.wg.Wait()
}

// NotifyHR records and attempts the submission alert to the configured HR
// contact. Exactly one record is written per call, whatever the gateway
// says afterwards.
func (d *Dispatcher) NotifyHR(ctx context.Context, p *permit.Permit, emp *employee.Employee) (*Notification, error) {
	n := &Notification{
		PermitID:       p.ID,
		RecipientPhone: d.cfg.HRPhone,
		Type:           KindHRNotification,
		Message:        HRMessage(p, emp, d.cfg.ReviewBaseURL),
		Status:         StatusPending,
	}
	return d.dispatch(ctx, n)
}

// NotifyEmployee records and attempts the decision notice to the permit
// owner, falling back to the configured default recipient when the
// employee has no phone on file.
func (d *Dispatcher) NotifyEmployee(ctx context.Context, p *permit.Permit, emp *employee.Employee) (*Notification, error) {
	recipient := emp.ContactPhone()
	if recipient == "" {
		recipient = d.cfg.DefaultRecipient
	}

	n := &Notification{
		PermitID:       p.ID,
		RecipientPhone: recipient,
		Type:           KindEmployeeNotification,
		Message:        EmployeeMessage(p),
		Status:         StatusPending,
	}
	return d.dispatch(ctx, n)
}

func (d *Dispatcher) dispatch(ctx context.Context, n *Notification) (*Notification, error) {
	if err := d.repo.Create(n); err != nil {
		d.logger.Error("failed to persist notification",
			"permit_id", n.PermitID,
			"type", n.Type,
			"error", err)
		return nil, err
	}

	job := deliveryJob{
		NotificationID: n.ID,
		Recipient:      n.RecipientPhone,
		Message:        n.Message,
	}

	if d.cfg.DispatchMode == internal.DispatchModeAsync {
		select {
		case d.jobQueue <- job:
		default:
			// Queue full: record the failure rather than block the caller.
			d.logger.Error("notification queue full, dropping delivery",
				"notification_id", n.ID,
				"permit_id", n.PermitID)
			d.recordOutcome(n, DeliveryResult{Delivered: false, Reason: "delivery queue full"})
		}
		return n, nil
	}

	d.attempt(ctx, n, job)
	return n, nil
}

// processDelivery is the worker-side attempt; it reports the outcome
// against the stored record only.
func (d *Dispatcher) processDelivery(job deliveryJob) {
	ctx, cancel := internal.WithTimeout(d.ctx, d.cfg.SendTimeout)
	defer cancel()

	result := d.gateway.Send(ctx, job.Recipient, job.Message)
	d.record(job.NotificationID, job.Recipient, result)
}

// attempt runs the gateway call inline and mutates n with the outcome so
// the caller sees the final record.
func (d *Dispatcher) attempt(ctx context.Context, n *Notification, job deliveryJob) {
	sendCtx, cancel := internal.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	result := d.gateway.Send(sendCtx, job.Recipient, job.Message)
	d.recordOutcome(n, result)
}

func (d *Dispatcher) record(notificationID int64, recipient string, result DeliveryResult) {
	if result.Delivered {
		sentAt := time.Now()
		if err := d.repo.MarkSent(notificationID, sentAt); err != nil {
			d.logger.Error("failed to mark notification sent", "notification_id", notificationID, "error", err)
			return
		}
		d.logger.Info("whatsapp message sent",
			"notification_id", notificationID,
			"recipient", recipient)
		return
	}

	if err := d.repo.MarkFailed(notificationID, result.Reason); err != nil {
		d.logger.Error("failed to mark notification failed", "notification_id", notificationID, "error", err)
		return
	}
	d.logger.Error("whatsapp message failed",
		"notification_id", notificationID,
		"recipient", recipient,
		"reason", result.Reason)
}

func (d *Dispatcher) recordOutcome(n *Notification, result DeliveryResult) {
	d.record(n.ID, n.RecipientPhone, result)

	if result.Delivered {
		now := time.Now()
		n.Status = StatusSent
		n.SentAt = &now
	} else {
		reason := result.Reason
		n.Status = StatusFailed
		n.ErrorMessage = &reason
	}
}
