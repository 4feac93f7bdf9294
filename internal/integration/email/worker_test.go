package email_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/domain/entity"
	"github.com/piggybank/backend/internal/integration/email"
	"github.com/piggybank/backend/internal/integration/email/templates"
	"github.com/piggybank/backend/internal/integration/persistence"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

var testCtx = context.Background()

type workerHarness struct {
	db     *gorm.DB
	queue  adapter.EmailQueueRepository
	sender *email.MockEmailSender
	worker *email.Worker
}

func newWorkerHarness(t *testing.T) *workerHarness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.EmailQueueModel{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}

	queue := persistence.NewEmailQueueRepository(db)
	sender := email.NewMockEmailSender()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := email.NewWorker(queue, sender, renderer, email.WorkerConfig{
		PollInterval: time.Second,
		BatchSize:    10,
	}, log)

	return &workerHarness{db: db, queue: queue, sender: sender, worker: worker}
}

func (h *workerHarness) enqueueWelcome(t *testing.T, recipient string) *entity.EmailJob {
	t.Helper()
	job := entity.NewEmailJob(entity.TemplateWelcome, recipient, "Welcome to Piggybank", map[string]interface{}{
		"email": recipient,
	})
	// make the job immediately eligible regardless of clock granularity
	job.ScheduledAt = job.ScheduledAt.Add(-time.Second)
	if err := h.queue.Enqueue(testCtx, job); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	return job
}

func (h *workerHarness) jobStatus(t *testing.T, job *entity.EmailJob) *entity.EmailJob {
	t.Helper()
	var m model.EmailQueueModel
	if err := h.db.First(&m, "id = ?", job.ID).Error; err != nil {
		t.Fatalf("failed to load job: %v", err)
	}
	return m.ToEntity()
}

func TestWorkerSendsWelcomeEmail(t *testing.T) {
	h := newWorkerHarness(t)
	job := h.enqueueWelcome(t, "carol@example.com")

	h.worker.ProcessNow(testCtx)

	if len(h.sender.SentEmails) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(h.sender.SentEmails))
	}
	sent := h.sender.SentEmails[0]
	if sent.To != "carol@example.com" {
		t.Errorf("expected recipient carol@example.com, got %q", sent.To)
	}
	if !strings.Contains(sent.HTML, "carol@example.com") {
		t.Error("expected rendered HTML to mention the recipient")
	}
	if sent.Text == "" {
		t.Error("expected a text alternative")
	}

	stored := h.jobStatus(t, job)
	if stored.Status != entity.EmailStatusSent {
		t.Errorf("expected sent status, got %q", stored.Status)
	}
	if stored.ResendID == "" {
		t.Error("expected provider id to be recorded")
	}
	if stored.ProcessedAt == nil {
		t.Error("expected processed timestamp")
	}
}

func TestWorkerRetriesTemporaryFailures(t *testing.T) {
	h := newWorkerHarness(t)
	job := h.enqueueWelcome(t, "carol@example.com")
	h.sender.SetFailure(nil, false)

	h.worker.ProcessNow(testCtx)

	stored := h.jobStatus(t, job)
	if stored.Status != entity.EmailStatusPending {
		t.Fatalf("expected temporary failure to go back to pending, got %q", stored.Status)
	}
	if stored.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", stored.Attempts)
	}
	if stored.LastError == "" {
		t.Error("expected last error to be recorded")
	}
}

func TestWorkerDropsPermanentFailures(t *testing.T) {
	h := newWorkerHarness(t)
	job := h.enqueueWelcome(t, "carol@example.com")
	h.sender.SetFailure(nil, true)

	h.worker.ProcessNow(testCtx)

	stored := h.jobStatus(t, job)
	if stored.Status != entity.EmailStatusFailed {
		t.Fatalf("expected permanent failure to be terminal, got %q", stored.Status)
	}

	// a failed job is never picked up again
	h.sender.Reset()
	h.worker.ProcessNow(testCtx)
	if len(h.sender.SentEmails) != 0 {
		t.Errorf("expected no retries of a failed job, got %d sends", len(h.sender.SentEmails))
	}
}

func TestWorkerGivesUpAfterMaxAttempts(t *testing.T) {
	h := newWorkerHarness(t)
	job := h.enqueueWelcome(t, "carol@example.com")
	job.MaxAttempts = 1
	if err := h.queue.Update(testCtx, job); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	h.sender.SetFailure(nil, false)

	h.worker.ProcessNow(testCtx)

	stored := h.jobStatus(t, job)
	if stored.Status != entity.EmailStatusFailed {
		t.Fatalf("expected job to fail after exhausting attempts, got %q", stored.Status)
	}
}
