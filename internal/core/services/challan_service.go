package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	"github.com/SscSPs/fee_management_app/internal/core/billing"
	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/SscSPs/fee_management_app/internal/core/ports"
	portsrepo "github.com/SscSPs/fee_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/dto"
	"github.com/SscSPs/fee_management_app/internal/utils"
)

const (
	// DefaultDisplayName is shown to the bank when a consumer has no named profile.
	DefaultDisplayName = "Student"
	// DefaultBatchSize is how many consumers a generation run reads at a time.
	DefaultBatchSize = 100
	// SearchLimit caps the back-office challan search.
	SearchLimit = 20

	tranTimestampLayout = "20060102150405"
)

// GenerationError is the single failure of a bulk generation run. Nothing from
// the failed run is stored.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return "bulk challan generation failed: " + e.Cause.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// challanService implements the ChallanSvcFacade interface
type challanService struct {
	BaseService
	consumerRepo   portsrepo.ConsumerReader
	challanRepo    portsrepo.ChallanRepositoryFacade
	generationRepo portsrepo.GenerationUnitBeginner
	publisher      ports.EventPublisher
	nextNumber     billing.NumberSource
	genOpts        billing.Options
	batchSize      int
	now            func() time.Time
}

// ChallanServiceOption is a functional option for configuring the challan service
type ChallanServiceOption func(*challanService)

// WithEventPublisher publishes billing events after successful commits.
func WithEventPublisher(p ports.EventPublisher) ChallanServiceOption {
	return func(s *challanService) {
		s.publisher = p
	}
}

// WithNumberSource replaces the secure challan number source.
func WithNumberSource(next billing.NumberSource) ChallanServiceOption {
	return func(s *challanService) {
		s.nextNumber = next
	}
}

// WithGeneratorOptions sets the due day and challan number retry cap.
func WithGeneratorOptions(opts billing.Options) ChallanServiceOption {
	return func(s *challanService) {
		s.genOpts = opts
	}
}

// WithBatchSize sets how many consumers are read per page during generation.
func WithBatchSize(n int) ChallanServiceOption {
	return func(s *challanService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ChallanServiceOption {
	return func(s *challanService) {
		s.now = now
	}
}

// NewChallanService creates a new challan service with the provided options
func NewChallanService(
	consumerRepo portsrepo.ConsumerReader,
	challanRepo portsrepo.ChallanRepositoryFacade,
	generationRepo portsrepo.GenerationUnitBeginner,
	options ...ChallanServiceOption,
) portssvc.ChallanSvcFacade {
	svc := &challanService{
		consumerRepo:   consumerRepo,
		challanRepo:    challanRepo,
		generationRepo: generationRepo,
		nextNumber:     secureChallanNumber,
		batchSize:      DefaultBatchSize,
		now:            time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func secureChallanNumber() (string, error) {
	return utils.GenerateRandomDigits(domain.ChallanNoLength)
}

// findBillableChallan resolves the consumer and the challan a bank should act on.
func (s *challanService) findBillableChallan(ctx context.Context, consumerNumber string) (*domain.Consumer, *domain.Challan, error) {
	consumer, err := s.consumerRepo.FindActiveConsumerByNumber(ctx, consumerNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, domain.ErrConsumerNotFound
		}
		s.LogError(ctx, err, "Failed to find consumer", slog.String("consumer_number", consumerNumber))
		return nil, nil, err
	}

	challan, err := s.challanRepo.FindLatestUnpaidChallan(ctx, consumer.ConsumerID)
	if err == nil {
		return consumer, challan, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find unpaid challan", slog.Int64("consumer_id", consumer.ConsumerID))
		return nil, nil, err
	}

	_, err = s.challanRepo.FindPaidChallanInMonth(ctx, consumer.ConsumerID, s.now())
	switch {
	case err == nil:
		return consumer, nil, domain.ErrAlreadyPaidForMonth
	case errors.Is(err, apperrors.ErrNotFound):
		return consumer, nil, domain.ErrNoUnpaidChallan
	default:
		s.LogError(ctx, err, "Failed to check paid challans", slog.Int64("consumer_id", consumer.ConsumerID))
		return nil, nil, err
	}
}

func (s *challanService) InquireBill(ctx context.Context, consumerNumber string) (*domain.BillInquiry, error) {
	consumer, challan, err := s.findBillableChallan(ctx, consumerNumber)
	if err != nil {
		return nil, err
	}

	name := DefaultDisplayName
	profile, err := s.consumerRepo.FindActiveProfile(ctx, consumer.ConsumerID)
	switch {
	case err == nil:
		if strings.TrimSpace(profile.Name) != "" {
			name = profile.Name
		}
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		s.LogError(ctx, err, "Failed to load profile", slog.Int64("consumer_id", consumer.ConsumerID))
		return nil, err
	}

	s.LogInfo(ctx, "Bill inquiry answered",
		slog.String("consumer_number", consumerNumber),
		slog.String("challan_no", challan.ChallanNo))
	return &domain.BillInquiry{Consumer: *consumer, DisplayName: name, Challan: *challan}, nil
}

func (s *challanService) PayBill(ctx context.Context, req dto.BillPaymentRequest) (*domain.Challan, error) {
	paidAt, err := time.ParseInLocation(tranTimestampLayout, req.TranDate+req.TranTime, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tran_date/tran_time: %v", apperrors.ErrValidation, err)
	}
	if err := domain.ValidateAmount(req.TransactionAmount); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	consumer, challan, err := s.findBillableChallan(ctx, req.ConsumerNumber)
	if err != nil {
		return nil, err
	}

	err = challan.ApplyPayment(domain.Payment{
		TranAuthID:   req.TranAuthID,
		BankMnemonic: req.BankMnemonic,
		PaidAt:       paidAt,
		Amount:       req.TransactionAmount,
		Reserved:     req.Reserved,
	})
	if err != nil {
		return nil, err
	}

	if err := s.challanRepo.MarkChallanPaid(ctx, *challan); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogWarn(ctx, "Challan was settled concurrently", slog.String("challan_no", challan.ChallanNo))
			return nil, fmt.Errorf("%w: %w", domain.ErrAlreadyPaidForMonth, err)
		}
		s.LogError(ctx, err, "Failed to record payment", slog.String("challan_no", challan.ChallanNo))
		return nil, err
	}

	s.LogInfo(ctx, "Bill payment recorded",
		slog.String("consumer_number", consumer.ConsumerNumber),
		slog.String("challan_no", challan.ChallanNo),
		slog.String("tran_auth_id", challan.TranAuthID),
		slog.String("bank_mnemonic", challan.BankMnemonic))

	s.publish(ctx, ports.EventChallanPaid, domain.ChallanPaidEvent{
		ChallanNo:         challan.ChallanNo,
		ConsumerNumber:    consumer.ConsumerNumber,
		TranAuthID:        challan.TranAuthID,
		BankMnemonic:      challan.BankMnemonic,
		TransactionAmount: req.TransactionAmount,
		AmountBase:        challan.AmountBase,
		DatePaid:          challan.DatePaid.Format(time.DateOnly),
		OccurredAt:        s.now().UTC(),
	})
	return challan, nil
}

func (s *challanService) GenerateBulkChallans(ctx context.Context) (*domain.GenerationReport, error) {
	now := s.now()
	s.LogInfo(ctx, "Bulk challan generation started", slog.String("billing_month", now.Format("January 2006")))

	report, err := s.generate(ctx, now)
	if err != nil {
		genErr := &GenerationError{Cause: err}
		s.LogError(ctx, err, "Bulk challan generation failed")
		return nil, genErr
	}

	s.LogInfo(ctx, "Bulk challan generation completed",
		slog.String("billing_month", report.BillingMonth),
		slog.Int("generated", report.Generated),
		slog.Int("skipped", report.Skipped))
	return report, nil
}

// generate runs one cycle inside a single generation unit. Every exit path
// before Commit rolls back, so a failure stores nothing.
func (s *challanService) generate(ctx context.Context, now time.Time) (*domain.GenerationReport, error) {
	unit, err := s.generationRepo.BeginGeneration(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := unit.Rollback(ctx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back generation run")
		}
	}()

	gen := billing.NewGenerator(unit, unit, unit, s.nextNumber, s.genOpts)
	run := gen.NewRun(now)

	var afterID int64
	for {
		batch, err := unit.ListActiveConsumerSnapshots(ctx, afterID, s.batchSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		if err := run.Process(ctx, batch); err != nil {
			return nil, err
		}
		afterID = batch[len(batch)-1].Consumer.ConsumerID
		s.LogDebug(ctx, "Generation batch processed",
			slog.Int("batch_size", len(batch)),
			slog.Int64("last_consumer_id", afterID),
			slog.Int("challans_so_far", len(run.Challans())))
		if len(batch) < s.batchSize {
			break
		}
	}

	if err := unit.InsertChallans(ctx, run.Challans()); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	report := run.Report()
	s.publish(ctx, ports.EventChallansGenerated, domain.ChallansGeneratedEvent{
		BillingMonth: report.BillingMonth,
		DueDate:      run.DueDate().Format(time.DateOnly),
		Generated:    report.Generated,
		Skipped:      report.Skipped,
		SkipReasons:  report.SkipReasons,
		Message:      report.Message,
		OccurredAt:   s.now().UTC(),
	})
	return report, nil
}

// publish never fails the caller; the change it announces is already committed.
func (s *challanService) publish(ctx context.Context, routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.LogError(ctx, err, "Failed to publish billing event", slog.String("routing_key", routingKey))
	}
}

func (s *challanService) SearchChallans(ctx context.Context, query string) ([]domain.ChallanListItem, error) {
	items, err := s.challanRepo.SearchChallans(ctx, strings.TrimSpace(query), SearchLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to search challans", slog.String("query", query))
		return nil, err
	}
	return items, nil
}

func (s *challanService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.challanRepo.GetDashboardStats(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load challan stats")
		return nil, err
	}
	consumers, err := s.consumerRepo.CountConsumers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count consumers")
		return nil, err
	}
	stats.TotalConsumers = consumers
	return stats, nil
}
