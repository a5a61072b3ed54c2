// Package billing holds the bulk challan generation algorithm. It works on
// plain data and small lookup capabilities so a run can be driven from a
// database transaction or from memory.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrChallanNumberExhausted is returned when no unused challan number was
// found within the configured number of attempts.
var ErrChallanNumberExhausted = errors.New("could not generate a unique challan number")

const (
	DefaultDueDay      = 20
	DefaultMaxAttempts = 10

	billingMonthLayout = "January 2006"
	dueDateLayout      = "2006-01-02"
)

// FeeStructureFinder returns the active fee structures matching a filter.
type FeeStructureFinder interface {
	FindActiveFeeStructures(ctx context.Context, filter domain.FeeStructureFilter) ([]domain.FeeFundStructure, error)
}

// CategoryTitleResolver returns the titles of the given fee categories.
type CategoryTitleResolver interface {
	CategoryTitles(ctx context.Context, categoryIDs []int64) ([]string, error)
}

// ChallanNumberChecker reports whether a challan number is already taken by an
// active challan.
type ChallanNumberChecker interface {
	ChallanNumberExists(ctx context.Context, challanNo string) (bool, error)
}

// NumberSource produces challan number candidates.
type NumberSource func() (string, error)

// Options tunes a Generator. Zero values select the defaults.
type Options struct {
	DueDay      int
	MaxAttempts int
}

// Generator creates challans for consumers, one run per billing cycle.
type Generator struct {
	structures FeeStructureFinder
	categories CategoryTitleResolver
	numbers    ChallanNumberChecker
	nextNumber NumberSource
	dueDay     int
	maxAttempt int
}

// NewGenerator wires a Generator. nextNumber is usually a secure 20 digit source.
func NewGenerator(structures FeeStructureFinder, categories CategoryTitleResolver, numbers ChallanNumberChecker, nextNumber NumberSource, opts Options) *Generator {
	if opts.DueDay < 1 || opts.DueDay > 28 {
		opts.DueDay = DefaultDueDay
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	return &Generator{
		structures: structures,
		categories: categories,
		numbers:    numbers,
		nextNumber: nextNumber,
		dueDay:     opts.DueDay,
		maxAttempt: opts.MaxAttempts,
	}
}

// Run is one generation pass. Consumers are fed in batches with Process and
// the created challans are collected until the caller persists them.
type Run struct {
	gen          *Generator
	dueDate      time.Time
	billingMonth string
	report       *domain.GenerationReport
	challans     []domain.Challan
	issued       map[string]struct{}
}

// NewRun starts a run for the billing cycle containing now. The due date is
// dueDay of that month.
func (g *Generator) NewRun(now time.Time) *Run {
	month := now.Format(billingMonthLayout)
	return &Run{
		gen:          g,
		dueDate:      time.Date(now.Year(), now.Month(), g.dueDay, 0, 0, 0, 0, time.UTC),
		billingMonth: month,
		report:       domain.NewGenerationReport(month),
		issued:       make(map[string]struct{}),
	}
}

// DueDate is the due date given to every challan in this run.
func (r *Run) DueDate() time.Time { return r.dueDate }

// BillingMonth is the "Month Year" label of this run.
func (r *Run) BillingMonth() string { return r.billingMonth }

// Challans returns the challans created so far.
func (r *Run) Challans() []domain.Challan { return r.challans }

// Process evaluates each consumer in the batch. Ineligible consumers are
// recorded as skips; any other error aborts the run.
func (r *Run) Process(ctx context.Context, batch []domain.ConsumerSnapshot) error {
	for _, snap := range batch {
		if err := r.processOne(ctx, snap); err != nil {
			return err
		}
	}
	return nil
}

func (r *Run) processOne(ctx context.Context, snap domain.ConsumerSnapshot) error {
	c := snap.Consumer
	prefix := fmt.Sprintf("Consumer #%d (%s): ", c.ConsumerID, c.ConsumerNumber)

	profile := snap.Profile
	if profile == nil {
		r.report.RecordSkip(domain.SkipNoProfile, prefix+"No active profile found")
		return nil
	}
	if len(profile.FeeFundCategoryIDs) == 0 {
		r.report.RecordSkip(domain.SkipNoCategories, prefix+"No fee categories assigned")
		return nil
	}
	if snap.Institution == nil {
		r.report.RecordSkip(domain.SkipNoInstitution, prefix+"No institution linked")
		return nil
	}

	levelID := snap.Institution.LevelID
	filter := domain.FeeStructureFilter{
		CategoryIDs: profile.FeeFundCategoryIDs,
		RegionID:    c.RegionID,
		LevelID:     &levelID,
	}
	structures, err := r.gen.structures.FindActiveFeeStructures(ctx, filter)
	if err != nil {
		return fmt.Errorf("finding fee structures for consumer %d: %w", c.ConsumerID, err)
	}
	if len(structures) == 0 {
		r.report.RecordSkip(domain.SkipNoFeeStructure, fmt.Sprintf("%sNo fee structure found (region_id: %s, level_id: %d, categories: %s)",
			prefix, optionalID(c.RegionID), levelID, joinIDs(profile.FeeFundCategoryIDs)))
		return nil
	}

	amountBase := decimal.Zero
	for _, s := range structures {
		amountBase = amountBase.Add(s.Total)
	}
	if err := domain.ValidateAmount(amountBase); err != nil {
		return fmt.Errorf("consumer %d: %w", c.ConsumerID, err)
	}

	titles, err := r.gen.categories.CategoryTitles(ctx, profile.FeeFundCategoryIDs)
	if err != nil {
		return fmt.Errorf("resolving category titles for consumer %d: %w", c.ConsumerID, err)
	}

	feeType := c.ConsumerType.FeeType()
	challanNo, err := r.uniqueChallanNo(ctx)
	if err != nil {
		return err
	}

	r.challans = append(r.challans, domain.Challan{
		ConsumerID:          c.ConsumerID,
		ChallanNo:           challanNo,
		Status:              domain.ChallanUnpaid,
		DueDate:             r.dueDate,
		AmountBase:          amountBase,
		AmountArrears:       decimal.Zero,
		AmountWithinDueDate: amountBase,
		AmountAfterDueDate:  amountBase,
		FeeType:             feeType,
		Reserved:            r.remarks(c, profile, titles, feeType, amountBase),
		IsActive:            true,
	})
	r.report.Generated++
	return nil
}

func (r *Run) remarks(c domain.Consumer, p *domain.Profile, titles []string, feeType domain.FeeType, amount decimal.Decimal) string {
	parts := []string{
		"Bulk Challan",
		r.billingMonth,
		"Consumer: " + c.ConsumerNumber,
		"Type: " + string(c.ConsumerType),
		"Name: " + p.Name,
		"Region: " + p.RegionName,
		"Level: " + p.InstitutionLevel,
		"Categories: " + strings.Join(titles, ", "),
		"Fee Type: " + string(feeType),
		"Base Amount: " + amount.StringFixed(2),
		"Due Date: " + r.dueDate.Format(dueDateLayout),
	}
	return domain.TruncateReserved(strings.Join(parts, " | "))
}

// uniqueChallanNo draws candidates until one is unused both in storage and in
// this run.
func (r *Run) uniqueChallanNo(ctx context.Context) (string, error) {
	for attempt := 0; attempt < r.gen.maxAttempt; attempt++ {
		candidate, err := r.gen.nextNumber()
		if err != nil {
			return "", fmt.Errorf("drawing challan number: %w", err)
		}
		if _, taken := r.issued[candidate]; taken {
			continue
		}
		exists, err := r.gen.numbers.ChallanNumberExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking challan number: %w", err)
		}
		if exists {
			continue
		}
		r.issued[candidate] = struct{}{}
		return candidate, nil
	}
	return "", fmt.Errorf("%w after %d attempts", ErrChallanNumberExhausted, r.gen.maxAttempt)
}

// Report finalises the run summary with a contextual message.
func (r *Run) Report() *domain.GenerationReport {
	rep := r.report
	switch {
	case rep.Generated == 0 && rep.Skipped == 0:
		rep.Message = fmt.Sprintf("No active consumers found for %s.", r.billingMonth)
	case rep.Generated == 0:
		rep.Message = fmt.Sprintf("No challans generated: %d consumers skipped (missing fee structure or profile) for %s.", rep.Skipped, r.billingMonth)
	default:
		rep.Message = fmt.Sprintf("%d challans generated, %d skipped for %s.", rep.Generated, rep.Skipped, r.billingMonth)
	}
	return rep
}

// Generate runs a whole cycle over an in-memory consumer snapshot.
func (g *Generator) Generate(ctx context.Context, consumers []domain.ConsumerSnapshot, now time.Time) (*domain.GenerationReport, []domain.Challan, error) {
	run := g.NewRun(now)
	if err := run.Process(ctx, consumers); err != nil {
		return nil, nil, err
	}
	return run.Report(), run.Challans(), nil
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func joinIDs(ids []int64) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(s, ",")
}
