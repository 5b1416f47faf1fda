package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/teltrip/ocsreport/internal/cache"
	"github.com/teltrip/ocsreport/internal/config"
	ierr "github.com/teltrip/ocsreport/internal/errors"
	"github.com/teltrip/ocsreport/internal/logger"
	"github.com/teltrip/ocsreport/internal/ocs"
	"github.com/teltrip/ocsreport/internal/types"
)

// Service is the aggregation orchestrator: it enumerates an account's
// subscribers, fans the enricher out under a bounded pool, and returns one
// denormalized row per subscriber in upstream listing order.
type Service struct {
	resolver *ocs.Resolver
	cfg      *config.Configuration
	log      *logger.Logger

	// now is injectable so window planning is deterministic in tests.
	now func() time.Time
}

func NewService(resolver *ocs.Resolver, cfg *config.Configuration, log *logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// BuildReport produces the full report for an account. It fails only when
// the subscriber listing itself cannot be obtained; every failure below that
// is contained to the affected subscriber or window and surfaces as null
// fields on the row.
func (s *Service) BuildReport(ctx context.Context, accountID int64) ([]AggregateRow, error) {
	if accountID == 0 {
		accountID = s.cfg.Report.DefaultAccountID
	}
	if accountID == 0 {
		return nil, ierr.NewError("account id is required").
			WithHint("Provide an account id or set report.defaultaccountid").
			Mark(ierr.ErrValidation)
	}

	items, err := s.resolver.ResolveStrict(ctx, ocs.OpListSubscribers, ocs.CallParams{AccountID: accountID})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("could not list subscribers for account %d", accountID).
			Mark(ierr.ErrReport)
	}

	rows := make([]AggregateRow, len(items))
	for i, it := range items {
		rows[i] = AggregateRow{Subscriber: subscriberFromItem(it)}
	}

	start := s.cfg.Report.RangeStartDate()
	end := types.DateOnly(s.now())
	enr := &enricher{
		resolver:      s.resolver,
		costs:         cache.NewInMemoryCache(),
		log:           s.log,
		interval:      UsageWindow{Start: start, End: end},
		maxWindowDays: s.cfg.Report.MaxWindowDays,
		windowPool:    s.cfg.Report.WindowPoolSize,
		dataTypeCodes: dataTypeCodeSet(s.cfg.Report.DataTypeCodes),
	}

	s.log.Infow("building report",
		"account_id", accountID,
		"subscribers", len(rows),
		"range", fmt.Sprintf("%s..%s", types.ToYMD(start), types.ToYMD(end)))

	p := pool.New().WithMaxGoroutines(s.cfg.Report.WorkerPoolSize)
	for i := range rows {
		if rows[i].SubscriberID == 0 {
			// no usable identity, keep the base row as-is
			continue
		}
		i := i
		p.Go(func() {
			rows[i].apply(enr.Enrich(ctx, rows[i].SubscriberID))
		})
	}
	p.Wait()

	return rows, nil
}

// ListAccounts returns the accounts visible to the configured credentials,
// normalized for an account picker. If no listing variant yields anything it
// falls back to a synthetic entry for the configured default account, named
// after its first subscriber's account display name.
func (s *Service) ListAccounts(ctx context.Context) ([]AccountSummary, error) {
	items := s.resolver.Resolve(ctx, ocs.OpListAccounts, ocs.CallParams{})

	accounts := make([]AccountSummary, 0, len(items))
	for _, it := range items {
		id, ok := it.Int64("accountId", "accountid", "id")
		if !ok || id == 0 {
			continue
		}
		name, ok := it.String("accountName", "accountname", "name", "label")
		if !ok {
			name = fmt.Sprintf("Account %d", id)
		}
		accounts = append(accounts, AccountSummary{ID: id, Name: name})
	}
	if len(accounts) > 0 {
		return accounts, nil
	}

	if defaultID := s.cfg.Report.DefaultAccountID; defaultID != 0 {
		summary := AccountSummary{ID: defaultID, Name: fmt.Sprintf("Account %d", defaultID)}
		subs := s.resolver.Resolve(ctx, ocs.OpListSubscribers, ocs.CallParams{AccountID: defaultID})
		if len(subs) > 0 {
			if name, ok := subs[0].String("account", "accountName", "accountname"); ok {
				summary.Name = name
			}
		}
		return []AccountSummary{summary}, nil
	}

	return accounts, nil
}

func dataTypeCodeSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}
