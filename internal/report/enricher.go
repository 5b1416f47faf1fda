package report

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"github.com/teltrip/ocsreport/internal/cache"
	"github.com/teltrip/ocsreport/internal/logger"
	"github.com/teltrip/ocsreport/internal/ocs"
	"github.com/teltrip/ocsreport/internal/types"
)

// enricher resolves the package, one-time cost, and windowed usage totals
// for a single subscriber. It is the unit of partial failure: each step
// fails independently and only leaves its fields absent.
type enricher struct {
	resolver      *ocs.Resolver
	costs         cache.Cache
	log           *logger.Logger
	interval      UsageWindow
	maxWindowDays int
	windowPool    int
	dataTypeCodes map[string]struct{}
}

func (e *enricher) Enrich(ctx context.Context, subscriberID int64) Enrichment {
	enrichment := Enrichment{SubscriberID: subscriberID}

	pkgItems := e.resolver.Resolve(ctx, ocs.OpListPackages, ocs.CallParams{SubscriberID: subscriberID})
	enrichment.Package = packageFromItems(pkgItems)

	if pkg := enrichment.Package; pkg != nil && pkg.TemplateID != 0 {
		if tc := e.templateCost(ctx, pkg.TemplateID); tc != nil {
			enrichment.OneTimeCost = lo.ToPtr(tc.Cost)
			enrichment.CostCurrency = tc.Currency
			if pkg.TemplateName == nil {
				pkg.TemplateName = tc.Name
			}
		}
	}

	e.sumUsage(ctx, subscriberID, &enrichment)
	return enrichment
}

// templateCost resolves the list price for a template id, consulting the
// per-invocation cache first. A given template id resolves to the same cost
// for the lifetime of a report, so concurrent duplicate writes are harmless.
func (e *enricher) templateCost(ctx context.Context, templateID int64) *TemplateCost {
	key := cache.TemplateCostKey(templateID)
	if v, ok := e.costs.Get(ctx, key); ok {
		if tc, ok := v.(*TemplateCost); ok {
			return tc
		}
	}

	items := e.resolver.Resolve(ctx, ocs.OpTemplateCost, ocs.CallParams{TemplateID: templateID})
	tc := templateCostFromItems(templateID, items)
	if tc == nil {
		e.log.Debugw("template cost unresolved", "template_id", templateID)
		return nil
	}
	e.costs.Set(ctx, key, tc, cache.DefaultExpiration)
	return tc
}

// sumUsage fans the window fetches out under a bounded pool and folds the
// per-window results into cumulative totals. Only windows that produced a
// value contribute; a window that failed or came back empty leaves the
// totals as they were.
func (e *enricher) sumUsage(ctx context.Context, subscriberID int64, enrichment *Enrichment) {
	windows := PlanWindows(e.interval.Start, e.interval.End, e.maxWindowDays)
	enrichment.WindowsPlanned = len(windows)
	if len(windows) == 0 {
		return
	}

	results := make([]*WindowResult, len(windows))
	failed := make([]bool, len(windows))

	p := pool.New().WithMaxGoroutines(e.windowPool)
	for i, w := range windows {
		i, w := i, w
		p.Go(func() {
			items, err := e.resolver.ResolveStrict(ctx, ocs.OpUsageOverPeriod, ocs.CallParams{
				SubscriberID: subscriberID,
				From:         types.ToYMD(w.Start),
				To:           types.ToYMD(w.End),
			})
			if err != nil {
				failed[i] = true
				e.log.Debugw("usage window failed",
					"subscriber_id", subscriberID,
					"window", fmt.Sprintf("%s..%s", types.ToYMD(w.Start), types.ToYMD(w.End)),
					"error", err)
				return
			}
			res := windowResultFromItems(items, e.dataTypeCodes)
			results[i] = &res
		})
	}
	p.Wait()

	for i, res := range results {
		if failed[i] {
			enrichment.WindowsFailed++
		}
		if res == nil {
			continue
		}
		if res.Bytes != nil {
			enrichment.TotalBytes = lo.ToPtr(lo.FromPtr(enrichment.TotalBytes) + *res.Bytes)
		}
		if res.SubscriberCost != nil {
			enrichment.TotalSubscriberCost = addDecimal(enrichment.TotalSubscriberCost, *res.SubscriberCost)
		}
		if res.ResellerCost != nil {
			enrichment.TotalResellerCost = addDecimal(enrichment.TotalResellerCost, *res.ResellerCost)
		}
	}
}
