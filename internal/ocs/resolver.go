package ocs

import (
	"context"

	"github.com/teltrip/ocsreport/internal/logger"
)

// LogicalOp is an upstream operation as the engine understands it,
// independent of what any one tenant calls it on the wire.
type LogicalOp string

const (
	OpListSubscribers LogicalOp = "list_subscribers"
	OpListPackages    LogicalOp = "list_packages"
	OpUsageOverPeriod LogicalOp = "usage_over_period"
	OpTemplateCost    LogicalOp = "template_cost"
	OpListAccounts    LogicalOp = "list_accounts"
)

// CallParams carries every parameter a variant's body builder may need.
// Unused fields are simply ignored by the builder.
type CallParams struct {
	AccountID    int64
	SubscriberID int64
	TemplateID   int64
	ResellerID   int64
	From         string
	To           string
}

// Variant is one known tenant convention for a logical operation: the wire
// operation name, a request body builder, and the path to the result list
// inside the response.
type Variant struct {
	Operation string
	Body      func(p CallParams) map[string]any
	Path      []string
}

// Resolver shields the engine from tenant heterogeneity. The upstream
// integration guide does not fix operation or field names, so for each
// logical operation the resolver tries an ordered list of known variants
// until one yields a non-empty item list. A variant that errors counts as
// "no result" and the next variant runs.
type Resolver struct {
	client   Client
	log      *logger.Logger
	variants map[LogicalOp][]Variant
}

// NewResolver creates a resolver with the default variant catalogue.
func NewResolver(client Client, log *logger.Logger) *Resolver {
	return &Resolver{
		client:   client,
		log:      log,
		variants: DefaultVariants(),
	}
}

// NewResolverWithVariants creates a resolver with a custom variant
// catalogue, e.g. a tenant-specific override.
func NewResolverWithVariants(client Client, log *logger.Logger, variants map[LogicalOp][]Variant) *Resolver {
	return &Resolver{
		client:   client,
		log:      log,
		variants: variants,
	}
}

// Resolve tries the operation's variants in order and returns the first
// non-empty item list. It never fails: if no variant produces items the
// result is empty.
func (r *Resolver) Resolve(ctx context.Context, op LogicalOp, p CallParams) []Item {
	items, _ := r.resolve(ctx, op, p)
	return items
}

// ResolveStrict behaves like Resolve but reports an error when every single
// variant failed at the gateway. A variant that succeeded with an empty
// result suppresses the error: the upstream answered, there is just no data.
func (r *Resolver) ResolveStrict(ctx context.Context, op LogicalOp, p CallParams) ([]Item, error) {
	return r.resolve(ctx, op, p)
}

func (r *Resolver) resolve(ctx context.Context, op LogicalOp, p CallParams) ([]Item, error) {
	variants := r.variants[op]
	var firstErr error
	failed := 0

	for _, v := range variants {
		resp, err := r.client.Call(ctx, v.Operation, v.Body(p))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			failed++
			r.log.Debugw("ocs variant failed",
				"logical_op", op,
				"operation", v.Operation,
				"error", err)
			continue
		}
		if resp.Empty {
			continue
		}
		if items := extract(resp.Data, v.Path); len(items) > 0 {
			return items, nil
		}
	}

	if len(variants) > 0 && failed == len(variants) {
		return nil, firstErr
	}
	return nil, nil
}

// extract walks the path into the decoded response. A terminal list becomes
// the item list; a terminal object becomes a single-item list, which is how
// tenants returning one aggregate object per period are handled.
func extract(data map[string]any, path []string) []Item {
	var cur any = data
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil
		}
	}

	switch v := cur.(type) {
	case []any:
		items := make([]Item, 0, len(v))
		for _, el := range v {
			if m, ok := el.(map[string]any); ok {
				items = append(items, Item(m))
			}
		}
		return items
	case []map[string]any:
		items := make([]Item, 0, len(v))
		for _, m := range v {
			items = append(items, Item(m))
		}
		return items
	case map[string]any:
		if len(v) == 0 {
			return nil
		}
		return []Item{Item(v)}
	}
	return nil
}
