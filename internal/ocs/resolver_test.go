package ocs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	ierr "github.com/teltrip/ocsreport/internal/errors"
	"github.com/teltrip/ocsreport/internal/logger"
	"github.com/teltrip/ocsreport/internal/ocs"
	"github.com/teltrip/ocsreport/internal/testutil"
)

func testVariants() map[ocs.LogicalOp][]ocs.Variant {
	body := func(p ocs.CallParams) map[string]any {
		return map[string]any{"subscriberId": p.SubscriberID}
	}
	return map[ocs.LogicalOp][]ocs.Variant{
		ocs.OpListPackages: {
			{Operation: "variantA", Body: body, Path: []string{"variantA", "items"}},
			{Operation: "variantB", Body: body, Path: []string{"variantB", "items"}},
			{Operation: "variantC", Body: body, Path: []string{"variantC", "items"}},
		},
	}
}

func TestResolverFallsThroughToFirstNonEmptyVariant(t *testing.T) {
	upstream := testutil.NewInMemoryOCS()
	// A answers with an empty list, B blows up, C has the data
	upstream.RespondWith("variantA", map[string]any{
		"variantA": map[string]any{"items": []map[string]any{}},
	})
	upstream.FailWith("variantB", ierr.NewError("boom").Mark(ierr.ErrUpstreamHTTP))
	upstream.RespondWith("variantC", map[string]any{
		"variantC": map[string]any{"items": []map[string]any{{"x": 1}}},
	})

	r := ocs.NewResolverWithVariants(upstream, logger.NewNop(), testVariants())
	items := r.Resolve(context.Background(), ocs.OpListPackages, ocs.CallParams{SubscriberID: 7})

	require.Len(t, items, 1)
	x, ok := items[0].Int64("x")
	require.True(t, ok)
	require.EqualValues(t, 1, x)
	require.Equal(t, 1, upstream.CallCount("variantC"))
}

func TestResolverStopsAtFirstHit(t *testing.T) {
	upstream := testutil.NewInMemoryOCS()
	upstream.RespondWith("variantA", map[string]any{
		"variantA": map[string]any{"items": []map[string]any{{"x": 1}}},
	})

	r := ocs.NewResolverWithVariants(upstream, logger.NewNop(), testVariants())
	items := r.Resolve(context.Background(), ocs.OpListPackages, ocs.CallParams{SubscriberID: 7})

	require.Len(t, items, 1)
	require.Equal(t, 0, upstream.CallCount("variantB"))
	require.Equal(t, 0, upstream.CallCount("variantC"))
}

func TestResolverReturnsEmptyWhenNothingMatches(t *testing.T) {
	upstream := testutil.NewInMemoryOCS()

	r := ocs.NewResolverWithVariants(upstream, logger.NewNop(), testVariants())
	items := r.Resolve(context.Background(), ocs.OpListPackages, ocs.CallParams{SubscriberID: 7})

	require.Empty(t, items)
	// all three candidates were tried
	require.Equal(t, 1, upstream.CallCount("variantA"))
	require.Equal(t, 1, upstream.CallCount("variantB"))
	require.Equal(t, 1, upstream.CallCount("variantC"))
}

func TestResolveStrictReportsErrorOnlyWhenEveryVariantFails(t *testing.T) {
	upstream := testutil.NewInMemoryOCS()
	failure := ierr.NewError("down").Mark(ierr.ErrUpstreamHTTP)
	upstream.FailWith("variantA", failure)
	upstream.FailWith("variantB", failure)
	upstream.FailWith("variantC", failure)

	r := ocs.NewResolverWithVariants(upstream, logger.NewNop(), testVariants())
	items, err := r.ResolveStrict(context.Background(), ocs.OpListPackages, ocs.CallParams{})
	require.Error(t, err)
	require.True(t, ierr.IsUpstreamHTTP(err))
	require.Empty(t, items)

	// one variant answering (even empty) suppresses the error
	upstream.RespondWith("variantB", map[string]any{
		"variantB": map[string]any{"items": []map[string]any{}},
	})
	items, err = r.ResolveStrict(context.Background(), ocs.OpListPackages, ocs.CallParams{})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestResolverWrapsSingleObjectAsOneItem(t *testing.T) {
	upstream := testutil.NewInMemoryOCS()
	upstream.RespondWith("variantA", map[string]any{
		"variantA": map[string]any{
			"items": map[string]any{"databyte": 1024},
		},
	})

	r := ocs.NewResolverWithVariants(upstream, logger.NewNop(), testVariants())
	items := r.Resolve(context.Background(), ocs.OpListPackages, ocs.CallParams{})

	require.Len(t, items, 1)
	n, ok := items[0].Int64("databyte")
	require.True(t, ok)
	require.EqualValues(t, 1024, n)
}
