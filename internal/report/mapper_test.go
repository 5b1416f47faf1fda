package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teltrip/ocsreport/internal/ocs"
)

func TestPackageSelectionPicksLatestActivation(t *testing.T) {
	items := []ocs.Item{
		{
			"tsactivationutc": "2025-06-01 00:00:00",
			"packageTemplate": map[string]any{"prepaidpackagetemplateid": 1, "prepaidpackagetemplatename": "new"},
		},
		{
			"tsactivationutc": "2025-01-01 00:00:00",
			"packageTemplate": map[string]any{"prepaidpackagetemplateid": 2, "prepaidpackagetemplatename": "old"},
		},
	}

	snap := packageFromItems(items)
	require.NotNil(t, snap)
	require.EqualValues(t, 1, snap.TemplateID)
	require.Equal(t, "new", *snap.TemplateName)
}

func TestPackageSelectionTieGoesToLastListed(t *testing.T) {
	items := []ocs.Item{
		{
			"tsactivationutc": "2025-06-01 00:00:00",
			"packageTemplate": map[string]any{"prepaidpackagetemplateid": 1},
		},
		{
			"tsactivationutc": "2025-06-01 00:00:00",
			"packageTemplate": map[string]any{"prepaidpackagetemplateid": 2},
		},
	}

	snap := packageFromItems(items)
	require.NotNil(t, snap)
	require.EqualValues(t, 2, snap.TemplateID)
}

func TestPackageSelectionEmptyListIsNil(t *testing.T) {
	require.Nil(t, packageFromItems(nil))
	require.Nil(t, packageFromItems([]ocs.Item{{}}))
}

func TestWindowResultOnlyDataTypeCodesContributeBytes(t *testing.T) {
	codes := map[string]struct{}{"33": {}}
	items := []ocs.Item{
		{"usagetype": "33", "databyte": 100, "subscribercost": "1.00"},
		{"usagetype": "5", "databyte": 999, "subscribercost": "0.25"},
	}

	res := windowResultFromItems(items, codes)
	require.NotNil(t, res.Bytes)
	require.EqualValues(t, 100, *res.Bytes)
	require.NotNil(t, res.SubscriberCost)
	require.Equal(t, "1.25", res.SubscriberCost.StringFixed(2))
	require.Nil(t, res.ResellerCost)
}

func TestWindowResultUntypedItemCountsBytes(t *testing.T) {
	res := windowResultFromItems([]ocs.Item{{"databyte": 512}}, map[string]struct{}{"33": {}})
	require.NotNil(t, res.Bytes)
	require.EqualValues(t, 512, *res.Bytes)
	require.True(t, res.SubscriberCost == nil && res.ResellerCost == nil)
}

func TestWindowResultEmptyItems(t *testing.T) {
	res := windowResultFromItems(nil, map[string]struct{}{"33": {}})
	require.True(t, res.Empty())
}

func TestSubscriberFromItemFallsBackToSIMForICCID(t *testing.T) {
	sub := subscriberFromItem(ocs.Item{
		"subscriberId": 7,
		"imsiList":     []any{map[string]any{"imsi": "90170"}},
		"sim":          map[string]any{"iccid": "8988-sim"},
	})

	require.EqualValues(t, 7, sub.SubscriberID)
	require.Equal(t, "8988-sim", *sub.ICCID)
	require.Equal(t, "90170", *sub.IMSI)
}
