package report

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/teltrip/ocsreport/internal/ocs"
)

// Parsing of resolved OCS items into report entities. Field names vary per
// tenant, so every lookup carries the ordered list of names observed in the
// field; the first present one wins.

func subscriberFromItem(it ocs.Item) Subscriber {
	sub := Subscriber{}
	if id, ok := it.Int64("subscriberId", "subscriberid", "id"); ok {
		sub.SubscriberID = id
	}

	if imsis := it.Items("imsiList", "imsilist"); len(imsis) > 0 {
		if imsi, ok := imsis[0].String("imsi"); ok {
			sub.IMSI = &imsi
		}
		if iccid, ok := imsis[0].String("iccid"); ok {
			sub.ICCID = &iccid
		}
	}

	sim, hasSIM := it.Child("sim")
	if sub.ICCID == nil && hasSIM {
		if iccid, ok := sim.String("iccid"); ok {
			sub.ICCID = &iccid
		}
	}
	if hasSIM {
		if s, ok := sim.String("status"); ok {
			sub.SIMStatus = &s
		}
		if b, ok := sim.Bool("esim"); ok {
			sub.ESIM = &b
		}
		if s, ok := sim.String("smdpServer", "smdpserver"); ok {
			sub.SMDPServer = &s
		}
		if s, ok := sim.String("activationCode", "activationcode"); ok {
			sub.ActivationCode = &s
		}
	}

	if phones := it.Items("phoneNumberList", "phonenumberlist"); len(phones) > 0 {
		if p, ok := phones[0].String("phoneNumber", "phonenumber", "msisdn"); ok {
			sub.PhoneNumber = &p
		}
	}

	if status := latestStatus(it.Items("status", "statusList")); status != "" {
		sub.SubscriberStatus = &status
	}

	if s, ok := it.String("activationDate", "activationdate"); ok {
		sub.ActivationDate = &s
	}
	if s, ok := it.String("lastUsageDate", "lastusagedate"); ok {
		sub.LastUsageDate = &s
	}
	if b, ok := it.Bool("prepaid"); ok {
		sub.Prepaid = &b
	}
	if d, ok := it.Decimal("balance"); ok {
		sub.Balance = &d
	}
	if s, ok := it.String("account", "accountName", "accountname"); ok {
		sub.AccountName = &s
	}
	if s, ok := it.String("reseller", "resellerName", "resellername"); ok {
		sub.ResellerName = &s
	}
	if s, ok := it.String("lastMcc", "lastmcc"); ok {
		sub.LastMCC = &s
	}
	if s, ok := it.String("lastMnc", "lastmnc"); ok {
		sub.LastMNC = &s
	}
	return sub
}

// latestStatus picks the most recent entry of the upstream status history.
func latestStatus(entries []ocs.Item) string {
	var (
		best     string
		bestTime time.Time
		found    bool
	)
	for _, entry := range entries {
		s, ok := entry.String("status")
		if !ok {
			continue
		}
		t, _ := entry.Time("startDate", "startdate", "date", "tsutc")
		if !found || !t.Before(bestTime) {
			best = s
			bestTime = t
			found = true
		}
	}
	return best
}

// packageFromItems selects the PackageSnapshot with the latest activation
// timestamp; ties and missing timestamps resolve to the later list position.
func packageFromItems(items []ocs.Item) *PackageSnapshot {
	var (
		best     *PackageSnapshot
		bestTime time.Time
	)
	for _, it := range items {
		snap := packageFromItem(it)
		if snap == nil {
			continue
		}
		var activated time.Time
		if snap.ActivatedAt != nil {
			activated = *snap.ActivatedAt
		}
		if best == nil || !activated.Before(bestTime) {
			best = snap
			bestTime = activated
		}
	}
	return best
}

func packageFromItem(it ocs.Item) *PackageSnapshot {
	snap := &PackageSnapshot{}

	tpl, hasTpl := it.Child("packageTemplate", "prepaidPackageTemplate", "template")
	if hasTpl {
		if id, ok := tpl.Int64("prepaidpackagetemplateid", "templateId", "id"); ok {
			snap.TemplateID = id
		}
		if name, ok := tpl.String("prepaidpackagetemplatename", "name"); ok {
			snap.TemplateName = &name
		}
	}
	if snap.TemplateID == 0 {
		if id, ok := it.Int64("prepaidpackagetemplateid", "templateId"); ok {
			snap.TemplateID = id
		}
	}
	if snap.TemplateName == nil {
		if name, ok := it.String("prepaidpackagetemplatename"); ok {
			snap.TemplateName = &name
		}
	}

	if t, ok := it.Time("tsactivationutc", "activationDate"); ok {
		snap.ActivatedAt = &t
	}
	if t, ok := it.Time("tsexpirationutc", "expirationDate"); ok {
		snap.ExpiresAt = &t
	}
	if n, ok := it.Int64("pckdatabyte", "packageDataByte", "databyte"); ok {
		snap.DataBytes = &n
	}
	if n, ok := it.Int64("useddatabyte", "usedDataByte"); ok {
		snap.UsedBytes = &n
	}

	if snap.TemplateID == 0 && snap.TemplateName == nil && snap.ActivatedAt == nil &&
		snap.DataBytes == nil && snap.UsedBytes == nil {
		return nil
	}
	return snap
}

// templateCostFromItems extracts the first item carrying a price.
func templateCostFromItems(templateID int64, items []ocs.Item) *TemplateCost {
	for _, it := range items {
		cost, ok := it.Decimal("cost", "price", "listprice", "onetimecost", "activationcost")
		if !ok {
			continue
		}
		tc := &TemplateCost{TemplateID: templateID, Cost: cost}
		if name, ok := it.String("prepaidpackagetemplatename", "name"); ok {
			tc.Name = &name
		}
		if cur, ok := it.String("currency", "currencycode", "currencyCode"); ok {
			tc.Currency = &cur
		}
		return tc
	}
	return nil
}

// windowResultFromItems folds the usage items of one window. Costs sum over
// every item; byte counts only over items whose usage type code is in the
// configured data set. An item without a type code contributes its bytes
// unconditionally, which is how single-total tenants report.
func windowResultFromItems(items []ocs.Item, dataTypeCodes map[string]struct{}) WindowResult {
	var res WindowResult
	for _, it := range items {
		code, hasCode := it.String("usagetype", "usageType", "servicetypeid", "type")
		countBytes := !hasCode
		if hasCode {
			_, countBytes = dataTypeCodes[code]
		}
		if countBytes {
			if n, ok := it.Int64("databyte", "bytes", "totalbytes", "useddatabyte", "datavolume", "quantity"); ok {
				res.Bytes = lo.ToPtr(lo.FromPtr(res.Bytes) + n)
			}
		}
		if d, ok := it.Decimal("subscribercost", "subscriberCost", "totalcost", "cost"); ok {
			res.SubscriberCost = addDecimal(res.SubscriberCost, d)
		}
		if d, ok := it.Decimal("resellercost", "resellerCost"); ok {
			res.ResellerCost = addDecimal(res.ResellerCost, d)
		}
	}
	return res
}

func addDecimal(acc *decimal.Decimal, d decimal.Decimal) *decimal.Decimal {
	if acc == nil {
		return &d
	}
	sum := acc.Add(d)
	return &sum
}
