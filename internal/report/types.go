package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscriber is the identity slice of a report row, parsed from the upstream
// subscriber listing. Every field except the id may be missing upstream, so
// everything else is nullable. Date-typed attributes stay as the upstream's
// display strings: the engine never computes with them.
type Subscriber struct {
	SubscriberID     int64            `json:"subscriberId"`
	ICCID            *string          `json:"iccid"`
	IMSI             *string          `json:"imsi"`
	PhoneNumber      *string          `json:"phoneNumber"`
	SubscriberStatus *string          `json:"subscriberStatus"`
	SIMStatus        *string          `json:"simStatus"`
	ESIM             *bool            `json:"esim"`
	SMDPServer       *string          `json:"smdpServer"`
	ActivationCode   *string          `json:"activationCode"`
	ActivationDate   *string          `json:"activationDate"`
	LastUsageDate    *string          `json:"lastUsageDate"`
	Prepaid          *bool            `json:"prepaid"`
	Balance          *decimal.Decimal `json:"balance"`
	AccountName      *string          `json:"account"`
	ResellerName     *string          `json:"reseller"`
	LastMCC          *string          `json:"lastMcc"`
	LastMNC          *string          `json:"lastMnc"`
}

// PackageSnapshot is the most recently activated prepaid package bound to a
// subscriber at query time.
type PackageSnapshot struct {
	TemplateID   int64      `json:"prepaidpackagetemplateid"`
	TemplateName *string    `json:"prepaidpackagetemplatename"`
	ActivatedAt  *time.Time `json:"tsactivationutc"`
	ExpiresAt    *time.Time `json:"tsexpirationutc"`
	DataBytes    *int64     `json:"pckdatabyte"`
	UsedBytes    *int64     `json:"useddatabyte"`
}

// TemplateCost is the list price of a prepaid package template. Within one
// report invocation a template id always resolves to the same cost, which is
// what makes caching it safe.
type TemplateCost struct {
	TemplateID int64
	Name       *string
	Cost       decimal.Decimal
	Currency   *string
}

// UsageWindow is one inclusive date sub-interval of the reporting range,
// never longer than the upstream's maximum span.
type UsageWindow struct {
	Start time.Time
	End   time.Time
}

// WindowResult is the usage summed over one window for one subscriber. A nil
// field means the upstream reported nothing for it, which is not the same as
// zero.
type WindowResult struct {
	Bytes          *int64
	SubscriberCost *decimal.Decimal
	ResellerCost   *decimal.Decimal
}

// Empty reports whether the window produced no numeric value at all.
func (w WindowResult) Empty() bool {
	return w.Bytes == nil && w.SubscriberCost == nil && w.ResellerCost == nil
}

// Enrichment is the per-subscriber output of the enricher. Any field may be
// absent; the enricher never fails as a whole.
type Enrichment struct {
	SubscriberID        int64
	Package             *PackageSnapshot
	OneTimeCost         *decimal.Decimal
	CostCurrency        *string
	TotalBytes          *int64
	TotalSubscriberCost *decimal.Decimal
	TotalResellerCost   *decimal.Decimal
	WindowsPlanned      int
	WindowsFailed       int
}

// AggregateRow is one denormalized report row per subscriber: identity
// fields, the selected package, the one-time template cost, and cumulative
// usage totals. Nil means the value could not be resolved; the row is still
// returned. WindowsFailed > 0 marks a degraded row.
type AggregateRow struct {
	Subscriber

	PackageTemplateID   *int64           `json:"prepaidpackagetemplateid"`
	PackageTemplateName *string          `json:"prepaidpackagetemplatename"`
	PackageActivatedAt  *time.Time       `json:"tsactivationutc"`
	PackageExpiresAt    *time.Time       `json:"tsexpirationutc"`
	PackageDataBytes    *int64           `json:"pckdatabyte"`
	PackageUsedBytes    *int64           `json:"useddatabyte"`
	OneTimeCost         *decimal.Decimal `json:"subscriberOneTimeCost"`
	CostCurrency        *string          `json:"costCurrency"`
	TotalBytes          *int64           `json:"totalBytes"`
	TotalSubscriberCost *decimal.Decimal `json:"totalSubscriberCost"`
	TotalResellerCost   *decimal.Decimal `json:"totalResellerCost"`
	WindowsPlanned      int              `json:"windowsPlanned"`
	WindowsFailed       int              `json:"windowsFailed"`
}

// apply merges an enrichment into the row. Absent enrichment fields leave
// the row's fields untouched, i.e. null in the output.
func (r *AggregateRow) apply(e Enrichment) {
	if pkg := e.Package; pkg != nil {
		r.PackageTemplateID = &pkg.TemplateID
		r.PackageTemplateName = pkg.TemplateName
		r.PackageActivatedAt = pkg.ActivatedAt
		r.PackageExpiresAt = pkg.ExpiresAt
		r.PackageDataBytes = pkg.DataBytes
		r.PackageUsedBytes = pkg.UsedBytes
	}
	r.OneTimeCost = e.OneTimeCost
	r.CostCurrency = e.CostCurrency
	r.TotalBytes = e.TotalBytes
	r.TotalSubscriberCost = e.TotalSubscriberCost
	r.TotalResellerCost = e.TotalResellerCost
	r.WindowsPlanned = e.WindowsPlanned
	r.WindowsFailed = e.WindowsFailed
}

// AccountSummary is a normalized account picker entry for the surrounding
// presentation layer.
type AccountSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
