package ocs

// DefaultVariants is the catalogue of tenant conventions observed in the
// field. Order matters: earlier entries are the conventions seen most often,
// later ones are fallbacks for tenants with older or renamed operations.
func DefaultVariants() map[LogicalOp][]Variant {
	return map[LogicalOp][]Variant{
		OpListSubscribers: {
			{
				Operation: "listSubscriber",
				Body: func(p CallParams) map[string]any {
					return map[string]any{"accountId": p.AccountID}
				},
				Path: []string{"listSubscriber", "subscriberList"},
			},
			{
				Operation: "listSubscribers",
				Body: func(p CallParams) map[string]any {
					return map[string]any{"accountId": p.AccountID}
				},
				Path: []string{"listSubscribers", "subscriberList"},
			},
		},

		OpListPackages: {
			{
				Operation: "listSubscriberPrepaidPackages",
				Body: func(p CallParams) map[string]any {
					return map[string]any{"subscriberId": p.SubscriberID}
				},
				Path: []string{"listSubscriberPrepaidPackages", "packages"},
			},
			{
				Operation: "listSubscriberPrepaidPackage",
				Body: func(p CallParams) map[string]any {
					return map[string]any{"subscriberId": p.SubscriberID}
				},
				Path: []string{"listSubscriberPrepaidPackage", "packages"},
			},
		},

		OpUsageOverPeriod: {
			{
				Operation: "subscriberUsageOverPeriod",
				Body: func(p CallParams) map[string]any {
					return map[string]any{
						"subscriber": map[string]any{"subscriberId": p.SubscriberID},
						"period":     map[string]any{"start": p.From, "end": p.To},
					}
				},
				Path: []string{"subscriberUsageOverPeriod", "total"},
			},
			{
				Operation: "subscriberUsageOverPeriod",
				Body: func(p CallParams) map[string]any {
					return map[string]any{
						"subscriber": map[string]any{"subscriberId": p.SubscriberID},
						"period":     map[string]any{"start": p.From, "end": p.To},
					}
				},
				Path: []string{"subscriberUsageOverPeriod"},
			},
			{
				Operation: "subscriberUsageOverPeriod",
				Body: func(p CallParams) map[string]any {
					return map[string]any{
						"subscriberId": p.SubscriberID,
						"fromDate":     p.From,
						"toDate":       p.To,
					}
				},
				Path: []string{"subscriberUsageOverPeriod"},
			},
		},

		OpTemplateCost: {
			{
				Operation: "listPrepaidPackageTemplate",
				Body: func(p CallParams) map[string]any {
					return map[string]any{"prepaidpackagetemplateid": p.TemplateID}
				},
				Path: []string{"listPrepaidPackageTemplate", "templates"},
			},
			{
				Operation: "listPrepaidPackageTemplate",
				Body: func(p CallParams) map[string]any {
					return map[string]any{"prepaidpackagetemplateid": p.TemplateID}
				},
				Path: []string{"listPrepaidPackageTemplate"},
			},
			{
				Operation: "listPrepaidPackageTemplates",
				Body: func(p CallParams) map[string]any {
					return map[string]any{"prepaidpackagetemplateid": p.TemplateID}
				},
				Path: []string{"listPrepaidPackageTemplates", "templates"},
			},
		},

		OpListAccounts: {
			{
				Operation: "listResellerAccount",
				Body: func(p CallParams) map[string]any {
					if p.ResellerID > 0 {
						return map[string]any{"resellerId": p.ResellerID}
					}
					return map[string]any{}
				},
				Path: []string{"listResellerAccount", "accounts"},
			},
			{
				Operation: "listAccount",
				Body:      func(CallParams) map[string]any { return map[string]any{} },
				Path:      []string{"listAccount", "accounts"},
			},
			{
				Operation: "listAccounts",
				Body:      func(CallParams) map[string]any { return map[string]any{} },
				Path:      []string{"listAccounts", "accounts"},
			},
			{
				Operation: "listResellerAccounts",
				Body:      func(CallParams) map[string]any { return map[string]any{} },
				Path:      []string{"listResellerAccounts", "accounts"},
			},
			{
				Operation: "listCustomerAccounts",
				Body:      func(CallParams) map[string]any { return map[string]any{} },
				Path:      []string{"listCustomerAccounts", "accounts"},
			},
		},
	}
}
