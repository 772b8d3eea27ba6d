package flowgraph

// Concept tags used by the built-in income statement template. These are
// the us-gaap tags most large filers report; companies with unusual
// taxonomies are handled by per-company override templates.
const (
	tagRevenue       = "RevenueFromContractWithCustomerExcludingAssessedTax"
	tagCostOfRevenue = "CostOfGoodsAndServicesSold"
	tagOpEx          = "OperatingExpenses"
	tagRnD           = "ResearchAndDevelopmentExpense"
	tagSGA           = "SellingGeneralAndAdministrativeExpense"
	tagOpInc         = "OperatingIncomeLoss"
	tagOtherInc      = "NonoperatingIncomeExpense"
	tagTax           = "IncomeTaxExpenseBenefit"
	tagNetIncome     = "NetIncomeLoss"
	tagCash          = "CashAndCashEquivalentsAtCarryingValue"
)

// DefaultTemplate returns the built-in income statement flow layout.
//
// The gross-profit node derives its value from revenue minus cost of
// revenue rather than the GrossProfit tag, which many filers omit. The
// bank-account plug draws on the prior period's cash balance and covers
// cost of revenue whenever a quarter runs a gross loss. Conditions split
// the links into profit-mode and loss-mode routes so each node is fed by
// exactly one of them, and the typed links near the bottom of the layout
// fan drained hubs out into flows based on the target's own concept.
func DefaultTemplate() Template {
	return Template{
		Nodes: []NodeTemplate{
			{
				ID:            "revenue",
				Order:         1,
				Title:         "Revenue",
				Color:         "#60a5fa",
				Contributions: []Contribution{{Tag: tagRevenue}},
			},
			{
				ID:            "cost-of-revenue",
				Order:         2,
				Title:         "Cost of Revenue",
				Color:         "#f87171",
				Contributions: []Contribution{{Tag: tagCostOfRevenue}},
			},
			{
				ID:                "gross-profit",
				Order:             3,
				Title:             "Gross Profit",
				TitleWhenNegative: "Gross Loss",
				Color:             "#34d399",
				ColorWhenNegative: "#ef4444",
				Contributions: []Contribution{
					{Tag: tagRevenue},
					{Tag: tagCostOfRevenue, Action: ActionSubtract},
				},
			},
			{
				ID:            "operating-expenses",
				Order:         4,
				Title:         "Operating Expenses",
				Color:         "#fb923c",
				Contributions: []Contribution{{Tag: tagOpEx}},
			},
			{
				ID:            "research-development",
				Order:         5,
				Title:         "Research & Development",
				Color:         "#fdba74",
				Contributions: []Contribution{{Tag: tagRnD}},
			},
			{
				ID:            "selling-general-admin",
				Order:         6,
				Title:         "Selling, General & Admin",
				Color:         "#fcd34d",
				Contributions: []Contribution{{Tag: tagSGA}},
			},
			{
				ID:                "operating-income",
				Order:             7,
				Title:             "Operating Income",
				TitleWhenNegative: "Operating Loss",
				Color:             "#4ade80",
				ColorWhenNegative: "#ef4444",
				Contributions:     []Contribution{{Tag: tagOpInc}},
			},
			{
				ID:                "other-income",
				Order:             8,
				Title:             "Other Income",
				TitleWhenNegative: "Other Expenses",
				Color:             "#a78bfa",
				ColorWhenNegative: "#f87171",
				Contributions:     []Contribution{{Tag: tagOtherInc}},
			},
			{
				ID:                "tax",
				Order:             9,
				Title:             "Tax",
				TitleWhenNegative: "Tax Benefit",
				Color:             "#94a3b8",
				ColorWhenNegative: "#4ade80",
				Contributions:     []Contribution{{Tag: tagTax}},
			},
			{
				ID:                "net-profit",
				Order:             10,
				Title:             "Net Profit",
				TitleWhenNegative: "Net Loss",
				Color:             "#22c55e",
				ColorWhenNegative: "#dc2626",
				Contributions:     []Contribution{{Tag: tagNetIncome}},
			},
			{
				ID:             "bank-account",
				Order:          11,
				Title:          "Bank Account",
				Color:          "#38bdf8",
				Contributions:  []Contribution{{Tag: tagCash}},
				UsePriorPeriod: true,
				ValueSource:    SourceUnlimited,
			},
		},
		Links: []LinkTemplate{
			{Source: "revenue", Target: "cost-of-revenue", Order: 1},
			{Source: "bank-account", Target: "cost-of-revenue", Order: 2,
				Condition: &Condition{Sign: SignNegative, Node: "gross-profit"}},
			{Source: "revenue", Target: "gross-profit", Order: 3,
				Condition: &Condition{Sign: SignPositive, Node: "gross-profit"}},
			{Source: "operating-income", Target: "operating-expenses", Order: 4,
				Condition: &Condition{Sign: SignNegative, Node: "operating-income"}},
			{Source: "gross-profit", Target: "operating-expenses", Order: 5,
				Condition: &Condition{Sign: SignPositive, Node: "gross-profit"}},
			{Source: "operating-expenses", Target: "research-development", Order: 6,
				Type: "research-development"},
			{Source: "operating-expenses", Target: "selling-general-admin", Order: 7,
				Type: "selling-general-admin"},
			{Source: "gross-profit", Target: "operating-income", Order: 8,
				Condition: &Condition{Sign: SignPositive, Node: "operating-income"}},
			{Source: "other-income", Target: "net-profit", Order: 9,
				Condition: &Condition{Sign: SignPositive, Node: "other-income"}},
			{Source: "operating-income", Target: "other-income", Order: 10, Type: "other-income",
				Condition: &Condition{Sign: SignNegative, Node: "other-income"}},
			{Source: "operating-income", Target: "tax", Order: 11, Type: "tax",
				Condition: &Condition{Sign: SignPositive, Node: "operating-income"}},
			{Source: "operating-income", Target: "net-profit", Order: 12, Type: "net-profit",
				Condition: &Condition{Sign: SignPositive, Node: "net-profit"}},
		},
	}
}
