package flowgraph

import (
	"math"
	"testing"
)

func TestResolveNodeValueSignsAndMissingTags(t *testing.T) {
	p := newPools(map[string]float64{
		"Revenues":       1000,
		"CostOfRevenue":  600,
		"InterestIncome": 25,
	}, nil)

	cases := []struct {
		name string
		node NodeTemplate
		want float64
	}{
		{
			name: "single add",
			node: NodeTemplate{Contributions: []Contribution{{Tag: "Revenues"}}},
			want: 1000,
		},
		{
			name: "derived via subtract",
			node: NodeTemplate{Contributions: []Contribution{
				{Tag: "Revenues"},
				{Tag: "CostOfRevenue", Action: ActionSubtract},
			}},
			want: 400,
		},
		{
			name: "missing tag reads zero",
			node: NodeTemplate{Contributions: []Contribution{{Tag: "Absent"}}},
			want: 0,
		},
		{
			name: "mixed present and missing",
			node: NodeTemplate{Contributions: []Contribution{
				{Tag: "InterestIncome"},
				{Tag: "Absent", Action: ActionSubtract},
			}},
			want: 25,
		},
	}

	for _, tc := range cases {
		if got := resolveNodeValue(tc.node, p); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolveNodeValuePriorPeriodPool(t *testing.T) {
	p := newPools(
		map[string]float64{"Cash": 100},
		map[string]float64{"Cash": 70},
	)
	node := NodeTemplate{
		Contributions:  []Contribution{{Tag: "Cash"}},
		UsePriorPeriod: true,
	}

	if got := resolveNodeValue(node, p); got != 70 {
		t.Errorf("prior-period node read %v, want 70", got)
	}

	// Without a prior period the same node contributes zero.
	empty := newPools(map[string]float64{"Cash": 100}, nil)
	if got := resolveNodeValue(node, empty); got != 0 {
		t.Errorf("prior-period node without prior data read %v, want 0", got)
	}
}

func TestConditionPasses(t *testing.T) {
	values := map[string]float64{
		"profit": 250,
		"loss":   -30,
		"zero":   0,
		"broken": math.NaN(),
	}

	cases := []struct {
		name string
		cond *Condition
		want bool
	}{
		{"nil condition", nil, true},
		{"positive on profit", &Condition{Sign: SignPositive, Node: "profit"}, true},
		{"positive on loss", &Condition{Sign: SignPositive, Node: "loss"}, false},
		{"positive on zero", &Condition{Sign: SignPositive, Node: "zero"}, false},
		{"negative on loss", &Condition{Sign: SignNegative, Node: "loss"}, true},
		{"negative on zero", &Condition{Sign: SignNegative, Node: "zero"}, true},
		{"negative on profit", &Condition{Sign: SignNegative, Node: "profit"}, false},
		{"positive on unknown node", &Condition{Sign: SignPositive, Node: "ghost"}, false},
		{"negative on unknown node", &Condition{Sign: SignNegative, Node: "ghost"}, true},
		{"positive on NaN", &Condition{Sign: SignPositive, Node: "broken"}, false},
		{"negative on NaN", &Condition{Sign: SignNegative, Node: "broken"}, false},
	}

	for _, tc := range cases {
		if got := conditionPasses(tc.cond, values); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestActiveLinksDropsDeadEndpoints(t *testing.T) {
	links := []LinkTemplate{
		{Source: "a", Target: "b", Order: 1},
		{Source: "a", Target: "gone", Order: 2},
		{Source: "gone", Target: "b", Order: 3},
	}
	values := map[string]float64{"a": 10, "b": 5, "gone": 0}
	rendered := map[string]bool{"a": true, "b": true, "gone": false}

	kept := activeLinks(links, values, rendered)

	if len(kept) != 1 || kept[0].Target != "b" || kept[0].Source != "a" {
		t.Errorf("expected only a->b to survive, got %v", kept)
	}
}

// resolvedValues snapshots every node's pre-apportionment value the way
// the compiler does before handing the pools to apportion.
func resolvedValues(nodes map[string]NodeTemplate, p *pools) map[string]float64 {
	values := make(map[string]float64, len(nodes))
	for id, n := range nodes {
		values[id] = resolveNodeValue(n, p)
	}
	return values
}

func TestApportionSharedPoolOrderDecidesFirstClaim(t *testing.T) {
	nodes := map[string]NodeTemplate{
		"pool":   {ID: "pool", Contributions: []Contribution{{Tag: "Shared"}}},
		"first":  {ID: "first", Contributions: []Contribution{{Tag: "NeedA"}}},
		"second": {ID: "second", Contributions: []Contribution{{Tag: "NeedB"}}},
	}
	seed := map[string]float64{"Shared": 100, "NeedA": 80, "NeedB": 80}
	values := resolvedValues(nodes, newPools(seed, nil))

	forward := apportion([]LinkTemplate{
		{Source: "pool", Target: "first", Order: 1},
		{Source: "pool", Target: "second", Order: 2},
	}, nodes, values, newPools(seed, nil))

	if forward[0].value != 80 || forward[1].value != 20 {
		t.Errorf("forward order: got %v and %v, want 80 and 20", forward[0].value, forward[1].value)
	}

	// Swapping the processing order hands the full claim to the other link.
	reversed := apportion([]LinkTemplate{
		{Source: "pool", Target: "second", Order: 1},
		{Source: "pool", Target: "first", Order: 2},
	}, nodes, values, newPools(seed, nil))

	if reversed[0].value != 80 || reversed[0].link.Target != "second" {
		t.Errorf("reversed order: second should claim 80 first, got %v", reversed[0].value)
	}
	if reversed[1].value != 20 {
		t.Errorf("reversed order: first should be left with 20, got %v", reversed[1].value)
	}
}

func TestApportionNeverExceedsReportedSource(t *testing.T) {
	nodes := map[string]NodeTemplate{
		"src": {ID: "src", Contributions: []Contribution{{Tag: "Src"}}},
		"t1":  {ID: "t1", Contributions: []Contribution{{Tag: "N1"}}},
		"t2":  {ID: "t2", Contributions: []Contribution{{Tag: "N2"}}},
		"t3":  {ID: "t3", Contributions: []Contribution{{Tag: "N3"}}},
	}
	p := newPools(map[string]float64{"Src": 100, "N1": 50, "N2": 60, "N3": 70}, nil)

	flows := apportion([]LinkTemplate{
		{Source: "src", Target: "t1", Order: 1},
		{Source: "src", Target: "t2", Order: 2},
		{Source: "src", Target: "t3", Order: 3},
	}, nodes, resolvedValues(nodes, p), p)

	total := 0.0
	for _, f := range flows {
		total += f.value
	}
	if total > 100 {
		t.Errorf("outflows total %v, exceeding the source value 100", total)
	}
	if flows[0].value != 50 || flows[1].value != 50 || flows[2].value != 0 {
		t.Errorf("expected 50/50/0, got %v/%v/%v", flows[0].value, flows[1].value, flows[2].value)
	}
}

func TestApportionUnlimitedPlugSuppliesTargetNeed(t *testing.T) {
	nodes := map[string]NodeTemplate{
		"bank": {
			ID:            "bank",
			Contributions: []Contribution{{Tag: "Cash"}},
			ValueSource:   SourceUnlimited,
		},
		"cost": {ID: "cost", Contributions: []Contribution{{Tag: "Cost"}}},
	}
	// The plug holds only 5 but must still cover the full remaining need.
	p := newPools(map[string]float64{"Cash": 5, "Cost": 40}, nil)

	flows := apportion([]LinkTemplate{
		{Source: "bank", Target: "cost", Order: 1},
	}, nodes, resolvedValues(nodes, p), p)

	if flows[0].value != 40 {
		t.Errorf("plug supplied %v, want the target need 40", flows[0].value)
	}
	if p.current["Cost"] != 0 {
		t.Errorf("target pool not drained, has %v left", p.current["Cost"])
	}
}

func TestApportionTypedLinkDrawsOnNamedBasis(t *testing.T) {
	// Fan-out of a drained hub: the hub's own pool was consumed by its
	// inflow, so the outgoing links base themselves on their targets.
	nodes := map[string]NodeTemplate{
		"opex": {ID: "opex", Contributions: []Contribution{{Tag: "OpEx"}}},
		"rd":   {ID: "rd", Contributions: []Contribution{{Tag: "RnD"}}},
		"sga":  {ID: "sga", Contributions: []Contribution{{Tag: "SGA"}}},
	}
	p := newPools(map[string]float64{"OpEx": 0, "RnD": 8, "SGA": 7}, nil)

	flows := apportion([]LinkTemplate{
		{Source: "opex", Target: "rd", Order: 1, Type: "rd"},
		{Source: "opex", Target: "sga", Order: 2, Type: "sga"},
	}, nodes, resolvedValues(nodes, p), p)

	if flows[0].value != 8 || flows[1].value != 7 {
		t.Errorf("typed fan-out got %v and %v, want 8 and 7", flows[0].value, flows[1].value)
	}
}

func TestApportionUnknownTypeFallsBackToSource(t *testing.T) {
	nodes := map[string]NodeTemplate{
		"src": {ID: "src", Contributions: []Contribution{{Tag: "Src"}}},
		"tgt": {ID: "tgt", Contributions: []Contribution{{Tag: "Tgt"}}},
	}
	p := newPools(map[string]float64{"Src": 30, "Tgt": 50}, nil)

	flows := apportion([]LinkTemplate{
		{Source: "src", Target: "tgt", Order: 1, Type: "no-such-node"},
	}, nodes, resolvedValues(nodes, p), p)

	if flows[0].value != 30 {
		t.Errorf("unknown type should fall back to the source basis, got %v", flows[0].value)
	}
}

func TestApportionEmitsZeroMagnitudeLinks(t *testing.T) {
	nodes := map[string]NodeTemplate{
		"src": {ID: "src", Contributions: []Contribution{{Tag: "Src"}}},
		"tgt": {ID: "tgt", Contributions: []Contribution{{Tag: "Tgt"}}},
	}
	p := newPools(map[string]float64{"Src": 0, "Tgt": 50}, nil)

	flows := apportion([]LinkTemplate{
		{Source: "src", Target: "tgt", Order: 1},
	}, nodes, resolvedValues(nodes, p), p)

	if len(flows) != 1 {
		t.Fatalf("zero-magnitude link should still be emitted, got %d flows", len(flows))
	}
	if flows[0].value != 0 {
		t.Errorf("got %v, want 0", flows[0].value)
	}
	if p.current["Tgt"] != 50 {
		t.Errorf("zero flow must not deduct, target pool is %v", p.current["Tgt"])
	}
}

func TestApportionNegativePoolsFlowByAbsoluteValue(t *testing.T) {
	// Expense pools reported as negative numbers still move their
	// absolute value.
	nodes := map[string]NodeTemplate{
		"src": {ID: "src", Contributions: []Contribution{{Tag: "Src"}}},
		"tgt": {ID: "tgt", Contributions: []Contribution{{Tag: "Tgt"}}},
	}
	p := newPools(map[string]float64{"Src": -120, "Tgt": 100}, nil)

	flows := apportion([]LinkTemplate{
		{Source: "src", Target: "tgt", Order: 1},
	}, nodes, resolvedValues(nodes, p), p)

	if flows[0].value != 100 {
		t.Errorf("got %v, want min(|-120|, 100) = 100", flows[0].value)
	}
}

func TestApportionDerivedNodeOutflowCappedAtResolvedValue(t *testing.T) {
	// Gross profit derives from the same pool entries its neighbors use
	// (revenue add, cost subtract). Deducting a link against both
	// endpoints pushes the live revenue and cost entries apart, so the
	// node's live sum grows with every outflow; without the claimed cap
	// its links could move more than the node is worth.
	nodes := map[string]NodeTemplate{
		"gross-profit": {ID: "gross-profit", Contributions: []Contribution{
			{Tag: "Rev"},
			{Tag: "Cost", Action: ActionSubtract},
		}},
		"opex":  {ID: "opex", Contributions: []Contribution{{Tag: "OpEx"}}},
		"opinc": {ID: "opinc", Contributions: []Contribution{{Tag: "OpInc"}}},
	}
	// gross-profit resolves to 40000; its targets want 65000 combined.
	p := newPools(map[string]float64{
		"Rev": 100000, "Cost": 60000, "OpEx": 35000, "OpInc": 30000,
	}, nil)

	flows := apportion([]LinkTemplate{
		{Source: "gross-profit", Target: "opex", Order: 1},
		{Source: "gross-profit", Target: "opinc", Order: 2},
	}, nodes, resolvedValues(nodes, p), p)

	if flows[0].value != 35000 {
		t.Errorf("first claim got %v, want the full opex need 35000", flows[0].value)
	}
	if flows[1].value != 5000 {
		t.Errorf("second claim got %v, want the 5000 left of gross profit", flows[1].value)
	}
	total := flows[0].value + flows[1].value
	if total > 40000 {
		t.Errorf("outflow total %v exceeds the node's resolved value 40000", total)
	}
}
