// Package flowgraph compiles reported financial facts into a Sankey-style
// flow graph. A declarative template describes the nodes (statement line
// items built from tagged concept values) and the links (money flowing
// between them); the compiler resolves the template against one reporting
// period and apportions actual dollar amounts onto every link.
package flowgraph

// ContributionAction controls how a tagged value enters a node's sum.
type ContributionAction string

const (
	// ActionAdd credits the tagged value to the node.
	ActionAdd ContributionAction = "add"
	// ActionSubtract debits the tagged value from the node. Expense tags
	// reported as positive numbers use this to flip sign.
	ActionSubtract ContributionAction = "subtract"
)

// ValueSourceMode controls how much value a node can supply to its
// outgoing links.
type ValueSourceMode string

const (
	// SourceReported limits outflow to the value remaining in the node's
	// working pool.
	SourceReported ValueSourceMode = "reported"
	// SourceUnlimited marks a plug node (e.g. cash on hand) that covers
	// whatever its targets still need without ever running dry.
	SourceUnlimited ValueSourceMode = "unlimited"
)

// ConditionSign selects which side of zero a condition accepts.
type ConditionSign string

const (
	// SignPositive passes when the referenced node resolved strictly
	// above zero.
	SignPositive ConditionSign = "positive"
	// SignNegative passes when the referenced node resolved at or below
	// zero.
	SignNegative ConditionSign = "negative"
)

// Contribution maps one reported concept tag into a node. An empty Action
// means ActionAdd.
type Contribution struct {
	Tag    string             `json:"tag"`
	Action ContributionAction `json:"action,omitempty"`
}

// Adds reports whether the contribution credits the node.
func (c Contribution) Adds() bool {
	return c.Action != ActionSubtract
}

// Condition gates a link on the resolved sign of some node, which need not
// be either endpoint. A gross-profit shortfall link, for example, only
// renders when the gross-profit node resolved negative.
type Condition struct {
	Sign ConditionSign `json:"sign"`
	Node string        `json:"node"`
}

// NodeTemplate declares one flow-graph node. ID is the template-wide
// identity used by merging, links and conditions. Order positions the node
// in the processing sequence and may be fractional so that overrides can
// slot new nodes between existing ones.
type NodeTemplate struct {
	ID                string          `json:"id"`
	Order             float64         `json:"order"`
	Title             string          `json:"title,omitempty"`
	TitleWhenNegative string          `json:"titleWhenNegative,omitempty"`
	Color             string          `json:"color,omitempty"`
	ColorWhenNegative string          `json:"colorWhenNegative,omitempty"`
	Contributions     []Contribution  `json:"contributions,omitempty"`
	UsePriorPeriod    bool            `json:"usePriorPeriod,omitempty"`
	ValueSource       ValueSourceMode `json:"valueSource,omitempty"`
}

// Unlimited reports whether the node is a plug that never depletes.
func (n NodeTemplate) Unlimited() bool {
	return n.ValueSource == SourceUnlimited
}

// LinkTemplate declares money moving from Source to Target, both node
// template IDs. The (Source, Target) pair is the link's identity for
// merging. Order positions the link in the apportionment sequence; earlier
// links drain the shared pools first. Type optionally names another node
// template whose contributions supply the link's value basis instead of
// the source's own, which lets several links fan out of one visual node
// while each draws on a distinct concept.
type LinkTemplate struct {
	Source    string     `json:"source"`
	Target    string     `json:"target"`
	Order     float64    `json:"order"`
	Type      string     `json:"type,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
}

// Template is a complete flow-graph description: every node and link the
// compiler may render for a period. Merged templates keep Nodes and Links
// sorted by ascending Order.
type Template struct {
	Nodes []NodeTemplate `json:"nodes"`
	Links []LinkTemplate `json:"links"`
}

// Node returns the node template with the given ID.
func (t Template) Node(id string) (NodeTemplate, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeTemplate{}, false
}

// nodeIndex builds an ID lookup for apportionment and emission.
func (t Template) nodeIndex() map[string]NodeTemplate {
	idx := make(map[string]NodeTemplate, len(t.Nodes))
	for _, n := range t.Nodes {
		idx[n.ID] = n
	}
	return idx
}
