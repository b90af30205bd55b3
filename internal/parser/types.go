package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

// Quantity is a trailing count or duration token ("5", "all", "30s", "2m").
type Quantity struct {
	Raw  string
	N    int
	Unit string
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Quantity   *Quantity
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext carries the names currently in scope. Nearby holds world
// targets (tree, deer, ...), Inventory holds carried item ids.
type ParseContext struct {
	Inventory  []string
	Nearby     []string
	Recipes    []string
	LastEntity string
}

type CommandDef struct {
	Canonical string
	Aliases   []string
	MinArgs   int
	MaxArgs   int
	// Literal commands keep their arguments verbatim: no quantity
	// extraction and no entity resolution.
	Literal bool
	// Choices restricts the first argument to a fixed vocabulary.
	Choices []string
}
