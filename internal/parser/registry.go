package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	matchExact  = "exact"
	matchAlias  = "alias"
	matchPrefix = "prefix"
	matchFuzzy  = "lev"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	r.commands[c.Canonical] = c

	for _, phrase := range append([]string{c.Canonical}, c.Aliases...) {
		n := normaliseInput(phrase)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

// Verbs lists the canonical verbs in registration-independent order.
func (r *Registry) Verbs() []string {
	out := make([]string, 0, len(r.commands))
	for verb := range r.commands {
		out = append(out, verb)
	}
	sort.Strings(out)
	return out
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if c, ok := scorePhrase(phrase, tokens, in); ok {
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return commandCandidate{}, nil
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		if cands[i].Consumed != cands[j].Consumed {
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Canonical < cands[j].Canonical
	})

	best := cands[0]
	alts := make([]commandCandidate, 0, 4)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) == cap(alts) {
			break
		}
	}
	return best, alts
}

// scorePhrase rates one registered phrase against the leading tokens:
// exact and alias hits first, then single-word prefixes, then edit distance.
func scorePhrase(phrase commandPhrase, tokens []string, in string) (commandCandidate, bool) {
	if len(phrase.tokens) == 0 {
		return commandCandidate{}, false
	}
	c := commandCandidate{Canonical: phrase.canonical, Alias: phrase.alias}

	consumed := min(len(tokens), len(phrase.tokens))
	prefix := strings.Join(tokens[:consumed], " ")
	if consumed == len(phrase.tokens) && prefix == phrase.alias {
		c.Consumed, c.Score, c.Source = consumed, 1.0, matchExact
		if phrase.alias != phrase.canonical {
			c.Score, c.Source = 0.97, matchAlias
		}
		return c, true
	}

	if len(phrase.tokens) == 1 && len(tokens[0]) >= 2 && strings.HasPrefix(phrase.alias, tokens[0]) {
		c.Consumed, c.Score, c.Source = 1, 0.9, matchPrefix
		return c, true
	}

	if len(phrase.tokens) > 1 && len(tokens) >= len(phrase.tokens) {
		consumed = len(phrase.tokens)
		prefix = strings.Join(tokens[:consumed], " ")
	}
	if len(prefix) < 3 {
		return commandCandidate{}, false
	}
	dist := levenshtein.ComputeDistance(prefix, phrase.alias)
	if dist > levenshteinLimit(len(phrase.alias)) {
		return commandCandidate{}, false
	}
	c.Consumed, c.Source = consumed, matchFuzzy
	c.Score = 0.72 - (0.08 * float64(dist))
	if strings.Contains(in, phrase.alias) {
		c.Score += 0.04
	}
	if phrase.alias != phrase.canonical {
		c.Score += 0.03
	}
	return c, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}},
		{Canonical: "status", Aliases: []string{"stats", "vitals", "how am i", "me"}},
		{Canonical: "inventory", Aliases: []string{"inv", "bag", "my bag", "check bag", "pack"}},
		{Canonical: "weather", Aliases: []string{"sky", "forecast"}},
		{Canonical: "recipes", Aliases: []string{"craft list", "what can i make"}},

		{Canonical: "harvest", Aliases: []string{"gather", "collect"}, MaxArgs: 1, Choices: []string{"tree", "rock", "bush"}},
		{Canonical: "chop", Aliases: []string{"cut", "fell"}},
		{Canonical: "mine", Aliases: []string{"quarry", "break"}},
		{Canonical: "pick", Aliases: []string{"forage", "pluck"}},
		{Canonical: "hunt", Aliases: []string{"kill", "attack", "stab"}, MaxArgs: 1, Choices: []string{"deer", "rabbit", "bird", "partridge"}},
		{Canonical: "shoot", Aliases: []string{"loose", "fire arrow"}, MaxArgs: 2, Literal: true},

		{Canonical: "eat", Aliases: []string{"consume"}, MaxArgs: 2},
		{Canonical: "drink", Aliases: []string{"sip"}, MaxArgs: 2},
		{Canonical: "cook", Aliases: []string{"roast", "bake"}, MaxArgs: 2},
		{Canonical: "fill", Aliases: []string{"refill", "fill canteen", "get water"}},
		{Canonical: "craft", Aliases: []string{"make"}, MinArgs: 1, MaxArgs: 2},
		{Canonical: "place", Aliases: []string{"deploy", "put down", "set up"}, MinArgs: 1, MaxArgs: 2},
		{Canonical: "shelter", Aliases: []string{"camp"}, MaxArgs: 1, Choices: []string{"build", "upgrade"}},

		{Canonical: "go", Aliases: []string{"walk", "move", "head", "run"}, MinArgs: 1, MaxArgs: 2},
		{Canonical: "torch", Aliases: []string{"lamp"}, MaxArgs: 1, Choices: []string{"on", "off"}},
		{Canonical: "sleep", Aliases: []string{"nap", "rest"}},
		{Canonical: "wait", Aliases: []string{"idle"}, MaxArgs: 1},

		{Canonical: "pause", Aliases: []string{"hold"}},
		{Canonical: "resume", Aliases: []string{"unpause", "continue"}},
		{Canonical: "language", Aliases: []string{"lang"}, MinArgs: 1, MaxArgs: 1, Literal: true},
		{Canonical: "save", MaxArgs: 1, Literal: true},
		{Canonical: "load", Aliases: []string{"restore"}, MaxArgs: 1, Literal: true},
		{Canonical: "saves", Aliases: []string{"slots"}},
		{Canonical: "reset", Aliases: []string{"restart", "new game"}},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}
