package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Verbs() []string {
	return p.registry.Verbs()
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command. Type help for the list."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	best, alternates := p.registry.matchCommand(tokens)
	if best.Canonical == "" || best.Score < 0.5 {
		if inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised); inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, status, harvest, hunt, eat, craft, go, sleep.",
		}
		return intent
	}

	if len(alternates) > 0 && (best.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				verbOption(raw, best),
				verbOption(raw, alternates[0]),
			},
		}
		return intent
	}

	intent.Verb = best.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(best.Score)

	def, _ := p.registry.command(intent.Verb)
	args := tokens[min(best.Consumed, len(tokens)):]
	if def.Literal {
		intent.Args = append([]string(nil), args...)
	} else {
		var q *Quantity
		args, q = splitQuantity(args)
		intent.Quantity = q

		resolved, clarify, argScore := resolveArgs(ctx, def, args)
		if clarify != nil {
			intent.Clarify = clarify
			intent.Confidence = 0.45
			return intent
		}
		intent.Args = resolved
		intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))
	}

	if len(intent.Args) < def.MinArgs {
		if options := buildEntityOptions(ctx, def.Canonical, 5); len(options) > 0 {
			intent.Clarify = &ClarifyQuestion{
				Prompt:  fmt.Sprintf("What should I %s?", def.Canonical),
				Options: options,
			}
			intent.Confidence = 0.46
			return intent
		}
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)}
		intent.Confidence = 0.42
		return intent
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}
	if def.MaxArgs == 0 && len(intent.Args) > 0 {
		intent.Args = nil
	}

	if intent.Confidence < 0.52 {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func verbOption(raw string, c commandCandidate) Intent {
	return Intent{
		Raw:        raw,
		Normalised: c.Canonical,
		Kind:       commandKind(c.Canonical),
		Verb:       c.Canonical,
		Confidence: c.Score,
	}
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "status", "inventory", "weather", "recipes", "saves":
		return Query
	default:
		return Command
	}
}

func splitQuantity(tokens []string) ([]string, *Quantity) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tokens))
	var q *Quantity
	for _, token := range tokens {
		if q == nil {
			if candidate := parseQuantityToken(token); candidate != nil {
				q = candidate
				continue
			}
		}
		out = append(out, token)
	}
	return out, q
}

func resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	for i := 0; i < len(args); i++ {
		token := args[i]
		if isPronoun(token) {
			if strings.TrimSpace(ctx.LastEntity) == "" {
				return nil, &ClarifyQuestion{Prompt: "What does that pronoun refer to?"}, 0.4
			}
			resolved = append(resolved, normaliseInput(ctx.LastEntity))
			score -= 0.08
			continue
		}

		if def.Canonical == "go" && i == 0 {
			if mapped := mapDirection(token); mapped != "" {
				resolved = append(resolved, mapped)
				continue
			}
			matches, confidence, tie := bestMatches(token, []string{"north", "south", "east", "west"}, nil, nil)
			if tie {
				return nil, &ClarifyQuestion{Prompt: "Which direction?", Options: []Intent{
					{Kind: Command, Verb: "go", Args: []string{matches[0]}, Confidence: confidence},
					{Kind: Command, Verb: "go", Args: []string{matches[1]}, Confidence: confidence - 0.01},
				}}, 0.5
			}
			if len(matches) == 1 {
				resolved = append(resolved, matches[0])
				score = min(score, confidence)
				continue
			}
		}

		if i == 0 {
			pool, boost := entityPool(ctx, def)
			if len(pool) > 0 {
				joined := token
				// Multi-word items ("cooked meat") are joined greedily.
				if i+1 < len(args) {
					try := token + "_" + args[i+1]
					if _, s, _ := bestMatches(try, pool, boost, nil); s > 0.9 {
						joined = try
						i++
					}
				}
				matches, confidence, tie := bestMatches(joined, pool, boost, nil)
				if tie {
					options := make([]Intent, 0, 2)
					for idx := 0; idx < 2; idx++ {
						options = append(options, Intent{
							Kind:       commandKind(def.Canonical),
							Verb:       def.Canonical,
							Args:       []string{matches[idx]},
							Confidence: confidence - float64(idx)*0.01,
						})
					}
					return nil, &ClarifyQuestion{
						Prompt:  fmt.Sprintf("Did you mean %s?", def.Canonical),
						Options: options,
					}, 0.52
				}
				if len(matches) == 1 {
					resolved = append(resolved, matches[0])
					score = min(score, confidence)
					continue
				}
			}
		}

		resolved = append(resolved, token)
		score -= 0.02
	}
	return resolved, nil, clampScore(score)
}

// entityPool picks the vocabulary the first argument of verb is matched
// against, plus the subset that earns an in-scope boost.
func entityPool(ctx ParseContext, def CommandDef) ([]string, []string) {
	if len(def.Choices) > 0 {
		return def.Choices, normaliseAll(ctx.Nearby)
	}
	switch def.Canonical {
	case "eat", "drink", "cook", "place":
		inv := normaliseItems(ctx.Inventory)
		return inv, inv
	case "craft":
		return normaliseItems(ctx.Recipes), nil
	default:
		return nil, nil
	}
}

func normaliseAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if n := normaliseInput(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// normaliseItems keeps item ids matchable: "cooked_meat" stays one token.
func normaliseItems(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, v := range in {
		n := strings.ReplaceAll(normaliseInput(v), " ", "_")
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func bestMatches(token string, all []string, nearbyBoost []string, inventoryBoost []string) ([]string, float64, bool) {
	if len(all) == 0 || token == "" {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	boosted := make(map[string]float64, len(nearbyBoost)+len(inventoryBoost))
	for _, n := range nearbyBoost {
		boosted[n] += 0.08
	}
	for _, n := range inventoryBoost {
		boosted[n] += 0.08
	}

	lower := strings.ToLower(token)
	results := make([]scored, 0, len(all))
	for _, cand := range all {
		var score float64
		switch {
		case lower == strings.ToLower(cand):
			score = 1.0
		case len(lower) >= 2 && strings.HasPrefix(strings.ToLower(cand), lower):
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(lower, strings.ToLower(cand))
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: clampScore(score + boosted[cand])})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	if len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6 {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func buildEntityOptions(ctx ParseContext, verb string, maxOptions int) []Intent {
	var pool []string
	switch verb {
	case "craft":
		pool = normaliseItems(ctx.Recipes)
	case "place", "eat", "drink", "cook":
		pool = normaliseItems(ctx.Inventory)
	}
	options := make([]Intent, 0, maxOptions)
	for _, entity := range pool {
		options = append(options, Intent{
			Kind:       commandKind(verb),
			Verb:       verb,
			Args:       []string{entity},
			Confidence: 0.88,
		})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	switch {
	case containsAnyPhrase(n, "check my bag", "what do i have", "what have i got", "my inventory", "open bag"):
		return makeIntent(Query, "inventory", nil, 0.92)
	case containsAnyPhrase(n, "how am i", "am i ok", "how do i feel", "my health"):
		return makeIntent(Query, "status", nil, 0.9)
	case containsAnyPhrase(n, "i need a fire", "i need fire", "make a fire", "build fire", "start fire", "im freezing", "i m freezing", "so cold"):
		return makeIntent(Command, "place", []string{"campfire"}, 0.84)
	case containsAnyPhrase(n, "light torch", "light my torch", "light the torch", "too dark"):
		return makeIntent(Command, "torch", []string{"on"}, 0.86)
	case containsAnyPhrase(n, "put out torch", "put out my torch", "torch out", "douse torch"):
		return makeIntent(Command, "torch", []string{"off"}, 0.86)
	case containsAnyPhrase(n, "chop wood", "cut wood", "get wood", "need wood"):
		return makeIntent(Command, "chop", nil, 0.84)
	case containsAnyPhrase(n, "get stone", "need stone"):
		return makeIntent(Command, "mine", nil, 0.84)
	case containsAnyPhrase(n, "find food", "get apples", "need food"):
		return makeIntent(Command, "pick", nil, 0.8)
	case containsAnyPhrase(n, "what can i make", "what can i craft"):
		return makeIntent(Query, "recipes", nil, 0.9)
	case containsAnyPhrase(n, "build a shelter", "build shelter", "pitch a tent", "pitch tent"):
		return makeIntent(Command, "shelter", []string{"build"}, 0.84)
	}

	if dir := inferDirectionFromText(n); dir != "" {
		return makeIntent(Command, "go", []string{dir}, 0.86)
	}

	if containsWord(n, "eat") || containsWord(n, "hungry") {
		return withItem(ctx, makeIntent(Command, "eat", nil, 0.78))
	}
	if containsWord(n, "drink") || containsWord(n, "thirsty") {
		return makeIntent(Command, "drink", []string{"water"}, 0.78)
	}
	if containsWord(n, "sleep") || containsWord(n, "tired") {
		return makeIntent(Command, "sleep", nil, 0.8)
	}
	return nil
}

// withItem attaches the best-known edible item name mentioned in the text.
func withItem(ctx ParseContext, intent *Intent) *Intent {
	for _, token := range tokenise(intent.Normalised) {
		if matches, confidence, tie := bestMatches(token, normaliseItems(ctx.Inventory), nil, nil); !tie && len(matches) == 1 && confidence >= 0.9 {
			intent.Args = []string{matches[0]}
			return intent
		}
	}
	return intent
}

func inferDirectionFromText(normalised string) string {
	tokens := tokenise(normalised)
	for i, token := range tokens {
		mapped := mapDirection(token)
		if mapped == "" {
			continue
		}
		if i > 0 {
			switch tokens[i-1] {
			case "go", "walk", "head", "move", "run", "towards", "to":
				return mapped
			}
		}
		if i == 0 && len(tokens) == 1 {
			return mapped
		}
	}
	return ""
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	return containsPhrase(value, word)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders an intent back into canonical command text.
func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	for _, arg := range intent.Args {
		if n := strings.TrimSpace(strings.ToLower(arg)); n != "" {
			args = append(args, n)
		}
	}
	if intent.Quantity != nil && intent.Quantity.Raw != "" {
		args = append(args, normaliseInput(intent.Quantity.Raw))
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
