// Package console drives a Simulation from typed commands. It backs the
// headless REPL and the bridge's command channel.
package console

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/parser"
	"github.com/appengine-ltd/wildlands/internal/platform/logger"
	"github.com/appengine-ltd/wildlands/internal/store"
)

// Result mirrors one command round trip. Handled is false when the input
// could not be mapped onto any verb.
type Result struct {
	Handled bool   `json:"handled"`
	Message string `json:"message"`
}

type Console struct {
	sim    *game.Simulation
	parser *parser.Parser
	store  store.Store
	log    *logger.Logger

	mu         sync.Mutex
	lastEntity string
}

// New wires a console to sim. saves may be nil, which disables save/load.
func New(sim *game.Simulation, saves store.Store, log *logger.Logger) *Console {
	return &Console{
		sim:    sim,
		parser: parser.New(),
		store:  saves,
		log:    log,
	}
}

// Execute parses raw and applies it. Game notifications raised while the
// command ran are appended to the reply.
func (c *Console) Execute(ctx context.Context, raw string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.sim.View()
	intent := c.parser.Parse(c.parseContext(before), raw)
	if intent.Clarify != nil {
		return Result{Handled: intent.Kind != parser.Unknown, Message: clarifyText(intent.Clarify)}
	}

	res := c.dispatch(ctx, before, intent)
	if len(intent.Args) > 0 {
		c.lastEntity = intent.Args[0]
	}
	if notes := newNotifications(before, c.sim.View()); len(notes) > 0 {
		res.Message = strings.TrimSpace(res.Message + "\n" + strings.Join(notes, "\n"))
	}
	c.log.Infof("console %q -> %s", raw, parser.IntentToCommandString(intent))
	return res
}

func (c *Console) parseContext(v game.View) parser.ParseContext {
	ctx := parser.ParseContext{
		Inventory:  v.Inventory.SortedIDs(),
		LastEntity: c.lastEntity,
	}
	for _, kind := range game.ResourceKinds() {
		if v.ResourceCount(kind) > 0 {
			ctx.Nearby = append(ctx.Nearby, string(kind))
		}
	}
	for _, a := range v.Wildlife {
		if !slices.Contains(ctx.Nearby, string(a.Species)) {
			ctx.Nearby = append(ctx.Nearby, string(a.Species))
		}
	}
	for _, r := range game.Recipes() {
		ctx.Recipes = append(ctx.Recipes, r.ID)
	}
	return ctx
}

func (c *Console) dispatch(ctx context.Context, v game.View, intent parser.Intent) Result {
	verb := intent.Verb
	if v.Phase == game.PhaseDead && !allowedWhenDead(verb) {
		return Result{Handled: true, Message: "You are dead. Type reset to start over, or load a save."}
	}

	switch verb {
	case "help":
		return Result{Handled: true, Message: helpText}
	case "status":
		return Result{Handled: true, Message: renderStatus(v)}
	case "inventory":
		return Result{Handled: true, Message: renderInventory(v, c.sim.Capacity())}
	case "recipes":
		return Result{Handled: true, Message: renderRecipes()}
	case "weather":
		return Result{Handled: true, Message: renderWeather(v)}
	case "harvest":
		return c.executeHarvest(v, firstArg(intent))
	case "chop":
		return c.executeHarvest(v, string(game.ResourceTree))
	case "mine":
		return c.executeHarvest(v, string(game.ResourceRock))
	case "pick":
		return c.executeHarvest(v, string(game.ResourceBush))
	case "hunt":
		return c.executeHunt(v, firstArg(intent))
	case "shoot":
		return c.executeShoot(v, intent.Args)
	case "eat":
		return c.executeEat(v, firstArg(intent))
	case "drink":
		return c.executeDrink(v, firstArg(intent))
	case "cook":
		return c.executeCook(v, firstArg(intent))
	case "fill":
		return c.executeFill()
	case "craft":
		return c.executeCraft(firstArg(intent), intent.Quantity)
	case "place":
		return c.executePlace(v, firstArg(intent))
	case "shelter":
		return c.executeShelter(v, firstArg(intent))
	case "go":
		return c.executeGo(v, firstArg(intent), intent.Quantity)
	case "torch":
		return c.executeTorch(v, firstArg(intent))
	case "sleep":
		return c.executeSleep()
	case "wait":
		return c.executeWait(intent.Quantity)
	case "pause":
		c.sim.SetPaused(true)
		return Result{Handled: true, Message: fmt.Sprintf("Phase: %s.", c.sim.Phase())}
	case "resume":
		c.sim.SetPaused(false)
		return Result{Handled: true, Message: fmt.Sprintf("Phase: %s.", c.sim.Phase())}
	case "language":
		return c.executeLanguage(firstArg(intent))
	case "save":
		return c.executeSave(ctx, firstArg(intent))
	case "load":
		return c.executeLoad(ctx, firstArg(intent))
	case "saves":
		return c.executeListSaves(ctx)
	case "reset":
		c.sim.Reset()
		return Result{Handled: true, Message: "A new run begins. Day 1."}
	default:
		return Result{Handled: false, Message: fmt.Sprintf("Unknown command %q. Type help.", verb)}
	}
}

func allowedWhenDead(verb string) bool {
	switch verb {
	case "help", "status", "inventory", "recipes", "weather", "language", "load", "saves", "reset":
		return true
	default:
		return false
	}
}

func firstArg(intent parser.Intent) string {
	if len(intent.Args) == 0 {
		return ""
	}
	return intent.Args[0]
}

func clarifyText(q *parser.ClarifyQuestion) string {
	if len(q.Options) == 0 {
		return q.Prompt
	}
	options := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		options = append(options, parser.IntentToCommandString(o))
	}
	return q.Prompt + " " + strings.Join(options, " | ")
}

func newNotifications(before, after game.View) []string {
	seen := make(map[string]bool, len(before.Notifications))
	for _, n := range before.Notifications {
		seen[n.ID] = true
	}
	var out []string
	for _, n := range after.Notifications {
		if !seen[n.ID] {
			out = append(out, "* "+n.Message)
		}
	}
	return out
}

const helpText = `Commands:
  status | inventory | recipes | weather
  harvest [tree|rock|bush] | chop | mine | pick
  hunt [species] | shoot <dx> <dz>
  eat [item] | drink | cook [item] | fill
  craft <recipe> [times] | place campfire | shelter build|upgrade
  go <n|s|e|w> [units] | torch [on|off] | sleep | wait <seconds>
  pause | resume | language <en|tr>
  save [slot] | load [slot] | saves | reset`
