// Package engine provides the Apply() orchestrator that validates one intent,
// mutates the world, and advances the turn clock as a single atomic step.
package engine

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.uber.org/zap"

	"github.com/nathoo/manorhunt/engine/events"
	"github.com/nathoo/manorhunt/engine/snapshot"
	"github.com/nathoo/manorhunt/engine/world"
	"github.com/nathoo/manorhunt/types"
)

// Engine holds the world and the turn clock. All methods are safe for
// concurrent use; mutations are serialized and readers never observe a
// half-applied turn.
type Engine struct {
	mu      sync.RWMutex
	world   *world.World
	cfg     Config
	rng     Source
	log     *zap.Logger
	bus     *events.Bus
	session ulid.ULID

	turn    int
	queue   []types.PlayerID // front is the current player
	outcome types.Outcome
}

// New creates an engine for a validated manor definition.
func New(def *types.ManorDef, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, err := world.New(def)
	if err != nil {
		return nil, oops.In("engine").Wrapf(err, "building world")
	}
	rng := cfg.Source
	if rng == nil {
		rng = NewRNG(cfg.Seed)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		world:   w,
		cfg:     cfg,
		rng:     rng,
		bus:     events.NewBus(),
		session: ulid.Make(),
	}
	e.log = log.With(zap.String("session", e.session.String()))
	e.log.Info("game created",
		zap.String("manor", def.Name),
		zap.Int("rooms", len(def.Rooms)),
		zap.Int("items", len(def.Items)),
		zap.Int("max_turns", cfg.MaxTurns))
	return e, nil
}

// Session returns the unique id of this game.
func (e *Engine) Session() string {
	return e.session.String()
}

// Subscribe registers a handler for one event type ("" for all events).
// Handlers run after the turn's lock is released, so they may read the
// engine. A handler added mid-game sees events from later turns only.
func (e *Engine) Subscribe(eventType string, h events.Handler) {
	if eventType == "" {
		e.bus.OnAny(h)
		return
	}
	e.bus.On(eventType, h)
}

// AddPlayer places a new player in a room and appends them to the back of
// the turn queue. Capacity is the number of items they can carry.
func (e *Engine) AddPlayer(name string, room, capacity int, kind types.PlayerKind) (types.PlayerID, error) {
	e.mu.Lock()
	if e.outcome.Terminal() {
		e.mu.Unlock()
		return 0, oops.In("engine").Code("game_over").Wrapf(ErrGameOver, "adding %q", name)
	}
	id, err := e.world.AddPlayer(name, room, capacity, kind)
	if err != nil {
		e.mu.Unlock()
		return 0, err
	}
	e.queue = append(e.queue, id)
	evt := events.New(events.PlayerAdded, "player", name, "room", room, "kind", kind.String())
	e.mu.Unlock()

	e.log.Info("player added",
		zap.String("player", name),
		zap.Int("room", room),
		zap.Int("capacity", capacity),
		zap.Stringer("kind", kind))
	e.bus.Dispatch([]types.Event{evt})
	return id, nil
}

// CurrentPlayer returns whose turn it is. ok is false when there are no players.
func (e *Engine) CurrentPlayer() (id types.PlayerID, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.queue) == 0 {
		return 0, false
	}
	return e.queue[0], true
}

// CurrentKind reports whether the current player is human or computer.
func (e *Engine) CurrentKind() (types.PlayerKind, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.queue) == 0 {
		return types.Human, false
	}
	return e.world.Players[e.queue[0]].Kind, true
}

// Turn returns the number of accepted actions so far.
func (e *Engine) Turn() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.turn
}

// MaxTurns returns the configured turn limit.
func (e *Engine) MaxTurns() int {
	return e.cfg.MaxTurns
}

// Outcome returns the game status.
func (e *Engine) Outcome() types.Outcome {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.outcome
}

// IsTerminal reports whether the game has been won or the target escaped.
func (e *Engine) IsTerminal() bool {
	return e.Outcome().Terminal()
}

// Snapshot returns a read-only copy of the current world.
func (e *Engine) Snapshot() *snapshot.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot.Take(e.world, snapshot.Meta{
		Session:  e.session.String(),
		Turn:     e.turn,
		MaxTurns: e.cfg.MaxTurns,
		Outcome:  e.outcome,
		Queue:    e.queue,
	})
}

// DescribePlayer summarizes a player without consuming a turn.
func (e *Engine) DescribePlayer(id types.PlayerID) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.world.DescribePlayer(id)
}

// DescribeRoom summarizes a room without consuming a turn.
func (e *Engine) DescribeRoom(room int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.world.DescribeRoom(room)
}

// Apply processes one intent for the current player. Rejected intents return
// an error and leave the game untouched; accepted ones consume exactly one turn.
func (e *Engine) Apply(in types.Intent) (types.TurnReport, error) {
	e.mu.Lock()
	report, err := e.apply(in)
	e.mu.Unlock()
	return e.finish(in, report, err)
}

// PlayComputerTurn lets the current computer-controlled player decide and
// act.
func (e *Engine) PlayComputerTurn() (types.TurnReport, error) {
	e.mu.Lock()
	if err := e.checkPlayable(); err != nil {
		e.mu.Unlock()
		return types.TurnReport{}, err
	}
	pid := e.queue[0]
	if e.world.Players[pid].Kind != types.Computer {
		e.mu.Unlock()
		return types.TurnReport{}, oops.In("engine").Code("not_computer").
			Wrapf(ErrNotComputer, "%s is human", e.world.Players[pid].Name)
	}
	in := Decide(e.world, pid, e.rng)
	report, err := e.apply(in)
	e.mu.Unlock()
	return e.finish(in, report, err)
}

func (e *Engine) finish(in types.Intent, report types.TurnReport, err error) (types.TurnReport, error) {
	if err != nil {
		e.log.Debug("intent rejected",
			zap.Int("player", int(in.Player)),
			zap.Stringer("intent", in.Kind),
			zap.Error(err))
		return types.TurnReport{}, err
	}
	e.log.Info("turn played",
		zap.Int("turn", report.Turn),
		zap.Int("player", int(report.Player)),
		zap.Stringer("intent", in.Kind),
		zap.Int("target_room", report.TargetRoom),
		zap.Int("pet_room", report.PetRoom),
		zap.Stringer("status", report.Outcome.Status))
	e.bus.Dispatch(report.Events)
	return report, nil
}

func (e *Engine) checkPlayable() error {
	if e.outcome.Terminal() {
		return oops.In("engine").Code("game_over").With("status", e.outcome.Status.String()).
			Wrapf(ErrGameOver, "turn %d", e.turn)
	}
	if len(e.queue) == 0 {
		return oops.In("engine").Code("no_players").Wrapf(ErrNoPlayers, "add a player first")
	}
	return nil
}

// apply runs one intent. The caller holds the write lock.
func (e *Engine) apply(in types.Intent) (types.TurnReport, error) {
	if err := e.checkPlayable(); err != nil {
		return types.TurnReport{}, err
	}
	if in.Player != e.queue[0] {
		return types.TurnReport{}, oops.In("engine").Code("not_your_turn").
			With("player", int(in.Player)).With("current", int(e.queue[0])).
			Wrapf(ErrNotYourTurn, "it is %s's turn", e.world.Players[e.queue[0]].Name)
	}

	report := types.TurnReport{Player: in.Player, Intent: in}
	var err error
	switch in.Kind {
	case types.IntentMove:
		err = e.doMove(&report, in)
	case types.IntentMovePet:
		err = e.doMovePet(&report, in)
	case types.IntentLook:
		err = e.doLook(&report, in)
	case types.IntentPick:
		err = e.doPick(&report, in)
	case types.IntentAttack:
		err = e.doAttack(&report, in)
	default:
		err = oops.In("engine").Code("unknown_intent").Wrapf(ErrUnknownIntent, "intent kind %d", in.Kind)
	}
	if err != nil {
		return types.TurnReport{}, err
	}

	e.endTurn(&report, in)
	return report, nil
}

// endTurn advances the clock after an accepted action: count the turn, stop
// if the target just died, otherwise move the target (and the wandering pet),
// rotate the queue and check the turn limit.
func (e *Engine) endTurn(r *types.TurnReport, in types.Intent) {
	e.turn++
	r.Turn = e.turn

	if e.outcome.Status != types.Won {
		room := e.world.AdvanceTarget()
		r.Events = append(r.Events, events.New(events.TargetMoved, "room", room))
		r.Output = append(r.Output, e.world.Target.Name+" moves to "+e.world.Rooms[room].Name+".")

		if e.cfg.PetWanders && in.Kind != types.IntentMovePet {
			from := e.world.Pet.Room
			if to := e.world.AdvancePet(); to != from {
				r.Events = append(r.Events, events.New(events.PetMoved, "room", to, "wandered", true))
			}
		}

		e.queue = append(e.queue[1:], e.queue[0])

		if e.turn >= e.cfg.MaxTurns {
			e.outcome = types.Outcome{Status: types.Escaped}
			r.Events = append(r.Events, events.New(events.TargetEscaped, "turn", e.turn))
			r.Output = append(r.Output, "Out of turns. "+e.world.Target.Name+" escapes! Game over.")
		}
	}

	r.TargetRoom = e.world.Target.Room
	r.PetRoom = e.world.Pet.Room
	r.Outcome = e.outcome
}

func (e *Engine) doMove(r *types.TurnReport, in types.Intent) error {
	if err := e.world.MovePlayer(in.Player, in.Room); err != nil {
		return err
	}
	p := e.world.Players[in.Player]
	r.Events = append(r.Events, events.New(events.PlayerMoved, "player", p.Name, "room", in.Room))
	r.Output = append(r.Output, p.Name+" moves to "+e.world.Rooms[in.Room].Name+".")
	return nil
}

func (e *Engine) doMovePet(r *types.TurnReport, in types.Intent) error {
	if err := e.world.MovePet(in.Room); err != nil {
		return err
	}
	p := e.world.Players[in.Player]
	r.Events = append(r.Events, events.New(events.PetMoved, "room", in.Room, "player", p.Name))
	r.Output = append(r.Output, p.Name+" moves "+e.world.Pet.Name+" to "+e.world.Rooms[in.Room].Name+".")
	return nil
}

func (e *Engine) doLook(r *types.TurnReport, in types.Intent) error {
	look, err := e.world.LookAround(in.Player)
	if err != nil {
		return err
	}
	name := e.world.Players[in.Player].Name
	r.Look = &look
	r.Events = append(r.Events, events.New(events.LookedAround, "player", name))
	r.Output = append(r.Output, e.narrateLook(name, look)...)
	return nil
}

func (e *Engine) doPick(r *types.TurnReport, in types.Intent) error {
	it, err := e.world.PickItem(in.Player, in.Index)
	if err != nil {
		return err
	}
	p := e.world.Players[in.Player]
	r.Events = append(r.Events, events.New(events.ItemPicked, "player", p.Name, "item", it.Name, "damage", it.Damage))
	r.Output = append(r.Output, p.Name+" picks up "+it.Name+".")
	return nil
}
