// Package profileview keeps the observable profile state shown to players:
// loading, loaded with a profile, or failed with a message
package profileview

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/orchestrators/codex"
)

// Status is the coarse state of a hero's profile view
type Status string

// View statuses
const (
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// State is one observation of a hero's profile
type State struct {
	HeroID  string
	Status  Status
	Profile *hero.Profile
	Message string
}

func (s State) clone() State {
	s.Profile = s.Profile.Clone()
	return s
}

// Config holds the dependencies for the presenter
type Config struct {
	Service codex.Service
	// EventBus is optional; when set, profile writes made by other callers
	// update the view
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.Service == nil {
		vb.RequiredField("Service")
	}
	return vb.Build()
}

// Presenter drives profile operations and publishes their state to
// subscribers. Subscribers see the latest state only; intermediate states
// may be skipped for slow readers.
type Presenter struct {
	service codex.Service
	bus     events.EventBus

	mu            sync.Mutex
	states        map[string]State
	subscribers   map[string]map[int]chan State
	nextID        int
	subscriptions []string
	closed        bool
}

// New creates a presenter
func New(cfg *Config) (*Presenter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := &Presenter{
		service:     cfg.Service,
		bus:         cfg.EventBus,
		states:      make(map[string]State),
		subscribers: make(map[string]map[int]chan State),
	}

	if p.bus != nil {
		for _, eventType := range []string{hero.EventProfilePersisted, hero.EventProfileRefreshed} {
			p.subscriptions = append(p.subscriptions, p.bus.SubscribeFunc(eventType, 0, p.handleEvent))
		}
	}

	return p, nil
}

// PrepareHeroProfile loads or creates the hero's profile
func (p *Presenter) PrepareHeroProfile(ctx context.Context, h *hero.Hero, customName string) (State, error) {
	if h == nil {
		return State{}, errors.InvalidArgument("hero is required")
	}
	p.set(State{HeroID: h.ID, Status: StatusLoading})

	out, err := p.service.PrepareHeroProfile(ctx, &codex.PrepareHeroProfileInput{
		Hero:       h,
		CustomName: customName,
	})
	if err != nil {
		return p.fail(ctx, h.ID, err), err
	}
	return p.loaded(out.Profile), nil
}

// UpdateInventory saves a changed profile
func (p *Presenter) UpdateInventory(ctx context.Context, profile *hero.Profile) (State, error) {
	if profile == nil || profile.Hero == nil {
		return State{}, errors.InvalidArgument("profile is required")
	}
	p.set(State{HeroID: profile.Hero.ID, Status: StatusLoading, Profile: profile.Clone()})

	out, err := p.service.UpdateInventory(ctx, &codex.UpdateInventoryInput{Profile: profile})
	if err != nil {
		return p.fail(ctx, profile.Hero.ID, err), err
	}
	return p.loaded(out.Profile), nil
}

// RefreshFromRemote pulls the remote copy of the hero's inventory. A hero
// without a local profile ends in the error state.
func (p *Presenter) RefreshFromRemote(ctx context.Context, heroID string) (State, error) {
	if heroID == "" {
		return State{}, errors.InvalidArgument("hero ID is required")
	}
	p.set(State{HeroID: heroID, Status: StatusLoading})

	out, err := p.service.RefreshFromRemote(ctx, &codex.RefreshFromRemoteInput{HeroID: heroID})
	if err != nil {
		return p.fail(ctx, heroID, err), err
	}
	if out.Profile == nil {
		err := errors.NotFoundf("hero %s has no local profile", heroID)
		return p.fail(ctx, heroID, err), err
	}
	return p.loaded(out.Profile), nil
}

// Current returns the latest state of a hero, if any operation touched it
func (p *Presenter) Current(heroID string) (State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.states[heroID]
	if !ok {
		return State{}, false
	}
	return st.clone(), true
}

// Subscribe returns a channel carrying the hero's states, starting with the
// current one when it exists, and a function that ends the subscription.
// The channel is closed by the cancel function or by Close.
func (p *Presenter) Subscribe(heroID string) (<-chan State, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan State, 1)
	if p.closed {
		close(ch)
		return ch, func() {}
	}

	id := p.nextID
	p.nextID++
	if p.subscribers[heroID] == nil {
		p.subscribers[heroID] = make(map[int]chan State)
	}
	p.subscribers[heroID][id] = ch

	if st, ok := p.states[heroID]; ok {
		ch <- st.clone()
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if subs, ok := p.subscribers[heroID]; ok {
				if c, ok := subs[id]; ok {
					delete(subs, id)
					close(c)
				}
				if len(subs) == 0 {
					delete(p.subscribers, heroID)
				}
			}
		})
	}
	return ch, cancel
}

// Close ends every subscription and detaches from the event bus
func (p *Presenter) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for heroID, subs := range p.subscribers {
		for _, ch := range subs {
			close(ch)
		}
		delete(p.subscribers, heroID)
	}
	subscriptions := p.subscriptions
	p.subscriptions = nil
	p.mu.Unlock()

	// the bus may be delivering to handleEvent, which takes p.mu
	if p.bus != nil {
		for _, id := range subscriptions {
			_ = p.bus.Unsubscribe(id)
		}
	}
}

func (p *Presenter) handleEvent(_ context.Context, e events.Event) error {
	profile, ok := e.Target().(*hero.Profile)
	if !ok || profile == nil || profile.Hero == nil {
		return nil
	}
	p.loaded(profile)
	return nil
}

func (p *Presenter) loaded(profile *hero.Profile) State {
	st := State{HeroID: profile.Hero.ID, Status: StatusLoaded, Profile: profile.Clone()}
	p.set(st)
	return st
}

// fail records the error state. Only local failures reach here; remote
// failures are absorbed by the orchestrator.
func (p *Presenter) fail(ctx context.Context, heroID string, err error) State {
	if errors.IsCanceled(err) {
		slog.InfoContext(ctx, "Profile operation canceled",
			"hero_id", heroID,
			"error", err)
	} else {
		slog.WarnContext(ctx, "Profile operation failed",
			"hero_id", heroID,
			"error", err)
	}

	st := State{HeroID: heroID, Status: StatusError, Message: errors.GetMessage(err)}
	p.set(st)
	return st
}

func (p *Presenter) set(st State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.states[st.HeroID] = st
	for _, ch := range p.subscribers[st.HeroID] {
		deliver(ch, st.clone())
	}
}

// deliver replaces any unread state so the channel holds the latest one
func deliver(ch chan State, st State) {
	select {
	case ch <- st:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- st:
	default:
	}
}
