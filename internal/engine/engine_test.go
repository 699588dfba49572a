package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/duotone/internal/application/port"
	"github.com/bnema/duotone/internal/domain/appearance"
)

// fakeStore implements port.SettingsStore with synchronous notification
// delivery, modeling GSettings emitting "changed" in the same main-loop
// iteration as the write.
type fakeStore struct {
	values  map[string]string
	lists   map[string][]string
	subs    []*fakeSub
	writes  []string
	resets  []string
	failSet map[string]error
}

type fakeSub struct {
	key    string
	fn     func()
	active bool
}

func newFakeStore(seed map[string]string) *fakeStore {
	values := make(map[string]string)
	for k, v := range seed {
		values[k] = v
	}
	return &fakeStore{
		values:  values,
		lists:   make(map[string][]string),
		failSet: make(map[string]error),
	}
}

func (s *fakeStore) String(key string) string { return s.values[key] }

func (s *fakeStore) SetString(key, value string) error {
	if err := s.failSet[key]; err != nil {
		return err
	}
	s.values[key] = value
	s.writes = append(s.writes, key)
	s.notify(key)
	return nil
}

func (s *fakeStore) Reset(key string) {
	delete(s.values, key)
	s.resets = append(s.resets, key)
	s.notify(key)
}

func (s *fakeStore) Strv(key string) []string { return s.lists[key] }

func (s *fakeStore) Subscribe(key string, fn func()) func() {
	sub := &fakeSub{key: key, fn: fn, active: true}
	s.subs = append(s.subs, sub)
	return func() { sub.active = false }
}

func (s *fakeStore) notify(key string) {
	for _, sub := range s.subs {
		if sub.active && sub.key == key {
			sub.fn()
		}
	}
}

func (s *fakeStore) liveSubs() int {
	n := 0
	for _, sub := range s.subs {
		if sub.active {
			n++
		}
	}
	return n
}

// fakeProvider maps schema ids to fake stores.
type fakeProvider struct {
	stores map[string]*fakeStore
}

func (p *fakeProvider) Open(schemaID string) (port.SettingsStore, error) {
	st, ok := p.stores[schemaID]
	if !ok {
		return nil, fmt.Errorf("schema %q not installed", schemaID)
	}
	return st, nil
}

func (p *fakeProvider) OpenOptional(schemaID string) (port.SettingsStore, bool) {
	st, ok := p.stores[schemaID]
	if !ok {
		return nil, false
	}
	return st, true
}

// fakeFS records copies; paths present in files exist.
type fakeFS struct {
	files   map[string]bool
	copies  [][2]string
	copyErr error
}

func (f *fakeFS) Exists(_ context.Context, path string) (bool, error) {
	return f.files[path], nil
}

func (f *fakeFS) Copy(_ context.Context, src, dst string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.files[dst] = true
	f.copies = append(f.copies, [2]string{src, dst})
	return nil
}

// manualDispatcher queues posted closures; run drains them on the test
// goroutine, which plays the role of the main loop.
type manualDispatcher struct {
	mu    sync.Mutex
	queue []func()
}

func (d *manualDispatcher) Post(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = append(d.queue, fn)
}

func (d *manualDispatcher) run() int {
	n := 0
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return n
		}
		fn := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()
		fn()
		n++
	}
}

type fakePublisher struct {
	published [][]string
}

func (p *fakePublisher) PublishToggleAccels(accels []string) {
	p.published = append(p.published, accels)
}

// harness wires an engine against fakes with every schema installed.
type harness struct {
	t    *testing.T
	cfg  Config
	bg   *fakeStore
	ifc  *fakeStore
	user *fakeStore
	priv *fakeStore
	fs   *fakeFS
	disp *manualDispatcher
	pub  *fakePublisher
	e    *Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DebounceDelay = 2 * time.Millisecond
	h := &harness{
		t:   t,
		cfg: cfg,
		bg: newFakeStore(map[string]string{
			appearance.KeyPictureURI:     "file:///w/meadow.jpg",
			appearance.KeyPictureURIDark: "file:///w/forest.jpg",
		}),
		ifc: newFakeStore(map[string]string{
			appearance.KeyColorScheme: appearance.ColorSchemeDefault,
			"gtk-theme":               "Adwaita",
			"icon-theme":              "Adwaita",
			"cursor-theme":            "Adwaita",
			"accent-color":            "blue",
		}),
		user: newFakeStore(map[string]string{
			appearance.KeyUserThemeName: "",
		}),
		priv: newFakeStore(nil),
		fs:   &fakeFS{files: make(map[string]bool)},
		disp: &manualDispatcher{},
		pub:  &fakePublisher{},
	}
	return h
}

func (h *harness) provider() *fakeProvider {
	return &fakeProvider{stores: map[string]*fakeStore{
		h.cfg.BackgroundSchema: h.bg,
		h.cfg.InterfaceSchema:  h.ifc,
		h.cfg.UserThemeSchema:  h.user,
		h.cfg.PrivateSchema:    h.priv,
	}}
}

func (h *harness) start() {
	h.t.Helper()
	h.e = New(Deps{
		Stores:     h.provider(),
		FS:         h.fs,
		Dispatcher: h.disp,
		Publisher:  h.pub,
		Logger:     zerolog.Nop(),
		Config:     h.cfg,
	})
	require.NoError(h.t, h.e.Start(context.Background()))
	h.t.Cleanup(h.e.Stop)
}

// settle pumps the dispatcher until cond holds, giving debounce timers
// time to fire.
func (h *harness) settle(cond func() bool) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		h.disp.run()
		return cond()
	}, time.Second, time.Millisecond)
}

func (h *harness) totalLiveWrites() int {
	return len(h.ifc.writes) + len(h.user.writes)
}

func TestStartFailsWithoutMandatoryStores(t *testing.T) {
	h := newHarness(t)
	provider := &fakeProvider{stores: map[string]*fakeStore{
		h.cfg.UserThemeSchema: h.user,
		h.cfg.PrivateSchema:   h.priv,
	}}
	e := New(Deps{
		Stores:     provider,
		FS:         h.fs,
		Dispatcher: h.disp,
		Logger:     zerolog.Nop(),
		Config:     h.cfg,
	})

	err := e.Start(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, h.cfg.BackgroundSchema)
	assert.ErrorContains(t, err, h.cfg.InterfaceSchema)

	// Teardown ran: no registrations survive, stop stays safe.
	assert.Equal(t, 0, h.user.liveSubs())
	assert.Equal(t, 0, h.priv.liveSubs())
	e.Stop()
	e.Stop()
}

func TestStartFailsWithOneMandatoryStoreMissing(t *testing.T) {
	h := newHarness(t)
	provider := h.provider()
	delete(provider.stores, h.cfg.InterfaceSchema)
	e := New(Deps{
		Stores:     provider,
		FS:         h.fs,
		Dispatcher: h.disp,
		Logger:     zerolog.Nop(),
		Config:     h.cfg,
	})

	err := e.Start(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, h.cfg.InterfaceSchema)
	assert.NotContains(t, err.Error(), h.cfg.BackgroundSchema)
	assert.Equal(t, 0, h.bg.liveSubs())
}

func TestOptionalStoresDegrade(t *testing.T) {
	h := newHarness(t)
	h.priv.values["dark-gtk-theme"] = "Adwaita-dark"
	h.priv.values["dark-shell-theme"] = "Yaru-dark"
	provider := h.provider()
	delete(provider.stores, h.cfg.UserThemeSchema)
	h.e = New(Deps{
		Stores:     provider,
		FS:         h.fs,
		Dispatcher: h.disp,
		Logger:     zerolog.Nop(),
		Config:     h.cfg,
	})
	require.NoError(t, h.e.Start(context.Background()))
	defer h.e.Stop()

	// Shell theme degrades to a permanent no-op; the rest still applies.
	h.e.ApplyMode(appearance.ModeDark)
	assert.Equal(t, "Adwaita-dark", h.ifc.String("gtk-theme"))
	assert.Empty(t, h.user.writes)
}

func TestStopReleasesEverything(t *testing.T) {
	h := newHarness(t)
	h.start()
	require.Positive(t, h.bg.liveSubs())
	require.Positive(t, h.ifc.liveSubs())

	h.e.Stop()
	assert.Equal(t, 0, h.bg.liveSubs())
	assert.Equal(t, 0, h.ifc.liveSubs())
	assert.Equal(t, 0, h.user.liveSubs())
	assert.Equal(t, 0, h.priv.liveSubs())

	// Idempotent, and notifications after stop reach nothing.
	h.e.Stop()
	require.NoError(t, h.ifc.SetString("gtk-theme", "Nordic"))
	assert.Empty(t, h.priv.writes)
}

func TestApplyThemeAndIdempotence(t *testing.T) {
	h := newHarness(t)
	h.priv.values["dark-gtk-theme"] = "Adwaita-dark"
	h.priv.values["dark-icon-theme"] = "Papirus-Dark"
	h.priv.values["dark-cursor-theme"] = "Bibata"
	h.priv.values["dark-shell-theme"] = "Yaru-dark"
	// dark-accent-color deliberately absent (Scenario C).
	h.start()

	h.e.ApplyMode(appearance.ModeDark)
	assert.Equal(t, "Adwaita-dark", h.ifc.String("gtk-theme"))
	assert.Equal(t, "Papirus-Dark", h.ifc.String("icon-theme"))
	assert.Equal(t, "Bibata", h.ifc.String("cursor-theme"))
	assert.Equal(t, "Yaru-dark", h.user.String(appearance.KeyUserThemeName))
	assert.Equal(t, "blue", h.ifc.String("accent-color"), "empty stored value must leave live setting untouched")

	// A second immediate apply performs zero additional writes.
	before := h.totalLiveWrites()
	h.e.ApplyMode(appearance.ModeDark)
	assert.Equal(t, before, h.totalLiveWrites())
}

func TestShellThemeDefaultSentinelResets(t *testing.T) {
	h := newHarness(t)
	h.user.values[appearance.KeyUserThemeName] = "Yaru"
	h.priv.values["dark-shell-theme"] = appearance.ShellThemeDefault
	h.start()

	h.e.ApplyMode(appearance.ModeDark)
	assert.Equal(t, []string{appearance.KeyUserThemeName}, h.user.resets)

	// Already at default: no second reset.
	h.e.ApplyMode(appearance.ModeDark)
	assert.Len(t, h.user.resets, 1)
}

func TestSaveParameter(t *testing.T) {
	h := newHarness(t)
	h.start()

	require.NoError(t, h.ifc.SetString("gtk-theme", "Nordic"))
	assert.Equal(t, "Nordic", h.priv.String("light-gtk-theme"))

	// Dark mode saves under the dark prefix.
	require.NoError(t, h.ifc.SetString(appearance.KeyColorScheme, appearance.ColorSchemePreferDark))
	require.NoError(t, h.ifc.SetString("icon-theme", "Papirus-Dark"))
	assert.Equal(t, "Papirus-Dark", h.priv.String("dark-icon-theme"))
	assert.Empty(t, h.priv.String("light-icon-theme"))
}

func TestSaveParameterValidation(t *testing.T) {
	h := newHarness(t)
	h.start()

	ok := strings.Repeat("a", 100)
	require.NoError(t, h.ifc.SetString("gtk-theme", ok))
	assert.Equal(t, ok, h.priv.String("light-gtk-theme"))

	tooLong := strings.Repeat("b", 101)
	require.NoError(t, h.ifc.SetString("gtk-theme", tooLong))
	assert.Equal(t, ok, h.priv.String("light-gtk-theme"), "oversized value must be treated as absent")
}

func TestFeedbackSuppression(t *testing.T) {
	h := newHarness(t)
	h.priv.values["dark-gtk-theme"] = "Adwaita-dark"
	h.priv.values["dark-icon-theme"] = "Papirus-Dark"
	h.start()

	before := len(h.priv.writes)
	// Apply writes live keys, which synchronously re-enter the save
	// handlers; suspendSave must absorb every one of them.
	h.e.ApplyMode(appearance.ModeDark)
	assert.Equal(t, before, len(h.priv.writes))
}

func TestRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.start()

	require.NoError(t, h.ifc.SetString("gtk-theme", "Nordic"))

	require.NoError(t, h.ifc.SetString(appearance.KeyColorScheme, appearance.ColorSchemePreferDark))
	require.NoError(t, h.ifc.SetString("gtk-theme", "Adwaita-dark"))

	require.NoError(t, h.ifc.SetString(appearance.KeyColorScheme, appearance.ColorSchemeDefault))
	assert.Equal(t, "Nordic", h.ifc.String("gtk-theme"), "switching back must restore the saved value")
}

func TestToggle(t *testing.T) {
	h := newHarness(t)
	h.priv.values["dark-gtk-theme"] = "Adwaita-dark"
	h.priv.values["light-gtk-theme"] = "Adwaita"
	h.start()

	h.e.Toggle()
	assert.Equal(t, appearance.ColorSchemePreferDark, h.ifc.String(appearance.KeyColorScheme))
	assert.Equal(t, appearance.ModeDark, h.e.Mode())
	assert.Equal(t, "Adwaita-dark", h.ifc.String("gtk-theme"), "apply rides on the color-scheme change")

	h.e.Toggle()
	assert.Equal(t, appearance.ColorSchemeDefault, h.ifc.String(appearance.KeyColorScheme))
	assert.Equal(t, "Adwaita", h.ifc.String("gtk-theme"))
}

func TestBidirectionalEdit(t *testing.T) {
	h := newHarness(t)
	h.start()
	require.NoError(t, h.ifc.SetString(appearance.KeyColorScheme, appearance.ColorSchemePreferDark))

	// Editing the active mode's key mirrors immediately.
	require.NoError(t, h.priv.SetString("dark-gtk-theme", "Dracula"))
	assert.Equal(t, "Dracula", h.ifc.String("gtk-theme"))

	// Editing the inactive mode's key does nothing until a switch.
	require.NoError(t, h.priv.SetString("light-gtk-theme", "Nordic"))
	assert.Equal(t, "Dracula", h.ifc.String("gtk-theme"))

	// With suspendApply set the edit is our own save echo: ignored.
	h.e.suspendApply = true
	require.NoError(t, h.priv.SetString("dark-gtk-theme", "Catppuccin"))
	assert.Equal(t, "Dracula", h.ifc.String("gtk-theme"))
	h.e.suspendApply = false
}

func TestBidirectionalDisabled(t *testing.T) {
	h := newHarness(t)
	h.cfg.Bidirectional = false
	h.start()
	require.NoError(t, h.ifc.SetString(appearance.KeyColorScheme, appearance.ColorSchemePreferDark))

	require.NoError(t, h.priv.SetString("dark-gtk-theme", "Dracula"))
	assert.Equal(t, "Adwaita", h.ifc.String("gtk-theme"))
}

func TestAccelPublishing(t *testing.T) {
	h := newHarness(t)
	h.priv.lists[appearance.KeyToggleShortcut] = []string{"<Super>d"}
	h.start()

	require.Len(t, h.pub.published, 1)
	assert.Equal(t, []string{"<Super>d"}, h.pub.published[0])

	h.priv.lists[appearance.KeyToggleShortcut] = []string{"<Super><Shift>d"}
	h.priv.notify(appearance.KeyToggleShortcut)
	require.Len(t, h.pub.published, 2)
	assert.Equal(t, []string{"<Super><Shift>d"}, h.pub.published[1])
}

func TestStartTwiceFails(t *testing.T) {
	h := newHarness(t)
	h.start()
	assert.Error(t, h.e.Start(context.Background()))
}
