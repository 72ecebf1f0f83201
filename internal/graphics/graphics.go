// Package graphics renders and caches the images shown on each bank of the control surface.
//
// A Graphics value owns the per-bank image cache, the pushed set and a copy of the display
// settings. Saved styles, page names, variables, action state and feedback overrides are
// read through the collaborator interfaces given to New.
package graphics

import (
	"image"
	"sync"
	"time"

	"github.com/rook-computer/deckgfx/internal/logging"
	"github.com/rook-computer/deckgfx/internal/render"
)

const component = "graphics"

// DefaultTopbarDelay is how long a topbar visibility change waits before every bank is redrawn.
const DefaultTopbarDelay = time.Second

// ConfigSource supplies saved bank styles and page names.
type ConfigSource interface {
	BankStyle(page, bank int) (BankStyle, bool)
	PageName(page int) (string, bool)
}

// Listener receives the renderer's outbound notifications.
type Listener interface {
	// BankBackground reports the resolved background colour of a bank, 0 when it has none.
	BankBackground(c Coordinate, color int)
	// BankInvalidated reports that the cached image of a bank changed.
	BankInvalidated(c Coordinate)
}

// Variables resolves variable references in button text.
type Variables interface {
	Parse(text string) string
}

// ActionStatus is the last execution result of a bank's actions.
type ActionStatus int

const (
	ActionStatusOK ActionStatus = iota
	ActionStatusWarning
	ActionStatusError
)

// Actions reports per-bank action state.
type Actions interface {
	Status(c Coordinate) ActionStatus
	Running(c Coordinate) bool
}

// Feedbacks supplies style overrides computed from feedback rules.
type Feedbacks interface {
	Style(c Coordinate) *StyleOverride
	// CheckAllBanks re-evaluates every feedback. It runs right before a delayed full redraw.
	CheckAllBanks()
}

type emptySource struct{}

func (emptySource) BankStyle(int, int) (BankStyle, bool) { return BankStyle{}, false }
func (emptySource) PageName(int) (string, bool)          { return "", false }

type NoopListener struct{}

func (NoopListener) BankBackground(Coordinate, int) {}
func (NoopListener) BankInvalidated(Coordinate)     {}

// Listeners fans notifications out in order.
type Listeners []Listener

func (ls Listeners) BankBackground(c Coordinate, color int) {
	for _, l := range ls {
		l.BankBackground(c, color)
	}
}

func (ls Listeners) BankInvalidated(c Coordinate) {
	for _, l := range ls {
		l.BankInvalidated(c)
	}
}

type NoopVariables struct{}

func (NoopVariables) Parse(text string) string { return text }

type NoopActions struct{}

func (NoopActions) Status(Coordinate) ActionStatus { return ActionStatusOK }
func (NoopActions) Running(Coordinate) bool        { return false }

type NoopFeedbacks struct{}

func (NoopFeedbacks) Style(Coordinate) *StyleOverride { return nil }
func (NoopFeedbacks) CheckAllBanks()                  {}

// Options configures a Graphics. Zero values select the defaults and no-op collaborators.
type Options struct {
	MaxButtons  int
	UserConfig  UserConfig
	TopbarDelay time.Duration

	Listener  Listener
	Variables Variables
	Actions   Actions
	Feedbacks Feedbacks
	Logger    logging.Logger

	// Now is the clock stamped on rendered images.
	Now func() time.Time
}

// BankImage is an exported bank image.
type BankImage struct {
	Buffer  []byte     `json:"-"`
	Updated time.Time  `json:"updated"`
	Style   *BankStyle `json:"style,omitempty"`
}

// Image rebuilds the picture from the exported buffer.
func (b BankImage) Image() (*image.RGBA, error) {
	return render.ImageFromBuffer(b.Buffer, render.BankSize, render.BankSize)
}

// PincodeImageSet holds the digit pad images 0-9 followed by the lockout screen.
type PincodeImageSet [11]BankImage

// Graphics renders bank images and keeps the cache of the latest image per bank.
type Graphics struct {
	mu sync.Mutex

	source    ConfigSource
	listener  Listener
	variables Variables
	actions   Actions
	feedbacks Feedbacks
	log       logging.Logger
	now       func() time.Time

	maxButtons  int
	topbarDelay time.Duration
	userConfig  UserConfig

	buffers  map[Coordinate]*render.Canvas
	styles   map[Coordinate]string
	lastDraw map[Coordinate]BankStyle
	pushed   map[Coordinate]bool

	pincode      PincodeImageSet
	pincodeReady bool

	ready       bool
	closed      bool
	topbarTimer *time.Timer

	// pending notifications, delivered once mu is released
	pending []func()
}

func New(source ConfigSource, opts Options) *Graphics {
	g := &Graphics{
		source:      source,
		listener:    opts.Listener,
		variables:   opts.Variables,
		actions:     opts.Actions,
		feedbacks:   opts.Feedbacks,
		log:         opts.Logger,
		now:         opts.Now,
		maxButtons:  opts.MaxButtons,
		topbarDelay: opts.TopbarDelay,
		userConfig:  opts.UserConfig,
		buffers:     make(map[Coordinate]*render.Canvas),
		styles:      make(map[Coordinate]string),
		lastDraw:    make(map[Coordinate]BankStyle),
		pushed:      make(map[Coordinate]bool),
	}
	if g.source == nil {
		g.source = emptySource{}
	}
	if g.listener == nil {
		g.listener = NoopListener{}
	}
	if g.variables == nil {
		g.variables = NoopVariables{}
	}
	if g.actions == nil {
		g.actions = NoopActions{}
	}
	if g.feedbacks == nil {
		g.feedbacks = NoopFeedbacks{}
	}
	if g.log == nil {
		g.log = logging.NoopLogger{}
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.maxButtons <= 0 {
		g.maxButtons = DefaultMaxButtons
	}
	if g.topbarDelay <= 0 {
		g.topbarDelay = DefaultTopbarDelay
	}
	return g
}

// MaxButtons is the number of banks per page.
func (g *Graphics) MaxButtons() int { return g.maxButtons }

// InGrid reports whether c addresses a bank of the grid.
func (g *Graphics) InGrid(c Coordinate) bool {
	return c.Page >= 1 && c.Page <= MaxPages && c.Bank >= 1 && c.Bank <= g.maxButtons
}

// UserConfig returns the current display settings.
func (g *Graphics) UserConfig() UserConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.userConfig
}

// Close cancels a pending delayed redraw.
func (g *Graphics) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	if g.topbarTimer != nil {
		g.topbarTimer.Stop()
		g.topbarTimer = nil
	}
}

// flush releases mu and then delivers the notifications queued during the call.
func (g *Graphics) flush() {
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()
	for _, notify := range pending {
		notify()
	}
}

func (g *Graphics) notifyInvalidated(c Coordinate) {
	g.pending = append(g.pending, func() { g.listener.BankInvalidated(c) })
}

func (g *Graphics) notifyBackground(c *Coordinate, color int) {
	if c == nil {
		return
	}
	at := *c
	g.pending = append(g.pending, func() { g.listener.BankBackground(at, color) })
}

func (g *Graphics) newCanvas() *render.Canvas {
	return render.NewCanvasWithClock(render.BankSize, render.BankSize, g.now)
}

func (g *Graphics) imageOf(canvas *render.Canvas, style *BankStyle) BankImage {
	return BankImage{Buffer: canvas.Buffer(), Updated: canvas.LastUpdate(), Style: style}
}

func (g *Graphics) lastDrawOf(c Coordinate) *BankStyle {
	style, ok := g.lastDraw[c]
	if !ok {
		return nil
	}
	return &style
}
