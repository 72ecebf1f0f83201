package graphics

import (
	"time"
)

// Invalidate drops the cached image of a bank, renders it again from the current
// configuration and reports the change.
func (g *Graphics) Invalidate(page, bank int) {
	g.mu.Lock()
	defer g.flush()
	g.invalidate(Coordinate{Page: page, Bank: bank})
}

func (g *Graphics) invalidate(c Coordinate) {
	if !g.InGrid(c) {
		g.log.Errorf(component, "invalidate %s: outside the grid", c)
		return
	}
	delete(g.buffers, c)
	delete(g.styles, c)
	g.drawBank(c)
	g.notifyInvalidated(c)
}

// IndicatePush sets or clears the pressed state of a bank and redraws it.
func (g *Graphics) IndicatePush(page, bank int, pressed bool) {
	g.mu.Lock()
	defer g.flush()

	c := Coordinate{Page: page, Bank: bank}
	if !g.InGrid(c) {
		g.log.Errorf(component, "push %s: outside the grid", c)
		return
	}
	if pressed {
		g.pushed[c] = true
	} else {
		delete(g.pushed, c)
	}
	delete(g.buffers, c)
	g.drawBank(c)
	g.notifyInvalidated(c)
}

func (g *Graphics) IsPushed(page, bank int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pushed[Coordinate{Page: page, Bank: bank}]
}

// InvalidatePageControls redraws the page up, page down and page number banks of the
// given pages, or of every page when none are given.
func (g *Graphics) InvalidatePageControls(pages ...int) {
	g.mu.Lock()
	defer g.flush()
	g.invalidatePageControls(pages...)
}

func (g *Graphics) invalidatePageControls(pages ...int) {
	if len(pages) == 0 {
		pages = make([]int, 0, MaxPages)
		for page := 1; page <= MaxPages; page++ {
			pages = append(pages, page)
		}
	}
	for _, page := range pages {
		for bank := 1; bank <= g.maxButtons; bank++ {
			c := Coordinate{Page: page, Bank: bank}
			if isPageControl(g.styles[c]) {
				g.invalidate(c)
			}
		}
	}
}

// Generate renders every bank of the grid, reusing cached canvases. With signal set each
// bank is reported as changed.
func (g *Graphics) Generate(signal bool) {
	g.mu.Lock()
	defer g.flush()
	g.generate(signal)
}

func (g *Graphics) generate(signal bool) {
	start := time.Now()
	for page := 1; page <= MaxPages; page++ {
		for bank := 1; bank <= g.maxButtons; bank++ {
			c := Coordinate{Page: page, Bank: bank}
			g.drawBank(c)
			if signal {
				g.notifyInvalidated(c)
			}
		}
	}
	g.log.Infof(component, "generated %d banks in %s", MaxPages*g.maxButtons, time.Since(start).Round(time.Millisecond))
}

// ConfigReady renders the whole grid the first time the configuration becomes available.
// Later calls do nothing.
func (g *Graphics) ConfigReady() {
	g.mu.Lock()
	defer g.flush()
	if g.ready {
		return
	}
	g.ready = true
	g.generate(false)
}

// PageNameChanged redraws the page controls of page.
func (g *Graphics) PageNameChanged(page int, name string) {
	g.mu.Lock()
	defer g.flush()
	g.log.Infof(component, "page %d renamed to %q", page, name)
	g.invalidatePageControls(page)
}

// SetUserConfigKey applies a display setting change. Page direction and plus/minus changes
// redraw the page controls at once; a topbar change schedules a full redraw after the
// topbar delay. Other keys are ignored.
func (g *Graphics) SetUserConfigKey(key string, value bool) {
	g.mu.Lock()
	defer g.flush()

	switch key {
	case KeyPageDirectionFlipped:
		g.userConfig.PageDirectionFlipped = value
		g.invalidatePageControls()
	case KeyPagePlusMinus:
		g.userConfig.PagePlusMinus = value
		g.invalidatePageControls()
	case KeyRemoveTopbar:
		g.userConfig.RemoveTopbar = value
		if g.closed {
			return
		}
		if g.topbarTimer != nil {
			g.topbarTimer.Stop()
		}
		g.topbarTimer = time.AfterFunc(g.topbarDelay, g.regenerateTopbar)
		g.log.Infof(component, "topbar removed=%t, redraw in %s", value, g.topbarDelay)
	}
}

// regenerateTopbar runs after the topbar delay.
func (g *Graphics) regenerateTopbar() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.topbarTimer = nil
	g.mu.Unlock()

	g.feedbacks.CheckAllBanks()
	g.Generate(true)
}

// GetBank returns the cached image of a bank, rendering it first when needed.
func (g *Graphics) GetBank(page, bank int) BankImage {
	g.mu.Lock()
	defer g.flush()

	c := Coordinate{Page: page, Bank: bank}
	if !g.InGrid(c) {
		g.log.Errorf(component, "unexpected fetch of bank %s outside the grid", c)
		return g.imageOf(g.newCanvas(), nil)
	}
	canvas, ok := g.buffers[c]
	if !ok {
		canvas = g.drawBank(c)
	}
	return g.imageOf(canvas, g.lastDrawOf(c))
}

// GetImagesForPage returns the images of every bank on page, index 0 being bank 1.
// Banks never rendered get a blank image that is not cached.
func (g *Graphics) GetImagesForPage(page int) []BankImage {
	g.mu.Lock()
	defer g.mu.Unlock()

	images := make([]BankImage, g.maxButtons)
	for i := range images {
		c := Coordinate{Page: page, Bank: i + 1}
		if canvas, ok := g.buffers[c]; ok {
			images[i] = g.imageOf(canvas, g.lastDrawOf(c))
		} else {
			images[i] = g.imageOf(g.newCanvas(), nil)
		}
	}
	return images
}

// Preview renders style without a coordinate. The cache is not touched.
func (g *Graphics) Preview(style BankStyle) []byte {
	g.mu.Lock()
	defer g.flush()
	return g.drawBankImage(style, nil).Buffer()
}
