package skeleton

import (
	"math"
	"sync"
	"time"

	"github.com/ziadkadry99/sketchbook/internal/book"
)

// Step delays for the displayed page catching up with the requested one.
const (
	FastStep = 50 * time.Millisecond
	SlowStep = 150 * time.Millisecond
)

// BookYaw turns the whole book so the spine faces the viewer.
const BookYaw = -math.Pi / 2

// Book is a stack of bendable pages. The displayed page walks one sheet at a
// time toward the target page, faster when far behind.
type Book struct {
	mu        sync.Mutex
	pages     []*Page
	displayed int
	target    int
	nextStep  time.Time
	lastFrame time.Time
}

// NewBook creates a closed book of count pages.
func NewBook(count int) *Book {
	b := &Book{pages: make([]*Page, count)}
	for i := range b.pages {
		b.pages[i] = NewPage(i)
	}
	return b
}

// Pages returns the sheets in stack order.
func (b *Book) Pages() []*Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Page(nil), b.pages...)
}

// Displayed returns the page the book currently shows.
func (b *Book) Displayed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.displayed
}

// Target returns the page the book is walking toward.
func (b *Book) Target() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target
}

// Closed reports whether the book shows its front or back cover.
func (b *Book) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closedLocked()
}

func (b *Book) closedLocked() bool {
	return b.displayed == 0 || b.displayed == len(b.pages)
}

// SetTarget asks the book to walk to page. The first step is taken on the
// next Step call.
func (b *Book) SetTarget(page int, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if page < 0 {
		page = 0
	}
	if page > len(b.pages) {
		page = len(b.pages)
	}
	if page == b.target {
		return
	}
	b.target = page
	b.nextStep = now
}

// Step moves the displayed page one sheet toward the target if its delay
// has elapsed. It reports whether the displayed page changed.
func (b *Book) Step(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.displayed == b.target || now.Before(b.nextStep) {
		return false
	}
	gap := b.target - b.displayed
	delay := SlowStep
	if gap > 2 || gap < -2 {
		delay = FastStep
	}
	if gap > 0 {
		b.displayed++
	} else {
		b.displayed--
	}
	b.nextStep = now.Add(delay)
	return true
}

// Update steps the displayed page and bends every sheet for one frame.
func (b *Book) Update(now time.Time) {
	b.Step(now)

	b.mu.Lock()
	delta := time.Duration(0)
	if !b.lastFrame.IsZero() {
		delta = now.Sub(b.lastFrame)
	}
	b.lastFrame = now
	displayed := b.displayed
	closed := b.closedLocked()
	pages := b.pages
	b.mu.Unlock()

	for k, p := range pages {
		p.Z = -float64(k)*PageDepth + float64(displayed)*PageDepth
		p.Update(now, delta, displayed > k, closed)
	}
}

// PageClicked returns the index a click on sheet k should jump to: an open
// sheet goes back to itself, a closed one turns forward past itself.
func (b *Book) PageClicked(k int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if k >= 0 && k < len(b.pages) && b.displayed > k {
		return k
	}
	return k + 1
}

// Follow keeps the book's target in step with nav. Clicks should be routed
// through Click so they obey the navigator's rules.
func (b *Book) Follow(nav *book.Navigator, now func() time.Time) (cancel func()) {
	b.SetTarget(nav.State().Index, now())
	return nav.Subscribe(func(c book.Change) {
		if c.Kind == book.ChangeStarted {
			return
		}
		b.SetTarget(c.State.Index, now())
	})
}

// Click routes a click on sheet k to nav as a jump.
func (b *Book) Click(nav *book.Navigator, k int) bool {
	return nav.RequestJump(b.PageClicked(k))
}
