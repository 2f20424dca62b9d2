package browser

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// Jitter is a randomized pause range for one action type.
type Jitter struct {
	Min time.Duration
	Max time.Duration
}

// duration draws a pause from the range.
func (j Jitter) duration(rng *rand.Rand) time.Duration {
	if j.Max <= j.Min {
		return j.Min
	}
	return j.Min + time.Duration(rng.Int63n(int64(j.Max-j.Min)))
}

// Span is a randomized integer range, inclusive of both ends.
type Span struct {
	Min int
	Max int
}

func (s Span) pick(rng *rand.Rand) int {
	if s.Max <= s.Min {
		return s.Min
	}
	return s.Min + rng.Intn(s.Max-s.Min+1)
}

// Profile configures the human-behavior simulation. Every timing is a range
// so tests can pin the randomness down.
type Profile struct {
	MouseMoves     Span
	MouseMovePause Jitter
	ScrollAmount   Span // pixels
	ScrollPause    Jitter
	HoverPause     Jitter
	TabPresses     Span
	TabPause       Jitter
	ReadPause      Jitter
}

// DefaultProfile mimics a user skimming a results page.
func DefaultProfile() Profile {
	return Profile{
		MouseMoves:     Span{Min: 5, Max: 10},
		MouseMovePause: Jitter{Min: 50 * time.Millisecond, Max: 150 * time.Millisecond},
		ScrollAmount:   Span{Min: 100, Max: 400},
		ScrollPause:    Jitter{Min: 500 * time.Millisecond, Max: 1500 * time.Millisecond},
		HoverPause:     Jitter{Min: 200 * time.Millisecond, Max: 1000 * time.Millisecond},
		TabPresses:     Span{Min: 1, Max: 3},
		TabPause:       Jitter{Min: 100 * time.Millisecond, Max: 400 * time.Millisecond},
		ReadPause:      Jitter{Min: 1 * time.Second, Max: 3 * time.Second},
	}
}

// hoverJS dispatches a synthetic hover at a random visible element. Never a
// click: navigation state must not change.
const hoverJS = `
(() => {
	const elements = Array.from(document.querySelectorAll('a, img, button')).filter(el => {
		const rect = el.getBoundingClientRect();
		return rect.width > 0 && rect.height > 0 &&
			rect.top >= 0 && rect.left >= 0 &&
			rect.top < window.innerHeight && rect.left < window.innerWidth;
	});
	if (elements.length > 0) {
		const el = elements[Math.floor(Math.random() * elements.length)];
		el.dispatchEvent(new MouseEvent('mouseover', {
			bubbles: true,
			cancelable: true,
			view: window
		}));
	}
})()`

// autoScrollJS steps the page down 200px every 200ms until the scroll height
// is exhausted, so lazy-loaded listings below the fold get rendered.
const autoScrollJS = `
new Promise((resolve) => {
	let totalHeight = 0;
	const distance = 200;
	const timer = setInterval(() => {
		const scrollHeight = document.body.scrollHeight;
		window.scrollBy(0, distance);
		totalHeight += distance;
		if (totalHeight >= scrollHeight) {
			clearInterval(timer);
			resolve();
		}
	}, 200);
})`

// Simulator issues human-like interaction events against an open page.
type Simulator struct {
	profile Profile
	logger  *log.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator builds a simulator seeded from the clock.
func NewSimulator(profile Profile, logger *log.Logger) *Simulator {
	return newSimulator(profile, rand.NewSource(time.Now().UnixNano()), logger)
}

func newSimulator(profile Profile, src rand.Source, logger *log.Logger) *Simulator {
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{
		profile: profile,
		rng:     rand.New(src),
		logger:  logger.With("component", "behavior"),
	}
}

// Simulate runs one pass of mouse movement, scrolling, hovering, keyboard
// noise and an idle pause. It is best-effort: page evaluation errors are
// logged and swallowed, never fatal to the query.
func (s *Simulator) Simulate(ctx context.Context) {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"mouse", s.randomMouseMoves},
		{"scroll", s.randomScroll},
		{"hover", s.hover},
		{"keys", s.keyboardNoise},
		{"idle", s.idle},
	}

	for _, step := range steps {
		if ctx.Err() != nil {
			return
		}
		if err := step.run(ctx); err != nil {
			s.logger.Debug("behavior step failed", "step", step.name, "err", err)
		}
	}
}

func (s *Simulator) randomMouseMoves(ctx context.Context) error {
	var size []int64
	err := chromedp.Run(ctx,
		chromedp.Evaluate(`[window.innerWidth, window.innerHeight]`, &size))
	if err != nil {
		return err
	}
	if len(size) != 2 || size[0] <= 0 || size[1] <= 0 {
		return fmt.Errorf("bad viewport size %v", size)
	}

	s.mu.Lock()
	moves := s.profile.MouseMoves.pick(s.rng)
	s.mu.Unlock()

	for i := 0; i < moves; i++ {
		s.mu.Lock()
		x := float64(s.rng.Int63n(size[0]))
		y := float64(s.rng.Int63n(size[1]))
		s.mu.Unlock()

		if err := chromedp.Run(ctx, chromedp.MouseEvent(input.MouseMoved, x, y)); err != nil {
			return err
		}
		s.pause(ctx, s.profile.MouseMovePause)
	}
	return nil
}

func (s *Simulator) randomScroll(ctx context.Context) error {
	s.mu.Lock()
	amount := s.profile.ScrollAmount.pick(s.rng)
	s.mu.Unlock()

	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`window.scrollBy(0, %d)`, amount), nil))
	if err != nil {
		return err
	}
	s.pause(ctx, s.profile.ScrollPause)
	return nil
}

func (s *Simulator) hover(ctx context.Context) error {
	if err := chromedp.Run(ctx, chromedp.Evaluate(hoverJS, nil)); err != nil {
		return err
	}
	s.pause(ctx, s.profile.HoverPause)
	return nil
}

func (s *Simulator) keyboardNoise(ctx context.Context) error {
	s.mu.Lock()
	presses := s.profile.TabPresses.pick(s.rng)
	s.mu.Unlock()

	for i := 0; i < presses; i++ {
		if err := chromedp.Run(ctx, chromedp.KeyEvent(kb.Tab)); err != nil {
			return err
		}
		s.pause(ctx, s.profile.TabPause)
	}
	return nil
}

func (s *Simulator) idle(ctx context.Context) error {
	s.pause(ctx, s.profile.ReadPause)
	return nil
}

func (s *Simulator) pause(ctx context.Context, j Jitter) {
	s.mu.Lock()
	d := j.duration(s.rng)
	s.mu.Unlock()
	_ = chromedp.Run(ctx, chromedp.Sleep(d))
}

// AutoScroll incrementally scrolls to the bottom of the page, then presses
// End and waits for trailing lazy content to settle.
func AutoScroll(ctx context.Context) error {
	err := chromedp.Run(ctx,
		chromedp.Evaluate(autoScrollJS, nil,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}))
	if err != nil {
		return err
	}
	return chromedp.Run(ctx,
		chromedp.KeyEvent(kb.End),
		chromedp.Sleep(2*time.Second),
	)
}
