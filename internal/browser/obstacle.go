package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/chromedp"
)

// Obstruction is an on-page barrier blocking the listing content. It is
// detected fresh on every check and never persisted.
type Obstruction int

const (
	None Obstruction = iota
	VerificationChallenge
	LoginOverlay
)

func (o Obstruction) String() string {
	switch o {
	case VerificationChallenge:
		return "verification_challenge"
	case LoginOverlay:
		return "login_overlay"
	default:
		return "none"
	}
}

// Detector is one detection rule: an obstruction is present if any selector
// matches, or if the page text contains all AllOf markers and (when AnyOf is
// non-empty) at least one AnyOf marker.
type Detector struct {
	Kind      Obstruction
	Selectors []string
	AllOf     []string
	AnyOf     []string
}

// CaptchaDetector recognizes the site's verification challenge overlays.
func CaptchaDetector() Detector {
	return Detector{
		Kind: VerificationChallenge,
		Selectors: []string{
			".CAPTCHA",
			".verify-wrap",
			`[data-reactid*="CAPTCHA"]`,
			".captcha-wrapper",
			".verify-code",
		},
		AllOf: []string{"验证码", "请输入"},
	}
}

// LoginDetector recognizes the site's login dialog overlays.
func LoginDetector() Detector {
	return Detector{
		Kind: LoginOverlay,
		Selectors: []string{
			".pop-login-dialog",
			".login-panel",
			`[class*="login"]`,
			".c-login-part",
			".cpt-login-box",
		},
		AllOf: []string{"登录"},
		AnyOf: []string{"密码", "验证码"},
	}
}

// js builds the single page-side check for this detector.
func (d Detector) js() string {
	selectors, _ := json.Marshal(d.Selectors)
	allOf, _ := json.Marshal(d.AllOf)
	anyOf, _ := json.Marshal(d.AnyOf)

	return fmt.Sprintf(`
(() => {
	const selectors = %s;
	for (const sel of selectors) {
		try {
			if (document.querySelector(sel)) return true;
		} catch (e) {}
	}
	const text = document.body ? document.body.innerText : '';
	const allOf = %s;
	const anyOf = %s;
	if (allOf.length === 0) return false;
	if (!allOf.every(m => text.includes(m))) return false;
	return anyOf.length === 0 || anyOf.some(m => text.includes(m));
})()`, selectors, allOf, anyOf)
}

// closePopupsJS clicks the first visible close button, falling back to any
// button or link whose text reads close/cancel in either language. Returns
// whether something was dismissed.
const closePopupsJS = `
(() => {
	const closeSelectors = [
		'.close', '.close-btn', '.btn-close', '.popup-close',
		'[class*="close"]', '[aria-label="关闭"]', '[title="关闭"]',
		'.modal-close', '.dialog-close', '.cancel', '.cancel-btn',
		'button.cancel', 'button[class*="close"]', '.iconfont-close',
		'.icon-close', '.el-dialog__close', '.ant-modal-close'
	];
	for (const selector of closeSelectors) {
		const elements = document.querySelectorAll(selector);
		for (const el of elements) {
			if (el.offsetParent !== null) {
				el.click();
				return true;
			}
		}
	}
	const textButtons = Array.from(document.querySelectorAll('button, a')).filter(el => {
		const text = el.textContent.toLowerCase();
		return text.includes('关闭') || text.includes('取消') ||
			text.includes('close') || text.includes('cancel');
	});
	if (textButtons.length > 0) {
		textButtons[0].click();
		return true;
	}
	return false;
})()`

// Handler runs the bounded obstacle recovery policy. The hooks are
// replaceable so the recovery sequence can be exercised without a browser.
type Handler struct {
	// Detect reports the first matching obstruction, in detector order.
	Detect func(ctx context.Context) (Obstruction, error)
	// Simulate re-runs the human-behavior pass.
	Simulate func(ctx context.Context) error
	// Reload reloads the page, bounded by the session timeout.
	Reload func(ctx context.Context) error
	// Dismiss tries to close a popup; reports whether anything was clicked.
	Dismiss func(ctx context.Context) (bool, error)

	// SettleDelay follows a reload before the next behavior pass.
	SettleDelay time.Duration
	// LoginSettleDelay follows login-overlay handling, giving the page time
	// to react to the dismissed dialog.
	LoginSettleDelay time.Duration

	// Logger defaults to log.Default when nil.
	Logger *log.Logger
}

func (h *Handler) log() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

// NewHandler wires a handler to a live session. The detectors are checked in
// the order given on every invocation.
func NewHandler(sess *Session, sim *Simulator, logger *log.Logger, detectors ...Detector) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		Detect: func(ctx context.Context) (Obstruction, error) {
			return detect(ctx, detectors)
		},
		Simulate: func(ctx context.Context) error {
			sim.Simulate(ctx)
			return nil
		},
		Reload: func(ctx context.Context) error {
			return sess.Reload()
		},
		Dismiss: func(ctx context.Context) (bool, error) {
			var dismissed bool
			err := chromedp.Run(ctx, chromedp.Evaluate(closePopupsJS, &dismissed))
			return dismissed, err
		},
		SettleDelay:      8 * time.Second,
		LoginSettleDelay: 3 * time.Second,
		Logger:           logger.With("component", "obstacle"),
	}
}

func detect(ctx context.Context, detectors []Detector) (Obstruction, error) {
	for _, d := range detectors {
		var matched bool
		if err := chromedp.Run(ctx, chromedp.Evaluate(d.js(), &matched)); err != nil {
			return None, err
		}
		if matched {
			return d.Kind, nil
		}
	}
	return None, nil
}

// Resolve checks for an obstruction and, if one is present, runs the bounded
// recovery sequence for its kind. The returned state is the obstruction left
// after recovery; a persisting obstruction is not an error, the query
// proceeds with a degraded extraction.
func (h *Handler) Resolve(ctx context.Context) Obstruction {
	state, err := h.Detect(ctx)
	if err != nil {
		h.log().Warn("obstruction check failed", "err", err)
		return None
	}
	if state == None {
		return None
	}

	h.log().Warn("obstruction detected", "kind", state)
	switch state {
	case VerificationChallenge:
		h.recoverChallenge(ctx)
	case LoginOverlay:
		h.recoverLogin(ctx)
	}

	final, err := h.Detect(ctx)
	if err != nil {
		h.log().Warn("obstruction recheck failed", "err", err)
		return None
	}
	if final != None {
		h.log().Warn("obstruction persists, proceeding anyway", "kind", final)
	}
	return final
}

// recoverChallenge: one simulate+recheck, then at most one reload+simulate.
func (h *Handler) recoverChallenge(ctx context.Context) {
	if err := h.Simulate(ctx); err != nil {
		h.log().Debug("simulate failed during recovery", "err", err)
	}

	state, err := h.Detect(ctx)
	if err != nil {
		h.log().Warn("obstruction recheck failed", "err", err)
		return
	}
	if state != VerificationChallenge {
		return
	}

	h.log().Warn("challenge persists, reloading page")
	if err := h.Reload(ctx); err != nil {
		h.log().Warn("reload failed during recovery", "err", err)
		return
	}
	h.sleep(ctx, h.SettleDelay)
	if err := h.Simulate(ctx); err != nil {
		h.log().Debug("simulate failed after reload", "err", err)
	}
}

// recoverLogin: dismiss the dialog; failing that, one reload+simulate+dismiss.
func (h *Handler) recoverLogin(ctx context.Context) {
	dismissed, err := h.Dismiss(ctx)
	if err != nil {
		h.log().Debug("popup dismissal failed", "err", err)
	}

	if !dismissed {
		h.log().Warn("login overlay not dismissable, reloading page")
		if err := h.Reload(ctx); err != nil {
			h.log().Warn("reload failed during recovery", "err", err)
			return
		}
		h.sleep(ctx, h.SettleDelay)
		if err := h.Simulate(ctx); err != nil {
			h.log().Debug("simulate failed after reload", "err", err)
		}
		if _, err := h.Dismiss(ctx); err != nil {
			h.log().Debug("popup dismissal failed after reload", "err", err)
		}
	}

	h.sleep(ctx, h.LoginSettleDelay)
}

func (h *Handler) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	_ = chromedp.Run(ctx, chromedp.Sleep(d))
}
