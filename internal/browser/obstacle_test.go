package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedHandler returns a handler whose Detect pops states off a script
// and whose other hooks just count invocations.
func scriptedHandler(detections []Obstruction) (*Handler, *hookCounts) {
	counts := &hookCounts{}
	h := &Handler{
		Detect: func(ctx context.Context) (Obstruction, error) {
			counts.detect++
			if len(detections) == 0 {
				return None, nil
			}
			state := detections[0]
			detections = detections[1:]
			return state, nil
		},
		Simulate: func(ctx context.Context) error {
			counts.simulate++
			return nil
		},
		Reload: func(ctx context.Context) error {
			counts.reload++
			return nil
		},
		Dismiss: func(ctx context.Context) (bool, error) {
			counts.dismiss++
			return counts.dismissResult, nil
		},
	}
	return h, counts
}

type hookCounts struct {
	detect        int
	simulate      int
	reload        int
	dismiss       int
	dismissResult bool
}

func TestResolveNoObstruction(t *testing.T) {
	h, counts := scriptedHandler([]Obstruction{None})

	state := h.Resolve(context.Background())

	assert.Equal(t, None, state)
	assert.Equal(t, 1, counts.detect)
	assert.Zero(t, counts.simulate)
	assert.Zero(t, counts.reload)
}

func TestResolveChallengeClearsAfterSimulate(t *testing.T) {
	h, counts := scriptedHandler([]Obstruction{
		VerificationChallenge, // initial check
		None,                  // recheck after simulate
		None,                  // final check
	})

	state := h.Resolve(context.Background())

	assert.Equal(t, None, state)
	assert.Equal(t, 1, counts.simulate)
	assert.Zero(t, counts.reload)
}

func TestResolveChallengeBoundedRecovery(t *testing.T) {
	// Marker present on the first two checks, cleared on the third: exactly
	// one simulate-recheck cycle and one reload-simulate cycle, no more.
	h, counts := scriptedHandler([]Obstruction{
		VerificationChallenge,
		VerificationChallenge,
		None,
	})

	state := h.Resolve(context.Background())

	assert.Equal(t, None, state)
	assert.Equal(t, 3, counts.detect)
	assert.Equal(t, 2, counts.simulate)
	assert.Equal(t, 1, counts.reload)
}

func TestResolveChallengePersists(t *testing.T) {
	h, counts := scriptedHandler([]Obstruction{
		VerificationChallenge,
		VerificationChallenge,
		VerificationChallenge,
	})

	state := h.Resolve(context.Background())

	// Still obstructed: reported back, never retried further.
	assert.Equal(t, VerificationChallenge, state)
	assert.Equal(t, 3, counts.detect)
	assert.Equal(t, 2, counts.simulate)
	assert.Equal(t, 1, counts.reload)
}

func TestResolveLoginDismissed(t *testing.T) {
	h, counts := scriptedHandler([]Obstruction{
		LoginOverlay,
		None,
	})
	counts.dismissResult = true

	state := h.Resolve(context.Background())

	assert.Equal(t, None, state)
	assert.Equal(t, 1, counts.dismiss)
	assert.Zero(t, counts.reload)
	assert.Zero(t, counts.simulate)
}

func TestResolveLoginFallsBackToReload(t *testing.T) {
	h, counts := scriptedHandler([]Obstruction{
		LoginOverlay,
		None,
	})
	counts.dismissResult = false

	state := h.Resolve(context.Background())

	assert.Equal(t, None, state)
	assert.Equal(t, 2, counts.dismiss)
	assert.Equal(t, 1, counts.reload)
	assert.Equal(t, 1, counts.simulate)
}

func TestObstructionString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "verification_challenge", VerificationChallenge.String())
	assert.Equal(t, "login_overlay", LoginOverlay.String())
}

func TestDetectorJS(t *testing.T) {
	d := CaptchaDetector()
	js := d.js()

	assert.Contains(t, js, ".verify-wrap")
	assert.Contains(t, js, "验证码")
	assert.Contains(t, js, "请输入")

	d = LoginDetector()
	js = d.js()
	assert.Contains(t, js, ".pop-login-dialog")
	assert.Contains(t, js, "密码")
}
