// Package plan normalizes a raw predictor response into a typed,
// executable model.ActionPlan.
package plan

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pulseagent/pulseagent/internal/cloudbrain"
	"github.com/pulseagent/pulseagent/internal/model"
)

// Translator converts cloudbrain.Prediction values into model.ActionPlan.
// It carries no state beyond a logger for warnings on dropped steps.
type Translator struct {
	log *zap.SugaredLogger
}

// New builds a Translator that logs drop/fallback warnings through log.
func New(log *zap.SugaredLogger) *Translator {
	return &Translator{log: log}
}

// Translate normalizes pred into an ActionPlan. A nil pred yields an empty
// plan; PulseEngine never calls this for a nil prediction (it treats that
// as "no prediction" before translation), but Translate stays total.
func (t *Translator) Translate(pred *cloudbrain.Prediction) model.ActionPlan {
	if pred == nil {
		return nil
	}
	if pred.IsLegacyForm() {
		return model.ActionPlan{t.translateLegacy(pred)}
	}
	plan := make(model.ActionPlan, 0, len(pred.Actions))
	for _, a := range pred.Actions {
		action, ok := t.translateEntry(a)
		if ok {
			plan = append(plan, action)
		}
	}
	return plan
}

// translateLegacy implements the single-action back-compat mapping:
// CLICK/RIGHT_CLICK/DOUBLE_CLICK/TYPE/SCROLL_UP/SCROLL_DOWN, with any
// other verb permissively falling back to Click. That fallback is
// intentional and flagged via a log line rather than silently dropped.
func (t *Translator) translateLegacy(pred *cloudbrain.Prediction) model.Action {
	target := "UI element"
	if pred.Suggestion != nil && *pred.Suggestion != "" {
		target = *pred.Suggestion
	}
	region := model.NewCenteredRegion(pred.Coordinates.X, pred.Coordinates.Y)

	verb := strings.ToUpper(strings.TrimSpace(*pred.Action))
	switch verb {
	case "CLICK":
		return model.Action{Type: model.ActionClick, Target: target, TargetRegion: &region}
	case "RIGHT_CLICK":
		return model.Action{Type: model.ActionRightClick, Target: target, TargetRegion: &region}
	case "DOUBLE_CLICK":
		return model.Action{Type: model.ActionDoubleClick, Target: target, TargetRegion: &region}
	case "TYPE":
		return model.Action{Type: model.ActionTypeText, Target: target, TargetRegion: &region, Text: ""}
	case "SCROLL_UP":
		return model.Action{Type: model.ActionScroll, Target: target, TargetRegion: &region, Direction: model.ScrollUp, Amount: 3}
	case "SCROLL_DOWN":
		return model.Action{Type: model.ActionScroll, Target: target, TargetRegion: &region, Direction: model.ScrollDown, Amount: 3}
	default:
		if t.log != nil {
			t.log.Warnw("legacy predictor verb unrecognized, falling back to click",
				"verb", verb, "target", target)
		}
		return model.Action{Type: model.ActionClick, Target: target, TargetRegion: &region}
	}
}

// translateEntry implements the array-form mapping. Unknown verbs and
// drags missing either region are dropped with a warning; the plan stays
// valid with fewer steps.
func (t *Translator) translateEntry(a cloudbrain.CloudAction) (model.Action, bool) {
	verb := strings.ToLower(strings.TrimSpace(a.Type))
	region := regionOf(a)

	switch verb {
	case "click":
		return model.Action{Type: model.ActionClick, Target: a.Target, TargetRegion: region}, true
	case "right_click":
		return model.Action{Type: model.ActionRightClick, Target: a.Target, TargetRegion: region}, true
	case "double_click":
		return model.Action{Type: model.ActionDoubleClick, Target: a.Target, TargetRegion: region}, true
	case "type":
		text := ""
		if a.Text != nil {
			text = *a.Text
		}
		return model.Action{Type: model.ActionTypeText, Target: a.Target, TargetRegion: region, Text: text}, true
	case "key":
		keys := ""
		if a.Keys != nil {
			keys = *a.Keys
		}
		return model.Action{Type: model.ActionKeyChord, Target: a.Target, TargetRegion: region, Keys: keys}, true
	case "drag":
		if a.SourceRegion == nil || a.TargetRegion == nil {
			t.warn(verb, a.Target, "missing sourceRegion or targetRegion")
			return model.Action{}, false
		}
		return model.Action{
			Type:        model.ActionDrag,
			Target:      a.Target,
			Source:      toRegion(*a.SourceRegion),
			Destination: toRegion(*a.TargetRegion),
		}, true
	case "scroll":
		direction := model.ScrollDown
		if a.Direction != nil {
			if strings.EqualFold(*a.Direction, "up") {
				direction = model.ScrollUp
			}
		}
		amount := 3
		if a.Amount != nil {
			amount = *a.Amount
		}
		return model.Action{Type: model.ActionScroll, Target: a.Target, TargetRegion: region, Direction: direction, Amount: amount}, true
	default:
		t.warn(verb, a.Target, "unrecognized action type")
		return model.Action{}, false
	}
}

func (t *Translator) warn(verb, target, reason string) {
	if t.log == nil {
		return
	}
	t.log.Warnw("dropping unusable plan step", "verb", verb, "target", target, "reason", reason)
}

// regionOf resolves an entry's region: a synthetic 50x30 box centered on
// x/y when present, else the raw region, else nil.
func regionOf(a cloudbrain.CloudAction) *model.Region {
	if a.X != nil && a.Y != nil {
		r := model.NewCenteredRegion(*a.X, *a.Y)
		return &r
	}
	if a.Region != nil {
		r := toRegion(*a.Region)
		return &r
	}
	return nil
}

func toRegion(r cloudbrain.CloudRegion) model.Region {
	return model.Region{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
