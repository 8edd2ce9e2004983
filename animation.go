package survivalmaze

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FieldTween animates one float32 field. Create one with TweenValue and call
// Update(dt) each frame; the interpolated value is written straight into the
// field.
//
// There is no global animation manager; owners call Update themselves.
type FieldTween struct {
	tween *gween.Tween
	field *float32
	Done  bool
}

// Update advances the tween by dt seconds and writes the value to the field.
// Done becomes true once the tween has finished.
func (t *FieldTween) Update(dt float32) {
	if t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	*t.field = val
	t.Done = finished
}

// TweenValue animates *field from its current value to the target over the
// duration using the easing function.
func TweenValue(field *float32, to, duration float32, fn ease.TweenFunc) *FieldTween {
	return &FieldTween{
		tween: gween.New(*field, to, duration, fn),
		field: field,
	}
}
