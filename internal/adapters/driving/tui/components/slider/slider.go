// Package slider provides a numeric slider component for the TUI.
package slider

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/styles"
)

const defaultWidth = 20

// Slider is a bounded value moved in fixed steps.
type Slider struct {
	styles   *styles.Styles
	label    string
	unit     string
	min      float64
	max      float64
	step     float64
	value    float64
	decimals int
	width    int
}

// New creates a slider. value is clamped to [min, max].
func New(s *styles.Styles, label, unit string, min, max, step, value float64) *Slider {
	if s == nil {
		s = styles.DefaultStyles()
	}
	sl := &Slider{
		styles:   s,
		label:    label,
		unit:     unit,
		min:      min,
		max:      max,
		step:     step,
		decimals: decimals(step),
		width:    defaultWidth,
	}
	sl.SetValue(value)
	return sl
}

// Value returns the current value.
func (s *Slider) Value() float64 {
	return s.value
}

// SetValue moves the slider to v, clamped to the bounds.
func (s *Slider) SetValue(v float64) {
	s.value = math.Min(s.max, math.Max(s.min, v))
}

// Increase moves one step up and reports whether the value changed.
func (s *Slider) Increase() bool {
	return s.move(1)
}

// Decrease moves one step down and reports whether the value changed.
func (s *Slider) Decrease() bool {
	return s.move(-1)
}

func (s *Slider) move(dir float64) bool {
	if s.step <= 0 {
		return false
	}
	old := s.value
	steps := math.Round((s.value-s.min)/s.step) + dir
	next := s.min + steps*s.step
	// Round away float noise so 0.1 steps stay on the grid.
	p := math.Pow(10, float64(s.decimals))
	next = math.Round(next*p) / p
	s.SetValue(next)
	return s.value != old
}

// Min returns the lower bound.
func (s *Slider) Min() float64 { return s.min }

// Max returns the upper bound.
func (s *Slider) Max() float64 { return s.max }

// SetWidth sets the bar width in cells.
func (s *Slider) SetWidth(width int) {
	if width < 5 {
		width = 5
	}
	s.width = width
}

// Format renders the value at the step's precision.
func (s *Slider) Format() string {
	v := strconv.FormatFloat(s.value, 'f', s.decimals, 64)
	if s.unit != "" {
		return v + " " + s.unit
	}
	return v
}

// View renders the slider as "label [====----] value".
func (s *Slider) View() string {
	filled := 0
	if s.max > s.min {
		filled = int(math.Round((s.value - s.min) / (s.max - s.min) * float64(s.width)))
	}
	bar := s.styles.SliderFill.Render(strings.Repeat("━", filled)) +
		s.styles.SliderTrack.Render(strings.Repeat("─", s.width-filled))

	label := s.label
	if label != "" {
		label += " "
	}
	return fmt.Sprintf("%s[%s] %s", label, bar, s.Format())
}

func decimals(step float64) int {
	str := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(str, '.'); i >= 0 {
		return len(str) - i - 1
	}
	return 0
}
