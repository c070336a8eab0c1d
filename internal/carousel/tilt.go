package carousel

import "github.com/olivier-w/folio/internal/util"

// TiltMode is how far the center card leans under the pointer.
type TiltMode int

const (
	TiltSubtle TiltMode = iota
	TiltBalanced
	TiltExtreme
)

// Next cycles to the next tilt mode.
func (m TiltMode) Next() TiltMode {
	switch m {
	case TiltSubtle:
		return TiltBalanced
	case TiltBalanced:
		return TiltExtreme
	default:
		return TiltSubtle
	}
}

// String returns the name of the tilt mode.
func (m TiltMode) String() string {
	switch m {
	case TiltSubtle:
		return "subtle"
	case TiltExtreme:
		return "extreme"
	default:
		return "balanced"
	}
}

// Icon returns a short indicator for the status line.
func (m TiltMode) Icon() string {
	switch m {
	case TiltSubtle:
		return "[tilt ·]"
	case TiltExtreme:
		return "[tilt ···]"
	default:
		return "[tilt ··]"
	}
}

// MaxAngle is the largest rotation, in degrees, on either axis.
func (m TiltMode) MaxAngle() float64 {
	switch m {
	case TiltSubtle:
		return 6
	case TiltExtreme:
		return 10
	default:
		return 8
	}
}

// ParseTiltMode accepts the String names; anything else is balanced.
func ParseTiltMode(s string) TiltMode {
	switch s {
	case "subtle":
		return TiltSubtle
	case "extreme":
		return TiltExtreme
	default:
		return TiltBalanced
	}
}

// Tilt is a rotation pair in degrees.
type Tilt struct {
	RotateX float64
	RotateY float64
}

// TiltAt maps a pointer position inside the card, as fractions of its
// width and height, to a rotation. The card's center is (0.5, 0.5) and
// maps to no rotation; fractions outside [0,1] are clamped.
func TiltAt(fx, fy, maxAngle float64) Tilt {
	fx, fy = util.Clamp01(fx), util.Clamp01(fy)
	return Tilt{
		RotateX: (fy - 0.5) * -2 * maxAngle,
		RotateY: (fx - 0.5) * 2 * maxAngle,
	}
}

// SweepAngle is the light-sweep gradient angle that follows the tilt.
func (t Tilt) SweepAngle() float64 { return 75 + t.RotateY*1.5 }
