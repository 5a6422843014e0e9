package valueobject

import (
	"fmt"
	"math"
	"strings"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
)

// ViewDirection is the camera heading of the imagery. Downward is the plain
// top-down view; the other four are 45 degree oblique views.
type ViewDirection int

const (
	Downward ViewDirection = iota
	Northward
	Eastward
	Southward
	Westward
)

var directionNames = map[ViewDirection]string{
	Downward:  "downward",
	Northward: "northward",
	Eastward:  "eastward",
	Southward: "southward",
	Westward:  "westward",
}

func ParseViewDirection(s string) (ViewDirection, error) {
	if s == "" {
		return Downward, nil
	}
	for d, name := range directionNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	return Downward, fmt.Errorf("%w: %q", domain.ErrInvalidDirection, s)
}

func (d ViewDirection) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("ViewDirection(%d)", int(d))
}

func (d ViewDirection) IsValid() bool {
	_, ok := directionNames[d]
	return ok
}

func (d ViewDirection) IsOblique() bool {
	return d != Downward
}

// Angle is the camera angle in degrees sent to the provider. Downward has none.
func (d ViewDirection) Angle() (int, bool) {
	switch d {
	case Northward:
		return 0, true
	case Eastward:
		return 90, true
	case Southward:
		return 180, true
	case Westward:
		return 270, true
	default:
		return 0, false
	}
}

// SwapsAxes reports whether geographic width and height trade places in the image.
func (d ViewDirection) SwapsAxes() bool {
	return d == Eastward || d == Westward
}

// Foreshortening is the vertical compression of the view.
func (d ViewDirection) Foreshortening() float64 {
	if d.IsOblique() {
		return math.Sqrt2
	}
	return 1
}
