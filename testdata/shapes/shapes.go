package shapes

import "time"

type Shape interface {
	isShape()
}

type Circle struct {
	Radius float64
}

type Label string

type Point struct{}

type Rect struct {
	W, H float64
}

type Stamp struct {
	time.Time
}

type Polygon struct {
	Points []Point
}

// Ghost is never built implicitly.
//
//fromone:skip
type Ghost struct {
	Opacity uint8
}

type (
	Count struct{ N int }
	Total struct{ N int }
)

func (Circle) isShape() {}
func (Label) isShape() {}
func (Point) isShape() {}
func (Rect) isShape() {}
func (Stamp) isShape() {}
func (*Polygon) isShape() {}
func (Ghost) isShape() {}
func (Count) isShape() {}
func (Total) isShape() {}

type UserID struct {
	Value string
}

type Meters struct {
	float64
}

type Pair struct {
	A, B int
}

type Names []string

type Any interface{}
