package core

import (
	"math"
	"testing"
)

func TestNormalizeZeroSafe(t *testing.T) {
	v := Vec2{}.Normalize()
	if v.X != 0 || v.Y != 0 {
		t.Fatalf("normalizing zero vector must stay zero, got %+v", v)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	v := Vec2{X: 3, Y: -4}.Normalize()
	if math.Abs(float64(v.Length())-1) > 1e-6 {
		t.Fatalf("expected unit length, got %f", v.Length())
	}
	if v.X <= 0 || v.Y >= 0 {
		t.Fatalf("direction not preserved: %+v", v)
	}
}

func TestClampLength(t *testing.T) {
	v := Vec2{X: 3, Y: 4}.ClampLength(1)
	if math.Abs(float64(v.Length())-1) > 1e-6 {
		t.Fatalf("expected clamped length 1, got %f", v.Length())
	}

	short := Vec2{X: 0.3, Y: 0}.ClampLength(1)
	if short.X != 0.3 || short.Y != 0 {
		t.Fatalf("short vector must be untouched, got %+v", short)
	}
}

func TestDotAndDistance(t *testing.T) {
	if got := (Vec2{X: 1, Y: 2}).Dot(Vec2{X: 3, Y: 4}); got != 11 {
		t.Fatalf("dot product expected 11, got %f", got)
	}
	if got := (Vec2{X: 0, Y: 0}).Distance(Vec2{X: 3, Y: 4}); got != 5 {
		t.Fatalf("distance expected 5, got %f", got)
	}
}

func TestClampHelpers(t *testing.T) {
	if got := Clamp01(-0.5); got != 0 {
		t.Fatalf("Clamp01(-0.5) = %f", got)
	}
	if got := Clamp01(1.5); got != 1 {
		t.Fatalf("Clamp01(1.5) = %f", got)
	}
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp(5,0,3) = %f", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Fatalf("Clamp(-1,0,3) = %f", got)
	}
}
