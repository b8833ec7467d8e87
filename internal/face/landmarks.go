// Package face scores facial behavior (eye contact, smiling, gaze,
// expression) from fixed-topology face-mesh landmarks and aggregates
// per-frame scores over time. All scorers clamp to [0,1] and degrade to
// neutral values on degenerate geometry.
package face

import "math"

// Point is one 3D landmark. X and Y are normalized to [0,1] relative to
// the frame; Z is a small relative depth value.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LandmarkSet is one detected face: an ordered set of MeshPoints landmarks
// whose indices are fixed by the face-mesh topology.
type LandmarkSet []Point

// MeshPoints is the number of landmarks in the canonical face-mesh
// topology this package is written against.
const MeshPoints = 468

// Landmark indices below are an external data contract with the face-mesh
// model's canonical 468-point topology. They are not tunable: changing any
// of them silently breaks every geometric score.
const (
	idxNoseTip = 1

	// Mouth
	idxMouthLeft   = 61  // left corner
	idxMouthRight  = 291 // right corner
	idxLipTop      = 13  // upper lip center
	idxLipBottom   = 14  // lower lip center

	// Eye corners
	idxLeftEyeOuter  = 33
	idxLeftEyeInner  = 133
	idxRightEyeInner = 362
	idxRightEyeOuter = 263

	// Eyebrows (mid-brow points, paired with the same-side eye corner)
	idxLeftBrow  = 70
	idxRightBrow = 296
)

// Left/right eye contours used for the eye-aspect-ratio: outer corner, two
// upper-lid points, inner corner, two lower-lid points.
var (
	leftEyeEAR  = [6]int{33, 160, 158, 133, 153, 144}
	rightEyeEAR = [6]int{362, 385, 387, 263, 373, 380}
)

func dist(a, b Point) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
}

// has reports whether the set contains every listed index.
func (ls LandmarkSet) has(indices ...int) bool {
	for _, i := range indices {
		if i < 0 || i >= len(ls) {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
