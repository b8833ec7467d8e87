package face

import "math"

// neutralEyeContact is returned when the landmark set cannot support the
// eye-contact computation.
const neutralEyeContact = 0.5

// EyeContactScore estimates how directly the face looks at the camera from
// the XY displacement between the midpoint of the two outer eye corners and
// the nose tip. Zero displacement scores 1.0 and the score falls off
// linearly, reaching 0 at a displacement of 0.1 frame widths.
func (ls LandmarkSet) EyeContactScore() float64 {
	if !ls.has(idxLeftEyeOuter, idxRightEyeOuter, idxNoseTip) {
		return neutralEyeContact
	}

	eyeMid := midpoint(ls[idxLeftEyeOuter], ls[idxRightEyeOuter])
	nose := ls[idxNoseTip]

	dx := eyeMid.X - nose.X
	dy := eyeMid.Y - nose.Y
	displacement := math.Sqrt(dx*dx + dy*dy)

	return clamp01(1.0 - displacement*10)
}

// SmileProbability rates the mouth shape in [0,1]: a wide, shallow mouth
// with elevated corners reads as a smile. A zero-height mouth scores 0.
func (ls LandmarkSet) SmileProbability() float64 {
	if !ls.has(idxMouthLeft, idxMouthRight, idxLipTop, idxLipBottom) {
		return 0.0
	}

	left := ls[idxMouthLeft]
	right := ls[idxMouthRight]
	top := ls[idxLipTop]
	bottom := ls[idxLipBottom]

	width := dist(right, left)
	height := dist(bottom, top)
	if height <= 0 {
		return 0.0
	}

	ratio := width / height

	// Image Y grows downward, so corners above the mouth center give a
	// positive elevation with this ordering.
	center := midpoint(top, bottom)
	elevation := (left.Y+right.Y)/2 - center.Y

	return clamp01((ratio-2.5)/2.0 + elevation*5)
}

// GazeDirection returns a probability distribution over {left, center,
// right}. This is a fixed placeholder kept so the response shape stays
// stable for the client; true gaze estimation needs iris tracking the
// landmark contract does not provide.
func (ls LandmarkSet) GazeDirection() map[string]float64 {
	if !ls.has(idxLeftEyeOuter, idxLeftEyeInner, idxRightEyeInner, idxRightEyeOuter) {
		return map[string]float64{"left": 0.33, "center": 0.34, "right": 0.33}
	}
	return map[string]float64{"left": 0.2, "center": 0.6, "right": 0.2}
}
