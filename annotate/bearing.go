package annotate

import "math"

// bearingDegrees returns the initial great-circle bearing, in degrees
// (-180,180], for travelling from (lat1,lon1) to (lat2,lon2) (radians in,
// degrees out). 0 is due north, 90 due east, matching compass convention.
func bearingDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	dLon := lon2 - lon1
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Atan2(y, x) * 180 / math.Pi
}

// normalizeSigned folds a degree value onto (-180,180].
func normalizeSigned(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

// turnAngleDegrees returns the signed turn at a junction: 0 is straight
// ahead, positive is a turn to the right, negative to the left, ±180 a
// U-turn — the departure bearing relative to continuing the arrival
// bearing unchanged.
func turnAngleDegrees(arrivalBearing, departureBearing float64) float64 {
	return normalizeSigned(departureBearing - arrivalBearing)
}

// turnBucket quantises a signed turn angle into one of 8 compass-style
// 45-degree buckets. The +202 offset centres each bucket on its compass
// point and keeps the dividend non-negative for the truncating division.
func turnBucket(turnDeg float64) int {
	t := int(math.Round(turnDeg))
	return ((202 + t) / 45) % 8
}

// headingBucket quantises an absolute bearing into one of 8 compass-style
// 45-degree buckets, 0 meaning due south and 4 due north.
func headingBucket(bearingDeg float64) int {
	b := int(math.Round(bearingDeg))
	if b < 0 {
		b += 360
	}
	return (4 + (22+b)/45) % 8
}
