package dev

// Geometry describes the sensor placement relative to the film gate plus the
// calibration coefficients. All lengths are millimeters.
type Geometry struct {
	HoleDiameterMM float64 // aperture in front of each sensor
	HoleSpacingMM  float64 // distance between the two sensor holes
	FrameSpanMM    float64 // frame dimension along the travel axis, e.g. 36

	// TravelCorrection scales the extrapolated curtain travel times.
	TravelCorrection float64
	// ExposureCorrection is the fraction of the aperture-width bias that is
	// subtracted from the raw exposure.
	ExposureCorrection float64
	Sensor1Correction  float64
	Sensor2Correction  float64

	// BiasFromOpenTravel selects the opening travel time instead of the
	// closing one as the curtain speed estimate for the bias term.
	BiasFromOpenTravel bool
}

// Measurement holds the derived quantities of one cycle, in microseconds.
type Measurement struct {
	Exposure1US float64
	Exposure2US float64

	TravelOpenUS  float64
	TravelCloseUS float64
}

// Compute derives exposure and curtain travel times from the four raw
// timestamps. The inter-sensor travel is extrapolated from the hole spacing
// to the full frame span. The raw exposures read long because light reaches a
// sensor before the curtain edge fully clears its hole; the bias term
// estimates that excess from the curtain speed and subtracts it.
func (g Geometry) Compute(c Cycle) (Measurement, error) {
	if c.Rise1 == 0 || c.Fall1 == 0 || c.Rise2 == 0 || c.Fall2 == 0 {
		return Measurement{}, ErrShortCycle
	}
	if c.Fall1 < c.Rise1 || c.Fall2 < c.Rise2 {
		return Measurement{}, ErrCurtainOrder
	}
	if g.HoleSpacingMM <= 0 || g.FrameSpanMM <= 0 {
		return Measurement{}, ErrFlawedGeometry
	}

	scale := g.FrameSpanMM / g.HoleSpacingMM * g.TravelCorrection
	m := Measurement{
		TravelOpenUS:  float64(absDiff(c.Rise1, c.Rise2)) * scale,
		TravelCloseUS: float64(absDiff(c.Fall1, c.Fall2)) * scale,
	}

	speedRef := m.TravelCloseUS
	if g.BiasFromOpenTravel {
		speedRef = m.TravelOpenUS
	}
	bias := g.ExposureCorrection * g.HoleDiameterMM * speedRef / g.FrameSpanMM
	m.Exposure1US = g.Sensor1Correction * (float64(c.Fall1-c.Rise1) - bias)
	m.Exposure2US = g.Sensor2Correction * (float64(c.Fall2-c.Rise2) - bias)
	if m.Exposure1US <= 0 || m.Exposure2US <= 0 {
		return Measurement{}, ErrExposureUnderflow
	}
	return m, nil
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
