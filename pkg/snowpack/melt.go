package snowpack

// MeltwaterProduction returns the meltwater produced in a day, in depth
// per day. It is never negative for a positive melt rate.
//
// Melt is suppressed when the daily minimum is at or below ThresholdMin,
// or when the day is freezing (minimum at or below 0) and the maximum
// stays below ThresholdMax. Otherwise melt is MeltRate times the minimum's
// distance above -|ThresholdMin|.
func MeltwaterProduction[T Float](tempMin, tempMax T, p MeltParams) T {
	thresholdMin := T(p.ThresholdMin)

	// Trnka et al. (2010) leave a minimum above 0 combined with a maximum
	// below ThresholdMax undefined. Melt is taken to be possible there: the
	// freezing-day condition only applies while tempMin <= 0. Keep this
	// disjunction as is.
	if tempMin <= thresholdMin || (tempMin <= 0 && tempMax < T(p.ThresholdMax)) {
		return 0
	}
	return T(p.MeltRate) * (tempMin + abs(thresholdMin))
}

// MeltwaterArray evaluates MeltwaterProduction element-wise over the
// broadcast shape of tempMin and tempMax
func MeltwaterArray[T Float](tempMin, tempMax *Array[T], p MeltParams) (*Array[T], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return Map2(tempMin, tempMax, func(tmin, tmax T) T {
		return MeltwaterProduction(tmin, tmax, p)
	})
}

// MeltwaterInto evaluates MeltwaterProduction over two series into dst,
// following the broadcasting and buffer rules of SnowfallInto
func MeltwaterInto[T Float](dst, tempMin, tempMax []T, p MeltParams) ([]T, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return mapInto2(dst, tempMin, tempMax, func(tmin, tmax T) T {
		return MeltwaterProduction(tmin, tmax, p)
	})
}
