package snowpack

// Snowfall returns the part of precipitation that falls as snow, in the
// unit of precipitation.
//
// A daily minimum at or below ThresholdLower turns all precipitation into
// snow. Between the thresholds the snow fraction falls linearly from 1 to 0.
// A daily minimum at or above ThresholdUpper yields no snow, so a tie with
// the upper threshold gives zero.
//
// The thresholds must differ. Equal thresholds make the interpolation
// branch unreachable rather than divide by zero; use
// AccumulationParams.Validate or the batched entry points to reject them.
func Snowfall[T Float](precipitation, tempMin T, p AccumulationParams) T {
	upper := T(p.ThresholdUpper)
	lower := T(p.ThresholdLower)

	switch {
	case tempMin <= lower:
		return precipitation
	case tempMin < upper:
		return precipitation * (1 - (tempMin-lower)/abs(upper-lower))
	default:
		return 0
	}
}

// SnowfallArray evaluates Snowfall element-wise over the broadcast shape
// of precipitation and tempMin
func SnowfallArray[T Float](precipitation, tempMin *Array[T], p AccumulationParams) (*Array[T], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return Map2(precipitation, tempMin, func(pr, tmin T) T {
		return Snowfall(pr, tmin, p)
	})
}

// SnowfallInto evaluates Snowfall over two series into dst. Series of
// length 1 broadcast against the other. A nil dst is allocated, otherwise
// its length must equal the broadcast length. dst may alias an input.
func SnowfallInto[T Float](dst, precipitation, tempMin []T, p AccumulationParams) ([]T, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return mapInto2(dst, precipitation, tempMin, func(pr, tmin T) T {
		return Snowfall(pr, tmin, p)
	})
}
