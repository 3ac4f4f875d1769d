package snowpack

// SublimedSnowCover returns the snow cover lost to sublimation in a day:
// exactly 1 when the previous day's cover is strictly above
// ThresholdSnowCover, otherwise 0
func SublimedSnowCover[T Float](snowCoverPrevious T, p SublimationParams) T {
	if snowCoverPrevious > T(p.ThresholdSnowCover) {
		return 1
	}
	return 0
}

// SublimationArray evaluates SublimedSnowCover element-wise
func SublimationArray[T Float](snowCoverPrevious *Array[T], p SublimationParams) (*Array[T], error) {
	return Map1(snowCoverPrevious, func(cover T) T {
		return SublimedSnowCover(cover, p)
	}), nil
}

// SublimationInto evaluates SublimedSnowCover over a series into dst
func SublimationInto[T Float](dst, snowCoverPrevious []T, p SublimationParams) ([]T, error) {
	return mapInto1(dst, snowCoverPrevious, func(cover T) T {
		return SublimedSnowCover(cover, p)
	})
}
