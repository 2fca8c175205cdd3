package conditions

import "time"

// WindSample is one hour of the wind forecast, in m/s.
type WindSample struct {
	Time         time.Time
	SpeedMps     *float64
	GustsMps     *float64
	DirectionDeg *float64
}

// WaveSample is one hour of the marine forecast.
type WaveSample struct {
	Time         time.Time
	HeightM      *float64
	PeriodS      *float64
	DirectionDeg *float64
	PeakPeriodS  *float64
}

// BuildSeries merges the wind and wave forecasts over the anchor series.
// Samples from the other series are matched on exact timestamp; hours with
// no match leave those fields absent.
func BuildSeries(anchor Anchor, wind []WindSample, waves []WaveSample, quality string) Series {
	if anchor == AnchorWaves {
		byTime := make(map[int64]WindSample, len(wind))
		for _, w := range wind {
			byTime[w.Time.Unix()] = w
		}
		series := make(Series, 0, len(waves))
		for _, wv := range waves {
			r := Reading{Time: wv.Time, WaterQuality: quality}
			applyWave(&r, wv)
			if w, ok := byTime[wv.Time.Unix()]; ok {
				applyWind(&r, w)
			}
			series = append(series, r)
		}
		return series
	}

	byTime := make(map[int64]WaveSample, len(waves))
	for _, wv := range waves {
		byTime[wv.Time.Unix()] = wv
	}
	series := make(Series, 0, len(wind))
	for _, w := range wind {
		r := Reading{Time: w.Time, WaterQuality: quality}
		applyWind(&r, w)
		if wv, ok := byTime[w.Time.Unix()]; ok {
			applyWave(&r, wv)
		}
		series = append(series, r)
	}
	return series
}

// CurrentReading picks the sample nearest to now from each series
// independently and merges them. The reading's time is the anchor
// sample's time. ok is false when the anchor series is empty.
func CurrentReading(anchor Anchor, wind []WindSample, waves []WaveSample, quality string, now time.Time) (Reading, bool) {
	r := Reading{WaterQuality: quality}

	windTimes := make([]time.Time, len(wind))
	for i, w := range wind {
		windTimes[i] = w.Time
	}
	waveTimes := make([]time.Time, len(waves))
	for i, wv := range waves {
		waveTimes[i] = wv.Time
	}

	wi := NearestIndex(windTimes, now)
	vi := NearestIndex(waveTimes, now)
	if wi >= 0 {
		applyWind(&r, wind[wi])
	}
	if vi >= 0 {
		applyWave(&r, waves[vi])
	}

	switch anchor {
	case AnchorWaves:
		if vi < 0 {
			return Reading{}, false
		}
		r.Time = waves[vi].Time
	default:
		if wi < 0 {
			return Reading{}, false
		}
		r.Time = wind[wi].Time
	}
	return r, true
}

func applyWind(r *Reading, w WindSample) {
	r.WindSpeedMps = w.SpeedMps
	r.WindGustsMps = w.GustsMps
	r.WindDirectionDeg = w.DirectionDeg
}

func applyWave(r *Reading, wv WaveSample) {
	r.WaveHeightM = wv.HeightM
	r.WavePeriodS = wv.PeriodS
	r.WaveDirectionDeg = wv.DirectionDeg
}
