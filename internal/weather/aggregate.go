package weather

import "time"

// meanAcc accumulates a mean over only the readings that actually carry a
// value for the field. Open-Meteo's current-weather payload has no humidity
// or pressure, so blindly averaging zeroes would drag those fields down.
type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) {
	if v == 0 {
		return
	}
	a.sum += v
	a.n++
}

func (a *meanAcc) mean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

// AggregateReadings combines multiple provider readings into a single Snapshot.
// Numeric fields are averaged over the providers that reported them; the
// condition is selected by majority (first wins a tie).
func AggregateReadings(loc Location, readings []ProviderReading) Snapshot {
	if len(readings) == 0 {
		return Snapshot{
			Location:  loc,
			Timestamp: time.Now().UTC(),
			Condition: ConditionUnknown,
		}
	}

	var humidity, wind, pressure, precip meanAcc
	conditionCounts := make(map[Condition]int)
	providers := make([]ProviderContribution, 0, len(readings))
	var newestTS time.Time
	var sumTemp float64

	for _, r := range readings {
		// Temperature is always reported; 0 °C is a legitimate value.
		sumTemp += r.TemperatureC
		humidity.add(r.HumidityPct)
		wind.add(r.WindSpeedMS)
		pressure.add(r.PressureHpa)
		precip.add(r.PrecipMm)

		conditionCounts[r.Condition]++

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}

		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	// Pick majority condition.
	bestCond := ConditionUnknown
	bestCount := 0
	for cond, count := range conditionCounts {
		if count > bestCount {
			bestCount = count
			bestCond = cond
		}
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	return Snapshot{
		Location:    loc,
		Timestamp:   newestTS,
		Temperature: sumTemp / float64(len(readings)),
		Humidity:    humidity.mean(),
		WindSpeed:   wind.mean(),
		Pressure:    pressure.mean(),
		PrecipMM:    precip.mean(),
		Condition:   bestCond,
		Providers:   providers,
	}
}
