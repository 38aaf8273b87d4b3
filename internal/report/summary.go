// Package report is the output boundary: it writes the textual summary and
// renders the temperature chart.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/devyanshfaye/weather-analytics/internal/analysis"
	"github.com/devyanshfaye/weather-analytics/internal/weather"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04 MST"
)

// WriteSummary writes the textual report for one run. The snapshot is
// optional: current conditions are best effort and may be absent.
func WriteSummary(w io.Writer, loc weather.Location, res analysis.Result, snap *weather.Snapshot) error {
	header := loc.Name
	if loc.Country != "" {
		header = fmt.Sprintf("%s (%s)", loc.Name, loc.Country)
	}
	fmt.Fprintf(w, "Weather trends for %s\n\n", header)

	fmt.Fprintf(w, "Observations:           %d\n", res.Observations)
	fmt.Fprintf(w, "Min temperature:        %.1f °C at %s\n", res.Min.Value, res.Min.Timestamp.Format(timeLayout))
	fmt.Fprintf(w, "Max temperature:        %.1f °C at %s\n", res.Max.Value, res.Max.Timestamp.Format(timeLayout))
	fmt.Fprintf(w, "Mean temperature:       %.2f °C\n", res.MeanTemp)
	fmt.Fprintf(w, "Trend:                  %s\n", res.Trend)
	fmt.Fprintf(w, "Longest warming streak: %d day(s)\n", res.WarmingStreakDays)

	if len(res.Days) > 0 {
		fmt.Fprintf(w, "\nDaily summary:\n")
		if err := writeDayTable(w, res.Days); err != nil {
			return err
		}
	}

	if len(res.HottestDays) > 0 {
		fmt.Fprintf(w, "\nTop %d hottest days:\n", len(res.HottestDays))
		if err := writeDayTable(w, res.HottestDays); err != nil {
			return err
		}
	}

	if len(res.Anomalies) > 0 {
		fmt.Fprintf(w, "\nAnomalies (deviation from mean):\n")
		for _, obs := range res.Anomalies {
			fmt.Fprintf(w, "  %s  %.1f °C\n", obs.Timestamp.Format(timeLayout), obs.Temperature)
		}
	}

	if snap != nil {
		fmt.Fprintf(w, "\nCurrent conditions: %.1f °C", snap.Temperature)
		if snap.Humidity > 0 {
			fmt.Fprintf(w, ", %.0f%% humidity", snap.Humidity)
		}
		if snap.WindSpeed > 0 {
			fmt.Fprintf(w, ", wind %.1f m/s", snap.WindSpeed)
		}
		fmt.Fprintf(w, ", %s", snap.Condition)
		if len(snap.Providers) > 0 {
			fmt.Fprintf(w, " [")
			for i, p := range snap.Providers {
				if i > 0 {
					fmt.Fprintf(w, ", ")
				}
				fmt.Fprintf(w, "%s", p.ProviderName)
			}
			fmt.Fprintf(w, "]")
		}
		fmt.Fprintln(w)
	}

	return nil
}

func writeDayTable(w io.Writer, days []analysis.DaySummary) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  DATE\tMIN °C\tMAX °C\tAVG °C\tHUMIDITY %\tWIND m/s")
	for _, d := range days {
		fmt.Fprintf(tw, "  %s\t%.1f\t%.1f\t%.1f\t%.0f\t%.1f\n",
			d.Date.Format(dateLayout), d.MinTemp, d.MaxTemp, d.AvgTemp, d.AvgHumidity, d.MaxWind)
	}
	return tw.Flush()
}
