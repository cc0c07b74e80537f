package ui

import (
	"fmt"

	"cloud-ca/internal/stats"
)

// statLines summarises the most recent sample for the HUD.
func statLines(series *stats.Series) []string {
	if series == nil {
		return nil
	}
	last, ok := series.Last()
	if !ok {
		return []string{"step -"}
	}
	lines := []string{fmt.Sprintf("step %d", last.Step)}
	if last.Humidity+last.Active+last.Cloud > 0 {
		return append(lines,
			fmt.Sprintf("humidity %d", last.Humidity),
			fmt.Sprintf("active   %d", last.Active),
			fmt.Sprintf("cloud    %d", last.Cloud))
	}
	return append(lines,
		fmt.Sprintf("droplets %d", last.Population),
		fmt.Sprintf("mean     %.2f", last.Mean),
		fmt.Sprintf("mass     %.1f", last.TotalMass))
}
