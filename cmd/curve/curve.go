package curve

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal/curves"
	"github.com/markusressel/boost2go/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

// margin of the plotted input range around the curve points
const plotMargin = 10

var Command = &cobra.Command{
	Use:              "curve",
	Short:            "Curve related commands",
	TraverseChildren: true,
}

// render returns a table describing the curve, followed by a plot of its output
func render(title string, config curves.Config) (string, error) {
	rows := [][]string{
		{"Sensor", config.SensorId},
		{"Stop / Start", fmt.Sprintf("%s / %s", formatValue(config.StopStart.StopTemp), formatValue(config.StopStart.StartTemp))},
	}
	if len(config.LoadSensorId) > 0 {
		rows = append(rows, []string{"Load Sensor", config.LoadSensorId})
	}
	if config.StepSpeed > 0 {
		rows = append(rows, []string{"Step Speed", strconv.Itoa(config.StepSpeed)})
	}
	for _, point := range config.Points {
		rows = append(rows, []string{formatValue(point.Input), formatValue(point.Output) + "%"})
	}

	tableString, err := global.RenderTable(table.Table{
		Headers: []string{title, ""},
		Rows:    rows,
	})
	if err != nil {
		return "", err
	}

	graph := asciigraph.Plot(
		plotValues(config),
		asciigraph.Height(15),
		asciigraph.Width(100),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Caption("Output % / Input"),
	)
	return tableString + "\n" + graph, nil
}

// plotValues evaluates the curve for every integer input around its points
func plotValues(config curves.Config) []float64 {
	var inputs []float64
	for _, point := range config.Points {
		inputs = append(inputs, point.Input)
	}
	start := int(util.Min(inputs)) - plotMargin
	end := int(util.Max(inputs)) + plotMargin

	values := make([]float64, 0, end-start+1)
	for input := start; input <= end; input++ {
		values = append(values, curves.Evaluate(config.Points, float64(input)))
	}
	return values
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
