package priority

type labelBand struct {
	min   int
	label string
}

var labelBands = []labelBand{
	{min: 80, label: "Critical"},
	{min: 60, label: "High"},
	{min: 40, label: "Medium"},
	{min: 20, label: "Low"},
}

var colorBands = []labelBand{
	{min: 80, label: "destructive"},
	{min: 60, label: "warning"},
	{min: 40, label: "default"},
}

// GetPriorityLabel names the band a score falls in.
func GetPriorityLabel(score int) string {
	return lookupBand(labelBands, score, "Very Low")
}

// GetPriorityColor returns the presentation tag for a score.
func GetPriorityColor(score int) string {
	return lookupBand(colorBands, score, "secondary")
}

func lookupBand(bands []labelBand, score int, fallback string) string {
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return fallback
}
