package utils

import "hash/fnv"

// chartPalette is the fixed set of chart colors categories map into.
var chartPalette = []string{
	"#0088FE", "#00C49F", "#FFBB28", "#FF8042",
	"#A28BFA", "#FF6699", "#33CC99", "#FF4444",
}

// CategoryColor assigns a deterministic palette color to a category name.
// The assignment is keyed by the name itself, not by position in a result
// set, so a category keeps its color as others come and go.
func CategoryColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return chartPalette[h.Sum32()%uint32(len(chartPalette))]
}
