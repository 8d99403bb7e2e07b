package models

type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartData is the labels-by-datasets payload of every /charts endpoint.
type ChartData struct {
	Labels    []string       `json:"labels"`
	Datasets  []ChartDataset `json:"datasets"`
	ChartType string         `json:"chartType"`
}

// Value returns dataset d at label index i, or 0 when the dataset is short.
func (c *ChartData) Value(d, i int) float64 {
	if d < 0 || d >= len(c.Datasets) {
		return 0
	}
	data := c.Datasets[d].Data
	if i < 0 || i >= len(data) {
		return 0
	}
	return data[i]
}

// Max returns the largest value across all datasets.
func (c *ChartData) Max() float64 {
	var max float64
	for _, ds := range c.Datasets {
		for _, v := range ds.Data {
			if v > max {
				max = v
			}
		}
	}
	return max
}
