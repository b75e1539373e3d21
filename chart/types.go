package chart

type Chart struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label           string     `json:"label,omitempty"`
	Data            []*float64 `json:"data"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	BorderWidth     int        `json:"borderWidth"`
}

type ChartOptions struct {
	Responsive bool                  `json:"responsive"`
	Plugins    ChartPlugins          `json:"plugins"`
	Scales     map[string]ChartScale `json:"scales"`
}

type ChartPlugins struct {
	Legend   ChartLegend   `json:"legend"`
	Title    ChartTitle    `json:"title"`
	Subtitle ChartSubtitle `json:"subtitle"`
}

type ChartLegend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

type ChartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

type ChartSubtitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

type ChartScale struct {
	Type        string          `json:"type,omitempty"`
	Display     bool            `json:"display"`
	Position    string          `json:"position,omitempty"`
	BeginAtZero bool            `json:"beginAtZero,omitempty"`
	Title       ChartScaleTitle `json:"title,omitempty"`
}

type ChartScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}
