// FilePath: internal/models/models.views.go
package models

// ChartPoint projects a reading for the 24h dashboard chart.
type ChartPoint struct {
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WaterLevel  float64 `json:"water_level"`
}

// ReadingPage is a page of readings plus paginator metadata.
type ReadingPage struct {
	Data        []*SensorReading `json:"data"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	Total       int64            `json:"total"`
	LastPage    int              `json:"last_page"`
}

// NewReadingPage assembles a page object. LastPage is always at least 1 so
// an empty result set still renders as a single empty page.
func NewReadingPage(data []*SensorReading, page, perPage int, total int64) *ReadingPage {
	if data == nil {
		data = []*SensorReading{}
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return &ReadingPage{
		Data:        data,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}

// ChartPointFromReading maps a reading to its chart projection with a
// time-of-day label.
func ChartPointFromReading(r *SensorReading) ChartPoint {
	return ChartPoint{
		Timestamp:   r.CreatedAt.Format("15:04"),
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		WaterLevel:  r.WaterLevel,
	}
}

// DashboardView is the full dashboard payload for one user.
type DashboardView struct {
	LatestReadings []*SensorReading `json:"latest_readings"`
	ChartData      []ChartPoint     `json:"chart_data"`
	AllReadings    *ReadingPage     `json:"all_readings"`
	CurrentReading *SensorReading   `json:"current_reading"`
}

// SearchView is the searchable table payload, echoing the active term.
type SearchView struct {
	Readings *ReadingPage `json:"readings"`
	Search   string       `json:"search"`
}
