package weather

// ConditionTag is one of the 8 canonical weather categories used throughout
// the dashboard, decoupled from any provider's icon vocabulary.
type ConditionTag string

const (
	TagSunny        ConditionTag = "sunny"
	TagPartlyCloudy ConditionTag = "partly-cloudy"
	TagCloudy       ConditionTag = "cloudy"
	TagRainy        ConditionTag = "rainy"
	TagStormy       ConditionTag = "stormy"
	TagSnowy        ConditionTag = "snowy"
	TagFoggy        ConditionTag = "foggy"
	TagWindy        ConditionTag = "windy"
)

// Coordinates is a latitude/longitude pair. Value equality only.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationSuggestion is one geocoding search result. ID is derived from
// lat/lon/index to disambiguate duplicates within a result set; it is not a
// stable external identifier.
type LocationSuggestion struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentWeatherData holds the normalized current conditions.
type CurrentWeatherData struct {
	Temperature   float64      `json:"temperature"`
	FeelsLike     float64      `json:"feelsLike"`
	Condition     string       `json:"condition" validate:"required"`
	Description   string       `json:"description" validate:"required"`
	Icon          ConditionTag `json:"icon" validate:"required,oneof=sunny partly-cloudy cloudy rainy stormy snowy foggy windy"`
	Humidity      int          `json:"humidity"`
	WindSpeed     float64      `json:"windSpeed"`
	WindDirection string       `json:"windDirection" validate:"required"`
	Pressure      int          `json:"pressure"`
	Visibility    float64      `json:"visibility"`
	UVIndex       float64      `json:"uvIndex"`
	Sunrise       string       `json:"sunrise" validate:"required"`
	Sunset        string       `json:"sunset" validate:"required"`
	DewPoint      float64      `json:"dewPoint"`
	Timestamp     int64        `json:"timestamp,omitempty"`
}

// HourlyWeatherData is one entry of the hourly series. Time is either "Now"
// or a localized clock string.
type HourlyWeatherData struct {
	Time          string       `json:"time" validate:"required"`
	Temperature   float64      `json:"temperature"`
	Icon          ConditionTag `json:"icon" validate:"required,oneof=sunny partly-cloudy cloudy rainy stormy snowy foggy windy"`
	Precipitation int          `json:"precipitation" validate:"min=0,max=100"`
	Humidity      int          `json:"humidity"`
	Pressure      int          `json:"pressure"`
	WindSpeed     float64      `json:"windSpeed,omitempty"`
	FeelsLike     float64      `json:"feelsLike,omitempty"`
}

// DailyWeatherData is one day of the aggregated forecast.
type DailyWeatherData struct {
	Day           string       `json:"day" validate:"required"`
	Date          string       `json:"date,omitempty"`
	High          float64      `json:"high"`
	Low           float64      `json:"low"`
	Icon          ConditionTag `json:"icon" validate:"required,oneof=sunny partly-cloudy cloudy rainy stormy snowy foggy windy"`
	Precipitation int          `json:"precipitation" validate:"min=0,max=100"`
	Humidity      int          `json:"humidity,omitempty"`
	WindSpeed     float64      `json:"windSpeed,omitempty"`
	Description   string       `json:"description,omitempty"`
}

// WeatherData is the single aggregate the rendering layer consumes. Its shape
// is identical whether it came from the live API or the mock generator, so
// consumers can treat every update as an atomic swap.
type WeatherData struct {
	Current     CurrentWeatherData  `json:"current"`
	Hourly      []HourlyWeatherData `json:"hourly" validate:"required,min=6,dive"`
	Daily       []DailyWeatherData  `json:"daily" validate:"required,min=1,max=7,dive"`
	Location    string              `json:"location,omitempty"`
	LastUpdated string              `json:"lastUpdated,omitempty"`
}
