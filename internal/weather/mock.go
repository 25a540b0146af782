package weather

import (
	"math"
	"math/rand"
	"time"
)

// mockPattern is the fixed 12-element condition cycle for generated hourly
// entries. A small random forward skip per hour keeps the series from looking
// perfectly periodic.
var mockPattern = [12]ConditionTag{
	TagSunny, TagPartlyCloudy, TagCloudy, TagPartlyCloudy,
	TagSunny, TagSunny, TagPartlyCloudy, TagCloudy,
	TagRainy, TagCloudy, TagPartlyCloudy, TagSunny,
}

var mockDaily = []DailyWeatherData{
	{Day: "Today", High: 75, Low: 58, Icon: TagPartlyCloudy, Precipitation: 10, Humidity: 62, WindSpeed: 8, Description: "partly cloudy"},
	{High: 78, Low: 60, Icon: TagSunny, Precipitation: 0, Humidity: 55, WindSpeed: 6, Description: "clear sky"},
	{High: 72, Low: 57, Icon: TagRainy, Precipitation: 80, Humidity: 84, WindSpeed: 12, Description: "light rain"},
	{High: 68, Low: 55, Icon: TagStormy, Precipitation: 90, Humidity: 88, WindSpeed: 18, Description: "thunderstorm"},
	{High: 70, Low: 54, Icon: TagCloudy, Precipitation: 20, Humidity: 70, WindSpeed: 9, Description: "overcast clouds"},
	{High: 74, Low: 56, Icon: TagPartlyCloudy, Precipitation: 5, Humidity: 60, WindSpeed: 7, Description: "few clouds"},
	{High: 77, Low: 59, Icon: TagSunny, Precipitation: 0, Humidity: 52, WindSpeed: 5, Description: "clear sky"},
}

// GenerateMock produces a fully populated, internally consistent dataset used
// whenever live data is unavailable or the API key is not configured. The
// structure is deterministic (24 hourly entries starting "Now", 7 daily
// entries); only the noise inside each entry is randomized.
func GenerateMock(now time.Time) WeatherData {
	hourly := make([]HourlyWeatherData, 0, 24)
	patternIdx := 0

	for i := 0; i < 24; i++ {
		t := now.Add(time.Duration(i) * time.Hour)
		h := t.Hour()

		label := t.Format(clockLayout)
		if i == 0 {
			label = "Now"
		}

		// Daytime follows a sinusoid with the trough at 6am and the peak at
		// 6pm; nights sit in a cooler randomized band. Jitter of ±2 on top.
		var temp float64
		if h >= 6 && h <= 18 {
			temp = 68 - 8*math.Cos(math.Pi*float64(h-6)/12)
		} else {
			temp = 56 + rand.Float64()*6
		}
		temp += rand.Float64()*4 - 2

		cond := mockPattern[patternIdx%len(mockPattern)]
		patternIdx += 1 + rand.Intn(3)

		var precip int
		switch cond {
		case TagRainy:
			precip = 60 + rand.Intn(31)
		case TagCloudy:
			precip = rand.Intn(21)
		case TagPartlyCloudy:
			precip = rand.Intn(11)
		}

		humidity := 40 + rand.Intn(30) + precip/3
		if humidity > 95 {
			humidity = 95
		}

		hourly = append(hourly, HourlyWeatherData{
			Time:          label,
			Temperature:   math.Round(temp),
			Icon:          cond,
			Precipitation: precip,
			Humidity:      humidity,
			Pressure:      1005 + rand.Intn(26),
			WindSpeed:     3 + rand.Float64()*12,
			FeelsLike:     math.Round(temp) + 2,
		})
	}

	daily := make([]DailyWeatherData, len(mockDaily))
	copy(daily, mockDaily)
	for i := range daily {
		d := now.AddDate(0, 0, i)
		if i > 0 {
			daily[i].Day = d.Format("Mon")
		}
		daily[i].Date = d.Format("2006-01-02")
	}

	return WeatherData{
		Current: CurrentWeatherData{
			Temperature:   68,
			FeelsLike:     70,
			Condition:     "Partly Cloudy",
			Description:   "partly cloudy",
			Icon:          TagPartlyCloudy,
			Humidity:      65,
			WindSpeed:     8,
			WindDirection: "NW",
			Pressure:      1013,
			Visibility:    10,
			UVIndex:       6,
			Sunrise:       "6:42 AM",
			Sunset:        "7:38 PM",
			DewPoint:      55,
			Timestamp:     now.Unix(),
		},
		Hourly:      hourly,
		Daily:       daily,
		Location:    "San Francisco, US",
		LastUpdated: now.Format(time.RFC3339),
	}
}
