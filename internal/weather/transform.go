package weather

import (
	"math"
	"time"
)

// iconTable maps OpenWeather icon-code prefixes to condition tags. Day and
// night variants of the same physical icon ("01d"/"01n") collapse to one tag.
// TagWindy has no OpenWeather icon; it only appears in generated data.
var iconTable = map[string]ConditionTag{
	"01": TagSunny,
	"02": TagPartlyCloudy,
	"03": TagCloudy,
	"04": TagCloudy,
	"09": TagRainy,
	"10": TagRainy,
	"11": TagStormy,
	"13": TagSnowy,
	"50": TagFoggy,
}

// MapIcon maps an external icon code to a condition tag. Codes outside the
// table map to the safe default, sunny.
func MapIcon(code string) ConditionTag {
	if len(code) >= 2 {
		if tag, ok := iconTable[code[:2]]; ok {
			return tag
		}
	}
	return TagSunny
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassDirection buckets wind degrees into 16 sectors of 22.5° each.
func CompassDirection(degrees float64) string {
	idx := int(math.Round(degrees/22.5)) % 16
	idx = (idx%16 + 16) % 16
	return compassPoints[idx]
}

// currentPayload is the wire shape of the /weather endpoint.
type currentPayload struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Name string `json:"name"`
}

// forecastPayload is the wire shape of the /forecast endpoint: a list of
// 3-hour entries plus city metadata.
type forecastPayload struct {
	List []forecastEntry `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"city"`
}

type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Pop float64 `json:"pop"`
}

const clockLayout = "3:04 PM"

// transformCurrent maps the /weather payload into the normalized shape.
// UV index and dew point are not exposed by this endpoint and stay 0.
func transformCurrent(p currentPayload) CurrentWeatherData {
	cur := CurrentWeatherData{
		Temperature:   p.Main.Temp,
		FeelsLike:     p.Main.FeelsLike,
		Humidity:      p.Main.Humidity,
		Pressure:      p.Main.Pressure,
		WindSpeed:     p.Wind.Speed,
		WindDirection: CompassDirection(p.Wind.Deg),
		Visibility:    float64(p.Visibility) / 1000,
		Sunrise:       time.Unix(p.Sys.Sunrise, 0).Format(clockLayout),
		Sunset:        time.Unix(p.Sys.Sunset, 0).Format(clockLayout),
		Icon:          TagSunny,
		Condition:     "Clear",
		Description:   "clear sky",
		Timestamp:     p.Dt,
	}

	if len(p.Weather) > 0 {
		cur.Condition = p.Weather[0].Main
		cur.Description = p.Weather[0].Description
		cur.Icon = MapIcon(p.Weather[0].Icon)
	}
	return cur
}

// hourlyWindow is how many 3-hour forecast entries feed the hourly strip. The
// API only has 3-hour granularity; calling the series "hourly" is a display
// approximation baked into the design.
const hourlyWindow = 8

func transformHourly(entries []forecastEntry, now time.Time) []HourlyWeatherData {
	n := len(entries)
	if n > hourlyWindow {
		n = hourlyWindow
	}

	hourly := make([]HourlyWeatherData, 0, n)
	for _, e := range entries[:n] {
		t := time.Unix(e.Dt, 0)

		label := t.Format(clockLayout)
		if t.Hour() == now.Hour() {
			label = "Now"
		}

		icon := TagSunny
		if len(e.Weather) > 0 {
			icon = MapIcon(e.Weather[0].Icon)
		}

		hourly = append(hourly, HourlyWeatherData{
			Time:          label,
			Temperature:   e.Main.Temp,
			Icon:          icon,
			Precipitation: int(math.Round(e.Pop * 100)),
			Humidity:      e.Main.Humidity,
			Pressure:      e.Main.Pressure,
			WindSpeed:     e.Wind.Speed,
			FeelsLike:     e.Main.FeelsLike,
		})
	}
	return hourly
}

const maxDailyBuckets = 7

// transformDaily buckets forecast entries by weekday-short label in insertion
// order. High/low are the running max/min over each bucket. The day's
// representative icon/description/precipitation come from the entry with the
// strictly greatest precipitation probability seen so far; the first entry
// initializes the bucket.
func transformDaily(entries []forecastEntry) []DailyWeatherData {
	type bucket struct {
		data   DailyWeatherData
		maxPop float64
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, e := range entries {
		t := time.Unix(e.Dt, 0)
		day := t.Format("Mon")

		icon := TagSunny
		desc := ""
		if len(e.Weather) > 0 {
			icon = MapIcon(e.Weather[0].Icon)
			desc = e.Weather[0].Description
		}

		b, ok := buckets[day]
		if !ok {
			if len(order) >= maxDailyBuckets {
				continue
			}
			buckets[day] = &bucket{
				data: DailyWeatherData{
					Day:           day,
					Date:          t.Format("2006-01-02"),
					High:          e.Main.TempMax,
					Low:           e.Main.TempMin,
					Icon:          icon,
					Precipitation: int(math.Round(e.Pop * 100)),
					Humidity:      e.Main.Humidity,
					WindSpeed:     e.Wind.Speed,
					Description:   desc,
				},
				maxPop: e.Pop,
			}
			order = append(order, day)
			continue
		}

		if e.Main.TempMax > b.data.High {
			b.data.High = e.Main.TempMax
		}
		if e.Main.TempMin < b.data.Low {
			b.data.Low = e.Main.TempMin
		}

		// Strictly greater pop takes over the representative fields only;
		// high/low are never owned by the tie-break.
		if e.Pop > b.maxPop {
			b.maxPop = e.Pop
			b.data.Icon = icon
			b.data.Description = desc
			b.data.Precipitation = int(math.Round(e.Pop * 100))
		}
	}

	daily := make([]DailyWeatherData, 0, len(order))
	for _, day := range order {
		daily = append(daily, buckets[day].data)
	}
	return daily
}
