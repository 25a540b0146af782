package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/natededev/weather-dashboard/internal/geo"
	"github.com/natededev/weather-dashboard/internal/store"
	"github.com/natededev/weather-dashboard/internal/weather"
)

var validate = validator.New()

// defaultLocation is shown on first load before the user ever picks a city.
const defaultLocation = "New York"

// WeatherProvider is the pipeline surface the handlers need.
type WeatherProvider interface {
	GetWeather(ctx context.Context, query string) (weather.Result, error)
	Latest() (weather.Result, bool)
}

// LocationSearcher is the resolver surface the handlers need.
type LocationSearcher interface {
	SearchForgiving(ctx context.Context, query string, limit int) ([]weather.LocationSuggestion, error)
	ReverseResolve(ctx context.Context, lat, lon float64) (weather.LocationSuggestion, bool, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc WeatherProvider, searcher LocationSearcher, prefs *store.PrefsStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		query := c.Query("location")

		// No explicit location: serve the latest published result if there is
		// one, otherwise fall through to the last-used location.
		if query == "" {
			if res, ok := svc.Latest(); ok {
				return c.JSON(res)
			}
			if last, err := prefs.LastLocation(); err == nil {
				query = last
			} else {
				query = defaultLocation
			}
		}

		res, err := svc.GetWeather(c.Context(), query)
		if err != nil {
			if errors.Is(err, weather.ErrLocationNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "location not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		// Requesting a location is the explicit user action that persists it.
		if err := prefs.SaveLastLocation(query); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save location")
		}

		return c.JSON(res)
	})

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		var req searchQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		suggestions, err := searcher.SearchForgiving(c.Context(), req.Query, req.Limit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "location search unavailable")
		}

		return c.JSON(fiber.Map{"suggestions": suggestions})
	})

	v1.Get("/locations/reverse", func(c *fiber.Ctx) error {
		var req coordsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		suggestion, found, err := searcher.ReverseResolve(c.Context(), req.Lat, req.Lon)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "reverse geocoding unavailable")
		}
		if !found {
			return fiber.NewError(fiber.StatusNotFound, "no place found for coordinates")
		}

		return c.JSON(suggestion)
	})

	// The browser performs the actual positioning with these parameters and
	// posts back either coordinates or the PositionError code.
	v1.Get("/locations/geolocate", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"timeoutMs":    geo.GeolocationTimeout.Milliseconds(),
			"maximumAgeMs": geo.GeolocationMaxAge.Milliseconds(),
		})
	})

	v1.Post("/locations/geolocate", func(c *fiber.Ctx) error {
		var body geolocateBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}

		if body.ErrorCode != 0 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   true,
				"message": geo.GeolocationMessage(body.ErrorCode),
			})
		}

		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		suggestion, found, err := searcher.ReverseResolve(c.Context(), body.Lat, body.Lon)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "reverse geocoding unavailable")
		}
		if !found {
			return fiber.NewError(fiber.StatusNotFound, "no place found for your position")
		}

		return c.JSON(suggestion)
	})

	v1.Get("/settings", func(c *fiber.Ctx) error {
		settings, err := prefs.LoadSettings()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(store.DefaultSettings())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load settings")
		}
		return c.JSON(settings)
	})

	v1.Put("/settings", func(c *fiber.Ctx) error {
		var settings store.Settings
		if err := c.BodyParser(&settings); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
		if err := validate.Struct(settings); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := prefs.SaveSettings(settings); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save settings")
		}
		return c.JSON(settings)
	})
}

// searchQuery holds query parameters for the location search endpoint.
type searchQuery struct {
	Query string `validate:"required"`
	Limit int    `validate:"min=1,max=10"`
}

func (s *searchQuery) bind(c *fiber.Ctx) error {
	s.Query = c.Query("q")
	s.Limit = c.QueryInt("limit", 5)
	return validate.Struct(s)
}

// coordsQuery holds lat/lon query parameters.
type coordsQuery struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

func (q *coordsQuery) bind(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return errors.New("invalid lon")
	}

	q.Lat = lat
	q.Lon = lon
	return validate.Struct(q)
}

// geolocateBody is the browser geolocation outcome: either coordinates or a
// W3C PositionError code.
type geolocateBody struct {
	Lat       float64 `json:"lat" validate:"latitude"`
	Lon       float64 `json:"lon" validate:"longitude"`
	ErrorCode int     `json:"errorCode,omitempty"`
}
