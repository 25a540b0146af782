package geo

import "time"

// Browser geolocation parameters the dashboard client is expected to use when
// calling navigator.geolocation before posting the result back to us.
const (
	GeolocationTimeout = 10 * time.Second
	GeolocationMaxAge  = 5 * time.Minute
)

// W3C Geolocation API PositionError codes.
const (
	GeoErrPermissionDenied    = 1
	GeoErrPositionUnavailable = 2
	GeoErrTimeout             = 3
)

// GeolocationMessage maps a browser geolocation failure code to a distinct
// user-facing message.
func GeolocationMessage(code int) string {
	switch code {
	case GeoErrPermissionDenied:
		return "Location access denied. Please enable location permissions and try again."
	case GeoErrPositionUnavailable:
		return "Your location is unavailable. Try searching for your city instead."
	case GeoErrTimeout:
		return "Locating you took too long. Please try again."
	default:
		return "Unable to determine your location."
	}
}
