package workflow

import (
	"net/url"
	"strings"

	"service-calendar/internal/model"
)

const addressSeparator = ", "

// FormatAddress joins the present address components. It returns "" only
// when every component is absent.
func FormatAddress(addr model.CustomerAddress) string {
	return strings.Join(addr.Parts(), addressSeparator)
}

// DirectionsURL builds a map directions link with address as destination.
func DirectionsURL(base, address string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?api=1&destination=" + url.QueryEscape(address)
	}
	q := u.Query()
	q.Set("api", "1")
	q.Set("destination", address)
	u.RawQuery = q.Encode()
	return u.String()
}
