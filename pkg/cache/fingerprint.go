package cache

import (
	"fmt"
	"strings"
)

// Fingerprint derives the cache key for a location. Latitude and
// longitude are fixed to 4 decimal places (about 11 m on the ground),
// elevation to 1 decimal place, so two samples at the same spot always
// hit the same slot while nearby distinct spots do not collide at the
// precision used elsewhere in the system. Decimal points are replaced
// with an underscore to keep the key safe for file based stores.
func Fingerprint(lat, lon, ele float64) string {
	key := fmt.Sprintf("%.4f|%.4f|%.1f", lat, lon, ele)
	return strings.ReplaceAll(key, ".", "_")
}
