package reldate

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// zoneName returns the IANA name of loc. time.Local is resolved through TZ
// and the /etc/localtime link, falling back to "Local".
func zoneName(loc *time.Location) string {
	if loc != time.Local {
		return loc.String()
	}
	if tz, ok := os.LookupEnv("TZ"); ok {
		switch tz = strings.TrimPrefix(tz, ":"); {
		case tz == "":
			return "UTC"
		case filepath.IsAbs(tz):
			return zoneFromPath(tz, loc)
		default:
			return tz
		}
	}
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		return zoneFromPath(target, loc)
	}
	return loc.String()
}

func zoneFromPath(path string, loc *time.Location) string {
	if _, name, found := strings.Cut(path, "zoneinfo/"); found {
		return name
	}
	return loc.String()
}
