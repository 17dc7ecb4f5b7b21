package goresolve

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Dedicated strict patterns per supported format. Unrecognized format names
// pass validation untouched.
var (
	reDate  = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	reTime  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d(\.\d+)?(Z|[+-]([01]\d|2[0-3]):[0-5]\d)?$`)
	reEmail = regexp.MustCompile("^[A-Za-z0-9.!#$%&'*+/=?^_`{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?(?:\\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)+$")
	reIPv4  = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	reUUID  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// checkFormat validates s against a named format. known is false for format
// names the engine has no rule for; those never fail.
func checkFormat(name, s string) (ok, known bool) {
	switch name {
	case "date-time":
		// RFC 3339; parsing depends only on the input string.
		_, err := time.Parse(time.RFC3339, s)
		return err == nil, true
	case "date":
		return reDate.MatchString(s), true
	case "time":
		return reTime.MatchString(s), true
	case "email":
		return reEmail.MatchString(s), true
	case "ipv4":
		if !reIPv4.MatchString(s) {
			return false, true
		}
		for _, oct := range strings.Split(s, ".") {
			n, err := strconv.Atoi(oct)
			if err != nil || n > 255 {
				return false, true
			}
		}
		return true, true
	case "uuid":
		return reUUID.MatchString(s), true
	default:
		return true, false
	}
}
