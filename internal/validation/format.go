package validation

import "regexp"

var (
	businessNumberPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{5}$`)
	phonePattern          = regexp.MustCompile(`^010-\d{4}-\d{4}$`)
)

// IsValidBusinessNumber checks the NNN-NN-NNNNN business registration
// number format.
func IsValidBusinessNumber(n string) bool {
	return businessNumberPattern.MatchString(n)
}

func IsValidPhone(p string) bool {
	return phonePattern.MatchString(p)
}
