package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the address's domain can receive
// mail. An MX record counts; without one, a plain host record does too.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if records, err := net.LookupMX(domain); err == nil && len(records) > 0 {
		return true
	}

	addrs, err := net.LookupIP(domain)
	return err == nil && len(addrs) > 0
}
