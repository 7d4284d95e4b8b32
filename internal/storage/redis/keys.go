package redis

import "fmt"

// Key prefix for all eventdesk data
const keyPrefix = "eventdesk"

// registrationsKey returns the Redis key for the registration list
func registrationsKey() string {
	return fmt.Sprintf("%s:registrations", keyPrefix)
}

// noticesKey returns the Redis key for the notice list
func noticesKey() string {
	return fmt.Sprintf("%s:notices", keyPrefix)
}
