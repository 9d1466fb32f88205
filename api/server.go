package api

import (
	"fmt"
	"strconv"
)

const (
	ServerAmerica = "os_usa"
	ServerEurope  = "os_euro"
	ServerAsia    = "os_asia"
	ServerTWHKMO  = "os_cht"
)

var serversByPrefix = map[int64]string{
	6:  ServerAmerica,
	7:  ServerEurope,
	8:  ServerAsia,
	9:  ServerTWHKMO,
	18: ServerAsia,
}

// RecognizeServer derives the overseas region from a game UID. Nine-digit
// UIDs are keyed by their first digit, longer ones by everything before
// the last eight digits.
func RecognizeServer(uid int64) (string, error) {
	s := strconv.FormatInt(uid, 10)
	if len(s) < 9 {
		return "", fmt.Errorf("uid %d is too short", uid)
	}
	prefix, err := strconv.ParseInt(s[:len(s)-8], 10, 64)
	if err != nil {
		return "", fmt.Errorf("uid %d: %w", uid, err)
	}
	server, ok := serversByPrefix[prefix]
	if !ok {
		return "", fmt.Errorf("uid %d does not belong to an overseas server", uid)
	}
	return server, nil
}
