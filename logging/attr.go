package logging

import (
	"log/slog"
	"strings"
	"time"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func UID(uid int64) slog.Attr {
	const uidKey = "uid"
	return slog.Int64(uidKey, uid)
}

func Path(path string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, path)
}

func Duration(d time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, d)
}

func Position(x, y int) slog.Attr {
	const positionKey = "position"
	return slog.Group(positionKey, slog.Int("x", x), slog.Int("y", y))
}

// Secret logs a credential with everything but its last four characters masked.
func Secret(key, value string) slog.Attr {
	return slog.String(key, Redact(value))
}

func Redact(value string) string {
	const visible = 4
	if len(value) <= visible {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-visible) + value[len(value)-visible:]
}
