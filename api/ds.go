package api

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// overseasSalt signs requests to the overseas (HoYoLAB) game record API.
const overseasSalt = "6s25p5ox5y14umn1p61aqyyvbvvl3lrt"

const dsLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// dynamicSecret builds the DS header: "<t>,<r>,md5(salt=<salt>&t=<t>&r=<r>)".
func dynamicSecret(salt string, now time.Time, random string) string {
	t := strconv.FormatInt(now.Unix(), 10)
	sum := md5.Sum([]byte(fmt.Sprintf("salt=%s&t=%s&r=%s", salt, t, random)))
	return t + "," + random + "," + hex.EncodeToString(sum[:])
}

func randomLetters(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = dsLetters[rand.IntN(len(dsLetters))]
	}
	return string(b)
}
