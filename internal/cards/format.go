package cards

import (
	"net/url"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const wonSign = "₩"

// IdenticonBase renders a deterministic avatar for a seed.
const IdenticonBase = "https://api.dicebear.com/9.x/identicon/png?seed="

var printer = message.NewPrinter(language.Korean)

// FormatWon renders v in the ko-KR currency style: thousands grouped, no
// decimals, a leading minus for negatives ("-₩10,500").
func FormatWon(v int64) string {
	sign := ""
	abs := uint64(v)
	if v < 0 {
		sign = "-"
		abs = uint64(-(v + 1)) + 1
	}
	return sign + wonSign + printer.Sprintf("%v", number.Decimal(abs, number.MaxFractionDigits(0)))
}

// DateLabel turns "2025-07-24..." into "25.07.24". Anything shorter than a
// full date is returned unchanged.
func DateLabel(date string) string {
	if len(date) < 10 {
		return date
	}
	return date[2:4] + "." + date[5:7] + "." + date[8:10]
}

// IdenticonURL is the fallback avatar for a participant without one.
func IdenticonURL(seed string) string {
	return IdenticonBase + url.QueryEscape(seed)
}

func avatarSeed(name, loginID string, memberID int64) string {
	switch {
	case name != "":
		return name
	case loginID != "":
		return loginID
	default:
		return strconv.FormatInt(memberID, 10)
	}
}
