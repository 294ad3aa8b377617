package matching

import (
	"strings"
	"unicode"
)

// soundexLength is the code length, longer than classic Soundex so that
// long transliterated surnames stay distinct.
const soundexLength = 6

// Soundex returns a phonetic code for a player name. W is grouped with the
// labials so that transliterations like Kasparov and Kasparow agree.
func Soundex(name string) string {
	var letters []byte
	for _, r := range strings.ToUpper(name) {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			letters = append(letters, byte(r))
		}
	}
	if len(letters) == 0 {
		return ""
	}

	code := []byte{letters[0]}
	last := soundexDigit(letters[0])
	for _, c := range letters[1:] {
		if len(code) == soundexLength {
			break
		}
		digit := soundexDigit(c)
		if digit == '0' {
			continue
		}
		if digit != last {
			code = append(code, digit)
		}
		last = digit
	}
	for len(code) < soundexLength {
		code = append(code, '0')
	}
	return string(code)
}

func soundexDigit(c byte) byte {
	switch c {
	case 'B', 'F', 'P', 'V', 'W':
		return '1'
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return '2'
	case 'D', 'T':
		return '3'
	case 'L':
		return '4'
	case 'M', 'N':
		return '5'
	case 'R':
		return '6'
	}
	return '0'
}
