package intelligence

import (
	"strings"
	"unicode"
)

var greetings = map[string]bool{
	"hi": true, "hii": true, "hello": true, "hey": true, "heya": true, "hiya": true,
	"yo": true, "howdy": true, "greetings": true, "sup": true, "hola": true,
	"hi there": true, "hello there": true, "hey there": true,
	"good morning": true, "good afternoon": true, "good evening": true, "good day": true,
}

// IsGreeting reports whether input is only a greeting ("Hi!", "hello there").
func IsGreeting(input string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, input)
	return greetings[strings.Join(strings.Fields(cleaned), " ")]
}
