package domain

import "strings"

// Callback data layout: "nav|<transition>|<sessionKey>". The session key
// part is empty on the original signal message (the receiver derives it
// from the message the button is attached to) and is set explicitly on
// messages that replaced the original, such as a chart photo, so that a
// later "back" still resolves the right session.
const callbackPrefix = "nav"

func EncodeCallback(t Transition, sessionKey string) string {
	return callbackPrefix + "|" + string(t) + "|" + sessionKey
}

func ParseCallback(data string) (Transition, string, bool) {
	parts := strings.SplitN(strings.TrimSpace(data), "|", 3)
	if len(parts) < 2 || parts[0] != callbackPrefix {
		return "", "", false
	}
	t, ok := ParseTransition(parts[1])
	if !ok {
		return "", "", false
	}
	key := ""
	if len(parts) == 3 {
		key = strings.TrimSpace(parts[2])
	}
	return t, key, true
}
