package format

import "strings"

// ConditionNames resolves a condition key to its Russian display name.
// *conditions.Registry satisfies it.
type ConditionNames interface {
	NameRU(key string) (string, bool)
}

// Condition returns the localized display name for key, falling back to
// the capitalized key. Empty key renders as "".
func Condition(names ConditionNames, key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ""
	}
	if names != nil {
		if name, ok := names.NameRU(key); ok {
			return name
		}
	}
	return Capitalize(key)
}

// conditionEmoji mirrors the colour of each canonical key.
var conditionEmoji = map[string]string{
	"green":  "🟢",
	"blue":   "🔵",
	"violet": "🟣",
	"orange": "🟠",
	"red":    "🔴",
	"pink":   "💗",
	"yellow": "💛",
	"brown":  "🟤",
}

// ConditionEmoji returns a coloured marker for key, or a white circle.
func ConditionEmoji(key string) string {
	if e, ok := conditionEmoji[key]; ok {
		return e
	}
	return "⚪"
}
