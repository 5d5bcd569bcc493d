package vendordir

import (
	"strings"

	"steinschliff/internal/format"
	"steinschliff/internal/model"
)

// Question is one interactive prompt for a new vendor's metadata.
type Question struct {
	Key     string
	Prompt  string
	Default string
}

// MetaQuestions returns the prompts asked by "vendor init", in order.
// Answers are keyed by Question.Key and turned into metadata by
// MetaFromAnswers.
func MetaQuestions(key string) []Question {
	return []Question{
		{Key: "name", Prompt: "Название", Default: format.Capitalize(key)},
		{Key: "country", Prompt: "Страна", Default: model.HomeCountry},
		{Key: "city", Prompt: "Город"},
		{Key: "website_url", Prompt: "Сайт"},
		{Key: "email", Prompt: "Email"},
		{Key: "phone", Prompt: "Телефон"},
	}
}

// MetaFromAnswers builds vendor metadata from prompt answers. Blank
// answers fall back to the question default.
func MetaFromAnswers(key string, answers map[string]string) model.ServiceMetadata {
	get := func(k string) string {
		if v := strings.TrimSpace(answers[k]); v != "" {
			return v
		}
		for _, q := range MetaQuestions(key) {
			if q.Key == k {
				return q.Default
			}
		}
		return ""
	}
	meta := model.ServiceMetadata{
		Name:       get("name"),
		Country:    get("country"),
		City:       get("city"),
		WebsiteURL: get("website_url"),
	}
	contact := &model.ContactInfo{Email: get("email")}
	if phone := get("phone"); phone != "" {
		contact.Phones = []string{phone}
	}
	if !contact.IsEmpty() {
		meta.Contact = contact
	}
	return meta
}
