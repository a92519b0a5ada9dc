package service

import "strings"

// DefaultPromptTemplate asks for exactly four comma-separated titles and
// names the sentinel to return for an unknown seed. {{seed}} is replaced
// by the seed title.
const DefaultPromptTemplate = `Using {{seed}} as a reference, recommend 4 movies that would be recommended to someone who enjoyed {{seed}}. ` +
	`Format this as a string of 4 movie titles separated by commas. ` +
	`Do not include {{seed}} itself as a recommendation. ` +
	`If you do not recognize the title, return "` + UnrecognizedTitle + `"`

const seedPlaceholder = "{{seed}}"

// BuildPrompt renders tmpl for seed. An empty template means DefaultPromptTemplate.
func BuildPrompt(tmpl, seed string) string {
	if tmpl == "" {
		tmpl = DefaultPromptTemplate
	}
	return strings.ReplaceAll(tmpl, seedPlaceholder, seed)
}
