package branding

import (
	"fmt"
	"regexp"
	"strings"
)

// rule — одно правило замены терминологии; правила применяются
// строго по порядку, составные названия идут раньше коротких
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rules = []rule{
	{regexp.MustCompile(`\bVoltMesh\b`), "F5 Distributed Cloud Mesh"},
	{regexp.MustCompile(`\bVoltStack\b`), "F5 Distributed Cloud App Stack"},
	{regexp.MustCompile(`\bVoltConsole\b`), "F5 Distributed Cloud Console"},
	{regexp.MustCompile(`\bVolterra Edge Cloud\b`), "F5 Distributed Cloud Services"},
	{regexp.MustCompile(`\bVolterra\b`), "F5 Distributed Cloud"},
}

// Защищённые подстроки: литеральные URL и имена API-полей,
// которые нельзя переписывать. Длинные идут раньше коротких,
// чтобы токенизация не разрезала их изнутри.
var preserved = []string{
	"ves.volterra.io",
	"docs.cloud.f5.com",
	"volterra.io",
	"ves.io.schema",
	"ves.io",
}

// Normalize заменяет устаревший брендинг на актуальный.
// Защищённые подстроки переживают замену через токенизацию:
// подстрока → плейсхолдер → обратное восстановление.
func Normalize(s string) string {
	if s == "" {
		return s
	}

	var found []string
	for _, p := range preserved {
		if strings.Contains(s, p) {
			token := fmt.Sprintf("\x00%d\x00", len(found))
			s = strings.ReplaceAll(s, p, token)
			found = append(found, p)
		}
	}

	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}

	for i, p := range found {
		token := fmt.Sprintf("\x00%d\x00", i)
		s = strings.ReplaceAll(s, token, p)
	}
	return s
}
