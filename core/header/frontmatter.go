package header

import (
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the subset of document front matter the header uses.
type FrontMatter struct {
	Title    string
	Author   string
	Date     string
	Language string
	Tags     []string
}

type frontMatterEnvelope struct {
	Title    string   `yaml:"title" toml:"title" json:"title"`
	Author   string   `yaml:"author" toml:"author" json:"author"`
	Date     any      `yaml:"date" toml:"date" json:"date"`
	Language string   `yaml:"lang" toml:"lang" json:"lang"`
	Tags     []string `yaml:"tags" toml:"tags" json:"tags"`
	Keywords []string `yaml:"keywords" toml:"keywords" json:"keywords"`
}

// ParseFrontMatter splits YAML (---) or TOML (+++) front matter off
// text. Text without front matter is returned unchanged.
func ParseFrontMatter(text string) (FrontMatter, string, error) {
	trimmed := strings.TrimLeft(text, "\n")
	if !hasFrontMatter(trimmed) {
		return FrontMatter{}, text, nil
	}

	var env frontMatterEnvelope
	body, err := frontmatter.Parse(strings.NewReader(trimmed), &env)
	if err != nil {
		return FrontMatter{}, text, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm := FrontMatter{
		Title:    strings.TrimSpace(env.Title),
		Author:   strings.TrimSpace(env.Author),
		Date:     formatDate(env.Date),
		Language: strings.TrimSpace(env.Language),
		Tags:     append(env.Tags, env.Keywords...),
	}
	return fm, string(body), nil
}

func hasFrontMatter(text string) bool {
	for _, delim := range []string{"---", "+++"} {
		if strings.HasPrefix(text, delim+"\n") || strings.HasPrefix(text, delim+"\r\n") {
			return true
		}
	}
	return false
}

func formatDate(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case time.Time:
		if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 {
			return d.Format("2006-01-02")
		}
		return d.Format(time.RFC3339)
	case string:
		return strings.TrimSpace(d)
	default:
		return fmt.Sprint(d)
	}
}
