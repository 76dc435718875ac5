// Package fixtures loads seed datasets from YAML files.
package fixtures

import (
	"embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Dataset is a complete set of rows for every table
type Dataset struct {
	Topics   []Topic   `yaml:"topics"`
	Users    []User    `yaml:"users"`
	Articles []Article `yaml:"articles"`
	Comments []Comment `yaml:"comments"`
}

type Topic struct {
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type User struct {
	Username  string `yaml:"username"`
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar_url"`
}

// Article rows receive ids 1..n in file order.
type Article struct {
	Title     string    `yaml:"title"`
	Topic     string    `yaml:"topic"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	CreatedAt time.Time `yaml:"created_at"`
	Votes     int       `yaml:"votes"`
}

// Comment references its article by 1-based position in Dataset.Articles.
type Comment struct {
	ArticleID int       `yaml:"article_id"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	Votes     int       `yaml:"votes"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Test returns the embedded test dataset.
func Test() (*Dataset, error) {
	return embedded("data/test.yaml")
}

// Development returns the embedded development dataset.
func Development() (*Dataset, error) {
	return embedded("data/development.yaml")
}

// Load reads a dataset from a YAML file on disk.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks the references between rows so that seeding fails
// before touching the database.
func (d *Dataset) Validate() error {
	topics := make(map[string]bool, len(d.Topics))
	for _, t := range d.Topics {
		topics[t.Slug] = true
	}
	users := make(map[string]bool, len(d.Users))
	for _, u := range d.Users {
		users[u.Username] = true
	}

	for i, a := range d.Articles {
		if !topics[a.Topic] {
			return fmt.Errorf("article %d: unknown topic %q", i+1, a.Topic)
		}
		if !users[a.Author] {
			return fmt.Errorf("article %d: unknown author %q", i+1, a.Author)
		}
	}
	for i, c := range d.Comments {
		if c.ArticleID < 1 || c.ArticleID > len(d.Articles) {
			return fmt.Errorf("comment %d: unknown article %d", i+1, c.ArticleID)
		}
		if !users[c.Author] {
			return fmt.Errorf("comment %d: unknown author %q", i+1, c.Author)
		}
	}
	return nil
}

func embedded(name string) (*Dataset, error) {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read embedded fixtures %s: %w", name, err)
	}
	return Parse(data)
}
