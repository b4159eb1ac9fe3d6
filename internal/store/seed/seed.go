// Package seed reads course fixtures from YAML.
package seed

import (
	"fmt"
	"io"
	"time"

	"catalog/internal/domain/course"

	"gopkg.in/yaml.v3"
)

type entry struct {
	Title      string    `yaml:"title"`
	Instructor string    `yaml:"instructor"`
	Category   string    `yaml:"category"`
	Level      string    `yaml:"level"`
	Price      int64     `yaml:"price"`
	Featured   bool      `yaml:"featured"`
	Published  time.Time `yaml:"published"`
}

// Load decodes a YAML list of courses and validates each one.
func Load(r io.Reader) ([]*course.Course, error) {
	var entries []entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	out := make([]*course.Course, 0, len(entries))
	for i, e := range entries {
		c, err := course.NewCourse(e.Title, e.Instructor, e.Category,
			course.Level(e.Level), course.Money(e.Price), e.Published)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i+1, err)
		}
		c.Featured = e.Featured
		out = append(out, c)
	}
	return out, nil
}
