package conditions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"steinschliff/internal/model"
)

// Problem is one defect found in a condition file.
type Problem struct {
	File    string
	Field   string
	Message string
}

// Report summarizes a Check run.
type Report struct {
	Files    int
	Valid    int
	Problems []Problem
}

// Check strictly decodes every condition file in dir and reports files that
// do not match the SnowCondition shape. Unlike Load, nothing is skipped
// silently.
func Check(dir string) (Report, error) {
	files, err := listFiles(dir)
	if err != nil {
		return Report{}, err
	}
	var rep Report
	seen := make(map[string]string)
	for _, path := range files {
		rep.Files++
		problems := checkFile(path, seen)
		if len(problems) == 0 {
			rep.Valid++
			continue
		}
		rep.Problems = append(rep.Problems, problems...)
	}
	return rep, nil
}

func checkFile(path string, seen map[string]string) []Problem {
	base := filepath.Base(path)
	fail := func(field, format string, args ...any) []Problem {
		return []Problem{{File: base, Field: field, Message: fmt.Sprintf(format, args...)}}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail("", "read: %v", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fail("", "parse: %v", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fail("", "document must be a mapping")
	}

	var c model.SnowCondition
	if err := doc.Content[0].Decode(&c); err != nil {
		return fail("", "%v", err)
	}

	var problems []Problem
	if strings.TrimSpace(c.Key) == "" {
		problems = append(problems, Problem{File: base, Field: "key", Message: "field required"})
	}
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, Problem{File: base, Field: "name", Message: "field required"})
	}
	for i, tr := range c.Temperature {
		if tr.Min == nil && tr.Max == nil {
			problems = append(problems, Problem{
				File:    base,
				Field:   fmt.Sprintf("temperature.%d", i),
				Message: "range has neither min nor max",
			})
		}
	}
	if key := fold(c.Key); key != "" {
		if other, dup := seen[key]; dup {
			problems = append(problems, Problem{File: base, Field: "key", Message: "duplicate of " + other})
		} else {
			seen[key] = base
		}
	}
	return problems
}
