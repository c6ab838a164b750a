package post

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry maps a title keyword to its slug fragment. Entries are matched in
// table order, so earlier entries win the slug's leading position.
type Entry struct {
	Term string `yaml:"term"`
	Slug string `yaml:"slug"`
}

// DefaultTable is the built-in keyword table used when no table file is
// configured. Order matters.
func DefaultTable() []Entry {
	return []Entry{
		{Term: "AI", Slug: "ai"},
		{Term: "人工智能", Slug: "artificial-intelligence"},
		{Term: "机器学习", Slug: "machine-learning"},
		{Term: "深度学习", Slug: "deep-learning"},
		{Term: "博客", Slug: "blog"},
		{Term: "教程", Slug: "tutorial"},
		{Term: "指南", Slug: "guide"},
		{Term: "实践", Slug: "practice"},
		{Term: "技术", Slug: "technology"},
		{Term: "开发", Slug: "development"},
		{Term: "编程", Slug: "programming"},
		{Term: "代码", Slug: "code"},
		{Term: "项目", Slug: "project"},
		{Term: "工具", Slug: "tools"},
		{Term: "框架", Slug: "framework"},
		{Term: "部署", Slug: "deployment"},
		{Term: "优化", Slug: "optimization"},
		{Term: "分析", Slug: "analysis"},
		{Term: "设计", Slug: "design"},
	}
}

// LoadTable reads a keyword table from a YAML file. A missing path (or an
// empty argument) falls back to the default table; a malformed file is an
// error.
func LoadTable(path string) ([]Entry, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTable(), nil
		}
		return nil, fmt.Errorf("reading keyword table: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing keyword table %s: %w", path, err)
	}
	if len(entries) == 0 {
		return DefaultTable(), nil
	}
	return entries, nil
}
