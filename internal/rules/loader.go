package rules

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML 词表文件格式：顶层为 类别 → 词条列表 的映射。
// 词条以 "regex:" 开头时按大小写不敏感正则编译，否则按小写子串处理。
// 只能替换已有类别的词表，不能增删类别——类别集合和优先级顺序属于代码契约。
//
// 示例：
//   suicidal_ideation:
//     - "суицид"
//     - "regex:не\\s+хочу\\s+жить"

const regexEntryPrefix = "regex:"

// LoadTable 构建规则表：内置词表 + 可选的 YAML 覆盖文件
// path 为空时直接返回内置表
func LoadTable(path string) (*Table, error) {
	table := DefaultTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file: %w", err)
	}

	for name, entries := range raw {
		cat := Category(name)
		set := table.Set(cat)
		if set == nil {
			return nil, fmt.Errorf("unknown keyword category: %s", name)
		}

		keywords, patterns, err := compileEntries(entries)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		if len(keywords) == 0 && len(patterns) == 0 {
			return nil, fmt.Errorf("category %s: empty keyword list", name)
		}

		// 整体替换该类别的词表（不与内置表合并）
		set.Keywords = keywords
		set.Patterns = patterns
	}

	return table, nil
}

// compileEntries 解析词条列表，拆分为小写关键词与编译好的正则
func compileEntries(entries []string) ([]string, []*regexp.Regexp, error) {
	var keywords []string
	var patterns []*regexp.Regexp

	for _, entry := range entries {
		if strings.HasPrefix(entry, regexEntryPrefix) {
			expr := strings.TrimPrefix(entry, regexEntryPrefix)
			p, err := regexp.Compile("(?i)" + expr)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
			}
			patterns = append(patterns, p)
			continue
		}

		kw := strings.ToLower(strings.TrimSpace(entry))
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
	}

	return keywords, patterns, nil
}
