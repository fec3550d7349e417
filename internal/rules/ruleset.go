package rules

import (
	"regexp"
	"strings"
)

// Category 关键词类别标识
type Category string

// 安全引擎类别（危机高优先级 → 危机低优先级 → 拒绝类别）
const (
	CategorySuicidalIdeation Category = "suicidal_ideation"
	CategorySelfHarm         Category = "self_harm"
	CategoryViolence         Category = "violence"
	CategoryPanicLike        Category = "panic_like"
	CategoryMinorRisk        Category = "minor_risk"
	CategoryMedication       Category = "medication"
	CategoryDiagnosis        Category = "diagnosis"
	CategoryTherapyChat      Category = "therapy_chat"
)

// 匿名提问分诊类别（互相独立，无优先级）
const (
	CategoryUgcCrisis  Category = "ugc_crisis"
	CategoryUgcPII     Category = "ugc_pii"
	CategoryUgcMedical Category = "ugc_medical"
)

// RuleSet 单个类别的关键词/正则集合
// 匹配语义：小写子串包含，或正则命中，二者任一即命中。
// 不做评分、不做模糊匹配——安全相关判定必须可审计、可逐条验证。
type RuleSet struct {
	Category Category
	Keywords []string         // 必须全部为小写
	Patterns []*regexp.Regexp // 编译时加 (?i)
}

// Match 检查已小写化的文本是否命中该类别
func (r *RuleSet) Match(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, p := range r.Patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// Normalize 匹配前的统一预处理：去首尾空白并转小写
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Table 按类别索引的规则表
// 进程启动时构建一次，之后只读，可被任意多个 goroutine 并发使用
type Table struct {
	sets map[Category]*RuleSet
}

// NewTable 从规则集合构建规则表
func NewTable(sets ...*RuleSet) *Table {
	t := &Table{sets: make(map[Category]*RuleSet, len(sets))}
	for _, s := range sets {
		t.sets[s.Category] = s
	}
	return t
}

// Match 检查已小写化的文本是否命中指定类别
// 类别不存在时视为不命中
func (t *Table) Match(cat Category, lower string) bool {
	s, ok := t.sets[cat]
	if !ok {
		return false
	}
	return s.Match(lower)
}

// Set 获取指定类别的规则集合（不存在返回 nil）
func (t *Table) Set(cat Category) *RuleSet {
	return t.sets[cat]
}

// Categories 返回规则表中的全部类别
func (t *Table) Categories() []Category {
	cats := make([]Category, 0, len(t.sets))
	for c := range t.sets {
		cats = append(cats, c)
	}
	return cats
}
