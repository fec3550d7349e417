package triage

import (
	"opora-safety/internal/models"
	"opora-safety/internal/rules"
)

// Classifier 匿名提问分诊器
// 与安全策略引擎不同：三个类别相互独立求值，没有优先级，
// 可以同时命中任意多个，也可以一个都不命中。
// 纯函数，无副作用，可任意并发调用。
type Classifier struct {
	table *rules.Table
}

// flagRule 分诊类别与标记的绑定
type flagRule struct {
	category rules.Category
	flag     models.TriggerFlag
}

// 检查顺序只决定返回切片中标记的排列，不影响结果集合
var flagOrder = []flagRule{
	{rules.CategoryUgcCrisis, models.FlagCrisis},
	{rules.CategoryUgcPII, models.FlagPII},
	{rules.CategoryUgcMedical, models.FlagMedical},
}

// NewClassifier 创建分诊器
func NewClassifier(table *rules.Table) *Classifier {
	return &Classifier{table: table}
}

// Classify 对提问原文做分诊，返回命中的标记集合
// 返回值绝不携带原文内容
func (c *Classifier) Classify(text string) []models.TriggerFlag {
	lower := rules.Normalize(text)
	if lower == "" {
		return nil
	}

	var flags []models.TriggerFlag
	for _, r := range flagOrder {
		if c.table.Match(r.category, lower) {
			flags = append(flags, r.flag)
		}
	}
	return flags
}

// Triage 分诊并推导初始审核状态
func (c *Classifier) Triage(text string) models.TriageResult {
	flags := c.Classify(text)
	return models.TriageResult{
		Flags:  flags,
		Status: models.DeriveStatus(flags),
	}
}
