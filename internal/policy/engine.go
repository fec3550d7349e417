package policy

import (
	"opora-safety/internal/models"
	"opora-safety/internal/rules"
)

// Engine 安全策略引擎
// 在调用任何模型之前对 AI 入口的输入做确定性判定。
// 纯函数、无 I/O、无内部状态（规则表启动时构建后只读），可任意并发调用。
// 引擎本身绝不记录日志：原始文本不允许进入任何遥测链路。
type Engine struct {
	table *rules.Table
}

// crisisRule 危机类别与触发标识的绑定
type crisisRule struct {
	category rules.Category
	trigger  models.CrisisTrigger
}

// refusalRule 拒绝类别与拒绝原因的绑定
type refusalRule struct {
	category rules.Category
	reason   models.RefusalReason
}

// 类别检查顺序是对外契约的一部分：列表自上而下求值，先命中者生效。
// 高优先级危机类别永远先于低优先级，危机整体先于非危机拒绝类别。
var (
	crisisHighPriority = []crisisRule{
		{rules.CategorySuicidalIdeation, models.TriggerSuicidalIdeation},
		{rules.CategorySelfHarm, models.TriggerSelfHarm},
		{rules.CategoryViolence, models.TriggerViolence},
	}

	crisisLowPriority = []crisisRule{
		{rules.CategoryPanicLike, models.TriggerPanicLike},
		{rules.CategoryMinorRisk, models.TriggerMinorRisk},
	}

	refusalOrder = []refusalRule{
		{rules.CategoryMedication, models.ReasonMedicationRequest},
		{rules.CategoryDiagnosis, models.ReasonDiagnosisRequest},
		{rules.CategoryTherapyChat, models.ReasonTherapyRequest},
	}
)

// NewEngine 创建安全策略引擎
func NewEngine(table *rules.Table) *Engine {
	return &Engine{table: table}
}

// Evaluate 评估一次输入，返回安全判定
// 规则严格按序求值，先命中者生效，后续规则不再检查：
//  1. 未确认年龄 → refuse/underage（无论是否有文本、是否有同意）
//  2. 有非空文本且未同意分享敏感内容 → refuse/sensitive_without_consent
//     （空文本无需同意：同意只在用户即将分享内容时才要求）
//  3. 危机检测：高优先级类别 → 低优先级类别，命中即 crisis
//  4. 非危机拒绝类别：用药 → 诊断 → 聊天内治疗
//  5. 均未命中 → allow
//
// 对声明的输入域是全函数：空串、纯空白、缺失文本都不会出错。
func (e *Engine) Evaluate(in models.SafetyInput) models.SafetyDecision {
	if !in.AgeConfirmed {
		return models.Refuse(models.ReasonUnderage)
	}

	lower := rules.Normalize(in.Text)
	if lower == "" {
		return models.Allow()
	}

	if !in.ConsentSensitive {
		return models.Refuse(models.ReasonSensitiveWithoutConsent)
	}

	for _, r := range crisisHighPriority {
		if e.table.Match(r.category, lower) {
			return models.Crisis(r.trigger)
		}
	}
	for _, r := range crisisLowPriority {
		if e.table.Match(r.category, lower) {
			return models.Crisis(r.trigger)
		}
	}

	for _, r := range refusalOrder {
		if e.table.Match(r.category, lower) {
			return models.Refuse(r.reason)
		}
	}

	return models.Allow()
}
