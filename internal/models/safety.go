package models

// Surface 触发安全评估的 AI 入口
type Surface string

const (
	SurfaceNextStep  Surface = "next_step"  // "下一步"建议入口
	SurfaceConcierge Surface = "concierge"  // 对话式 concierge 入口
)

// SafetyStatus 安全评估结论
type SafetyStatus string

const (
	StatusAllow  SafetyStatus = "allow"  // 允许继续生成回复
	StatusRefuse SafetyStatus = "refuse" // 拒绝回复（非危机原因）
	StatusCrisis SafetyStatus = "crisis" // 危机信号，转人工/紧急资源
)

// RefusalReason 拒绝原因（status=refuse 时有且仅有一个）
type RefusalReason string

const (
	ReasonUnderage                RefusalReason = "underage"                  // 未确认年龄
	ReasonSensitiveWithoutConsent RefusalReason = "sensitive_without_consent" // 未同意分享敏感内容
	ReasonDiagnosisRequest        RefusalReason = "diagnosis_request"         // 索要诊断
	ReasonMedicationRequest       RefusalReason = "medication_request"        // 索要用药建议
	ReasonTherapyRequest          RefusalReason = "therapy_request"           // 要求在聊天中做治疗
	ReasonOutOfScope              RefusalReason = "out_of_scope"              // 超出服务范围（由调用方使用，引擎不产生）
)

// CrisisTrigger 危机触发类别（status=crisis 时有且仅有一个）
type CrisisTrigger string

const (
	TriggerSuicidalIdeation CrisisTrigger = "suicidal_ideation"
	TriggerSelfHarm         CrisisTrigger = "self_harm"
	TriggerViolence         CrisisTrigger = "violence"
	TriggerPanicLike        CrisisTrigger = "panic_like"
	TriggerMinorRisk        CrisisTrigger = "minor_risk"
)

// SafetyInput 单次安全评估的输入（每次调用由调用方构造，不持久化）
type SafetyInput struct {
	Surface          Surface `json:"surface"`
	AgeConfirmed     bool    `json:"age_confirmed"`
	ConsentSensitive bool    `json:"consent_sensitive"`
	Text             string  `json:"text,omitempty"` // 用户自由文本，可为空
}

// SafetyDecision 安全评估结果
// 不可变值对象，序列化后不得含有任何原始输入文本
type SafetyDecision struct {
	Status        SafetyStatus  `json:"status"`
	RefusalReason RefusalReason `json:"refusal_reason,omitempty"`
	CrisisTrigger CrisisTrigger `json:"crisis_trigger,omitempty"`
}

// Allow 构造放行结果
func Allow() SafetyDecision {
	return SafetyDecision{Status: StatusAllow}
}

// Refuse 构造拒绝结果
func Refuse(reason RefusalReason) SafetyDecision {
	return SafetyDecision{Status: StatusRefuse, RefusalReason: reason}
}

// Crisis 构造危机结果
func Crisis(trigger CrisisTrigger) SafetyDecision {
	return SafetyDecision{Status: StatusCrisis, CrisisTrigger: trigger}
}

// IsAllowed 是否允许继续调用模型
func (d SafetyDecision) IsAllowed() bool {
	return d.Status == StatusAllow
}
