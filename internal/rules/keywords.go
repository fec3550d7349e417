package rules

import "regexp"

// 内置关键词表（俄语）。
// 列表刻意保守：宁可误报交给人工，也不能漏掉生命安全信号。
// 可通过 SAFETY_KEYWORDS_FILE 指定 YAML 文件替换各类别的词表（见 loader.go），
// 类别集合与匹配语义不可配置。

// PII 结构化模式：邮箱、电话（俄罗斯格式 +7/8 及通用 9-11 位分组数字）、证件/住址关键词
var (
	emailPattern = regexp.MustCompile(`(?i)[a-zа-яё0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+7|\b8)[\s\-()]*\d(?:[\s\-()]*\d){9}\b`)
	// 通用数字串：9-11 位，允许空格/横线/括号分组
	digitRunPattern = regexp.MustCompile(`\b\d(?:[\s\-()]*\d){8,10}\b`)
)

// suicidalKeywords 自杀意念
var suicidalKeywords = []string{
	"суицид",
	"самоубийств",
	"покончить с собой",
	"покончу с собой",
	"не хочу жить",
	"не хочу больше жить",
	"нет смысла жить",
	"свести счеты с жизнью",
	"свести счёты с жизнью",
	"наглотаться таблеток",
	"спрыгнуть с крыши",
	"хочу умереть",
	"лучше умереть",
}

// selfHarmKeywords 自伤
var selfHarmKeywords = []string{
	"режу себя",
	"порезать себя",
	"порезы на руках",
	"селфхарм",
	"причинить себе вред",
	"причиняю себе боль",
	"наказываю себя болью",
	"бью себя",
}

// violenceKeywords 暴力（对他人施暴或受到暴力威胁）
var violenceKeywords = []string{
	"убью",
	"убить",
	"насилие",
	"насилует",
	"избивает",
	"избил",
	"избила",
	"угрожает мне",
	"поднимает на меня руку",
}

// panicKeywords 惊恐样状态
var panicKeywords = []string{
	"паническая атака",
	"паника",
	"не могу дышать",
	"задыхаюсь",
	"сердце выпрыгивает",
	"сердце колотится",
	"меня трясет",
	"меня трясёт",
}

// minorRiskKeywords 低优先级风险表述
var minorRiskKeywords = []string{
	"очень плохо",
	"невыносимо",
	"безысходность",
	"все бесполезно",
	"всё бесполезно",
	"опускаются руки",
	"не вижу выхода",
}

// medicationKeywords 用药咨询（非危机拒绝类别）
var medicationKeywords = []string{
	"таблет",
	"антидепрессант",
	"транквилизатор",
	"дозировк",
	"рецепт",
	"какие лекарства",
	"что попить",
	"что принимать",
}

// diagnosisKeywords 诊断请求
var diagnosisKeywords = []string{
	"диагноз",
	"это депрессия",
	"это тревожное расстройство",
	"какое у меня расстройство",
	"что со мной не так",
	"поставьте мне",
}

// therapyChatKeywords 要求在聊天里做治疗
var therapyChatKeywords = []string{
	"проведи терапию",
	"проведите терапию",
	"проведите сеанс",
	"будь моим психологом",
	"будьте моим психологом",
	"сеанс прямо в чате",
	"терапию в чате",
	"полечи меня",
}

// ugcCrisisKeywords 分诊用危机词表
// 比安全引擎的词表更宽：额外覆盖家庭暴力/胁迫表述
var ugcCrisisKeywords = []string{
	// 自杀/自伤
	"суицид",
	"самоубийств",
	"покончить с собой",
	"не хочу жить",
	"хочу умереть",
	"режу себя",
	"порезать себя",
	"селфхарм",
	"причинить себе вред",
	// 家庭暴力/胁迫
	"бьет меня",
	"бьёт меня",
	"муж бьет",
	"муж бьёт",
	"избивает меня",
	"угрожает мне",
	"боюсь идти домой",
	"заставляет меня",
	"принуждает меня",
	"держит взаперти",
}

// ugcPIIKeywords 证件/住址类关键词（结构化模式见上方正则）
var ugcPIIKeywords = []string{
	"паспорт",
	"снилс",
	"инн ",
	"прописан",
	"мой адрес",
	"я живу по адресу",
	"номер карты",
}

// ugcMedicalKeywords 医疗类请求（诊断/用药/治疗）
var ugcMedicalKeywords = []string{
	"диагноз",
	"таблет",
	"лекарств",
	"антидепрессант",
	"дозировк",
	"рецепт",
	"назначьте",
	"какое лечение",
	"чем лечить",
}

// DefaultTable 构建内置规则表
// 每次调用返回独立实例，调用方通常在进程启动时构建一次后只读使用
func DefaultTable() *Table {
	return NewTable(
		&RuleSet{Category: CategorySuicidalIdeation, Keywords: suicidalKeywords},
		&RuleSet{Category: CategorySelfHarm, Keywords: selfHarmKeywords},
		&RuleSet{Category: CategoryViolence, Keywords: violenceKeywords},
		&RuleSet{Category: CategoryPanicLike, Keywords: panicKeywords},
		&RuleSet{Category: CategoryMinorRisk, Keywords: minorRiskKeywords},
		&RuleSet{Category: CategoryMedication, Keywords: medicationKeywords},
		&RuleSet{Category: CategoryDiagnosis, Keywords: diagnosisKeywords},
		&RuleSet{Category: CategoryTherapyChat, Keywords: therapyChatKeywords},
		&RuleSet{Category: CategoryUgcCrisis, Keywords: ugcCrisisKeywords},
		&RuleSet{
			Category: CategoryUgcPII,
			Keywords: ugcPIIKeywords,
			Patterns: []*regexp.Regexp{emailPattern, phonePattern, digitRunPattern},
		},
		&RuleSet{Category: CategoryUgcMedical, Keywords: ugcMedicalKeywords},
	)
}
