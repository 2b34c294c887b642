package voice

// Option describes a synthesis voice exposed to the frontend. ID is the value
// callers send back as SynthesisRequest.VoiceID.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Voice categories.
const (
	CategoryFemale = "female"
	CategoryMale   = "male"
)

// Seed provides the Qwen-TTS voices offered by the product.
func Seed() []Option {
	return []Option{
		{
			ID:          "Cherry",
			Name:        "芊悦",
			Description: "阳光积极、亲切自然小姐姐。",
			Category:    CategoryFemale,
		},
		{
			ID:          "Ethan",
			Name:        "晨煦",
			Description: "标准普通话，带部分北方口音。阳光、温暖、活力、朝气。",
			Category:    CategoryMale,
		},
		{
			ID:          "Elias",
			Name:        "墨讲师",
			Description: "既保持学科严谨性，又通过叙事技巧将复杂知识转化为可消化的认知模块。",
			Category:    CategoryMale,
		},
	}
}
