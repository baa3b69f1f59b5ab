package model

// Curriculum 生成器输出经过校验后的内存表示，不直接入库，
// 只作为物化（materialize）前的中间结构。
type Curriculum struct {
	Weeks []WeekDraft `json:"weeks"`
}

type WeekDraft struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Topics      []TopicDraft `json:"topics"`
}

type TopicDraft struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Content            string   `json:"content"`
	LearningObjectives []string `json:"learningObjectives"`
}
