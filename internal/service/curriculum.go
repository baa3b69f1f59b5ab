package service

import (
	"course_gen_backend/internal/model"
	"course_gen_backend/internal/util"
	"encoding/json"
	"fmt"
	"strings"
)

const maxTitleLength = 255

// 生成器输出的宽松镜像结构，所有字段都可能缺失
type curriculumPayload struct {
	Weeks []weekPayload `json:"weeks"`
}

type weekPayload struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Topics      []topicPayload `json:"topics"`
}

type topicPayload struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Content            string   `json:"content"`
	LearningObjectives []string `json:"learningObjectives"`
}

// UnmarshalJSON 兼容两种形态：完整的 topic 对象，或只有标题的裸字符串。
// 模型偶尔会按 "topics": ["xxx", "yyy"] 输出。
func (t *topicPayload) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		t.Title = title
		return nil
	}

	type plain topicPayload
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = topicPayload(p)
	return nil
}

// NormalizeCurriculum 把模型的原始文本输出转成经过校验的课程大纲。
// 这是吸收外部生成器不可靠性的唯一位置：剥掉代码围栏和前后缀散文、
// 解析JSON、补默认值。后续组件拿到的一定是完整类型化的 Curriculum。
func NormalizeCurriculum(raw string) (*model.Curriculum, error) {
	cleaned := stripMarkdownCodeFences(raw)
	cleaned = extractJSONObject(cleaned)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: no JSON object in response", util.ErrInvalidStructure)
	}

	var payload curriculumPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidStructure, err)
	}

	if len(payload.Weeks) == 0 {
		return nil, fmt.Errorf("%w: weeks is empty", util.ErrInvalidStructure)
	}

	curriculum := &model.Curriculum{
		Weeks: make([]model.WeekDraft, 0, len(payload.Weeks)),
	}

	for i, week := range payload.Weeks {
		title := truncate(strings.TrimSpace(week.Title))
		if title == "" {
			return nil, fmt.Errorf("%w: week %d has no title", util.ErrInvalidStructure, i+1)
		}

		draft := model.WeekDraft{
			Title:       title,
			Description: strings.TrimSpace(week.Description),
			Topics:      make([]model.TopicDraft, 0, len(week.Topics)),
		}

		for j, topic := range week.Topics {
			topicTitle := truncate(strings.TrimSpace(topic.Title))
			if topicTitle == "" {
				return nil, fmt.Errorf("%w: week %d topic %d has no title", util.ErrInvalidStructure, i+1, j+1)
			}

			objectives := topic.LearningObjectives
			if objectives == nil {
				objectives = []string{}
			}

			draft.Topics = append(draft.Topics, model.TopicDraft{
				Title:              topicTitle,
				Description:        strings.TrimSpace(topic.Description),
				Content:            strings.TrimSpace(topic.Content),
				LearningObjectives: objectives,
			})
		}

		curriculum.Weeks = append(curriculum.Weeks, draft)
	}

	return curriculum, nil
}

func stripMarkdownCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	// 去掉首行围栏（``` 或 ```json）和末行围栏
	body := lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		body = lines[1 : len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

// extractJSONObject 截取首个 '{' 到最后一个 '}' 之间的内容，
// 丢弃模型在JSON前后追加的说明性文字
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxTitleLength {
		return s
	}
	return string(runes[:maxTitleLength])
}
