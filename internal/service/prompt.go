package service

import (
	"fmt"
	"strings"
)

// 生成课程用固定6周，创意度取中间值：足够多样又不至于破坏JSON结构
const (
	generationWeekCount   = 6
	generationTemperature = 0.7
)

const courseFormatDirective = `Respond with exactly one JSON object matching this schema, with no surrounding prose and no code fencing:
{
  "weeks": [
    {
      "title": "string",
      "description": "string",
      "topics": [
        {
          "title": "string",
          "description": "string",
          "content": "string",
          "learningObjectives": ["string"]
        }
      ]
    }
  ]
}`

// BuildCoursePrompt 纯函数，拼接课程生成提示词，不做任何IO
func BuildCoursePrompt(name, description string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %d-week course structure for a course titled %q.\n", generationWeekCount, name)
	fmt.Fprintf(&b, "Course description: %s\n\n", description)

	b.WriteString("For each week, provide:\n")
	b.WriteString("1. A main topic/theme as the week title\n")
	b.WriteString("2. A short description of the week\n")
	b.WriteString("3. 3-5 specific topics to cover, each with a description, teaching content, and learning objectives\n\n")

	b.WriteString("Ensure the content is progressive, building upon previous weeks.\n\n")
	b.WriteString(courseFormatDirective)

	return b.String()
}
