package service

import (
	"course_gen_backend/internal/util"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const validCurriculumJSON = `{
  "weeks": [
    {
      "title": "Graph Basics",
      "description": "Terminology and representations",
      "topics": [
        {
          "title": "What is a graph",
          "description": "Nodes and edges",
          "content": "A graph is a set of vertices and edges.",
          "learningObjectives": ["Define a graph", "Identify vertices and edges"]
        }
      ]
    },
    {
      "title": "Traversals",
      "topics": [
        {"title": "BFS"},
        {"title": "DFS"}
      ]
    }
  ]
}`

func TestNormalizeCurriculum_ParsesPlainJSON(t *testing.T) {
	curriculum, err := NormalizeCurriculum(validCurriculumJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(curriculum.Weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(curriculum.Weeks))
	}
	if curriculum.Weeks[0].Title != "Graph Basics" {
		t.Fatalf("unexpected week title: %q", curriculum.Weeks[0].Title)
	}
	if len(curriculum.Weeks[0].Topics) != 1 || curriculum.Weeks[0].Topics[0].Content == "" {
		t.Fatalf("topic content not carried over: %+v", curriculum.Weeks[0].Topics)
	}
}

func TestNormalizeCurriculum_FencedEqualsUnfenced(t *testing.T) {
	plain, err := NormalizeCurriculum(validCurriculumJSON)
	if err != nil {
		t.Fatalf("plain: %v", err)
	}

	for _, fence := range []string{"```", "```json"} {
		fenced := fence + "\n" + validCurriculumJSON + "\n```"
		got, err := NormalizeCurriculum(fenced)
		if err != nil {
			t.Fatalf("fenced (%s): %v", fence, err)
		}
		if !reflect.DeepEqual(got, plain) {
			t.Fatalf("fenced result differs from plain for opening %q", fence)
		}
	}
}

func TestNormalizeCurriculum_StripsLeadingProse(t *testing.T) {
	raw := "Sure! Here is the course structure you asked for:\n\n" + validCurriculumJSON + "\n\nLet me know if you need changes."
	curriculum, err := NormalizeCurriculum(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(curriculum.Weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(curriculum.Weeks))
	}
}

func TestNormalizeCurriculum_DefaultsMissingFields(t *testing.T) {
	raw := `{"weeks": [{"title": "W1", "topics": [{"title": "T1"}]}]}`
	curriculum, err := NormalizeCurriculum(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	week := curriculum.Weeks[0]
	if week.Description != "" {
		t.Fatalf("expected empty description, got %q", week.Description)
	}

	topic := week.Topics[0]
	if topic.LearningObjectives == nil || len(topic.LearningObjectives) != 0 {
		t.Fatalf("expected empty non-nil learningObjectives, got %#v", topic.LearningObjectives)
	}
	if topic.Description != "" || topic.Content != "" {
		t.Fatalf("expected defaulted topic fields, got %+v", topic)
	}
}

func TestNormalizeCurriculum_CoercesBareStringTopics(t *testing.T) {
	// 模型偶尔输出 "topics": ["子主题1", "子主题2"]
	raw := `{"weeks": [{"title": "W1", "topics": ["Pointers", "Memory layout"]}]}`
	curriculum, err := NormalizeCurriculum(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	topics := curriculum.Weeks[0].Topics
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0].Title != "Pointers" || topics[1].Title != "Memory layout" {
		t.Fatalf("unexpected topic titles: %+v", topics)
	}
}

func TestNormalizeCurriculum_RejectsInvalidStructure(t *testing.T) {
	cases := map[string]string{
		"not json":          "this is definitely not a course",
		"broken json":       `{"weeks": [{"title": "W1",]}`,
		"empty object":      `{}`,
		"empty weeks":       `{"weeks": []}`,
		"week no title":     `{"weeks": [{"description": "no title here"}]}`,
		"week blank title":  `{"weeks": [{"title": "   "}]}`,
		"topic no title":    `{"weeks": [{"title": "W1", "topics": [{"description": "x"}]}]}`,
		"no object at all":  "just words, no braces",
		"fences only":       "```\n```",
	}

	for name, raw := range cases {
		if _, err := NormalizeCurriculum(raw); !errors.Is(err, util.ErrInvalidStructure) {
			t.Fatalf("%s: expected ErrInvalidStructure, got %v", name, err)
		}
	}
}

func TestNormalizeCurriculum_TruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("x", 400)
	raw := `{"weeks": [{"title": "` + long + `"}]}`
	curriculum, err := NormalizeCurriculum(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len([]rune(curriculum.Weeks[0].Title)); got != maxTitleLength {
		t.Fatalf("expected title truncated to %d runes, got %d", maxTitleLength, got)
	}
}
