package service

import (
	"strings"
	"testing"
)

func TestBuildCoursePrompt_EmbedsNameAndDescription(t *testing.T) {
	prompt := BuildCoursePrompt("Intro to Graphs", "basics of graph theory")

	if !strings.Contains(prompt, "Intro to Graphs") {
		t.Fatalf("prompt missing course name: %q", prompt)
	}
	if !strings.Contains(prompt, "basics of graph theory") {
		t.Fatalf("prompt missing course description: %q", prompt)
	}
	if !strings.Contains(prompt, "6-week") {
		t.Fatalf("prompt missing week count directive: %q", prompt)
	}
}

func TestBuildCoursePrompt_IncludesFormatDirective(t *testing.T) {
	prompt := BuildCoursePrompt("N", "D")

	for _, want := range []string{"exactly one JSON object", `"weeks"`, `"learningObjectives"`, "no code fencing"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildCoursePrompt_IsDeterministic(t *testing.T) {
	a := BuildCoursePrompt("Name", "Desc")
	b := BuildCoursePrompt("Name", "Desc")
	if a != b {
		t.Fatal("prompt builder is not deterministic")
	}
}
