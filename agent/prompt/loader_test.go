package prompt

import (
	"strings"
	"testing"
)

func TestLoadPromptSet(t *testing.T) {
	t.Parallel()

	set := LoadPromptSet()
	if set.Assistant == "" {
		t.Fatal("assistant prompt must not be empty")
	}
	for _, tool := range []string{"search_cars", "book_car"} {
		if !strings.Contains(set.Assistant, tool) {
			t.Fatalf("assistant prompt does not mention %s", tool)
		}
	}
}
