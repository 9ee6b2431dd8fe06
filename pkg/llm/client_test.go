package llm

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestBuildSystemPrompt(t *testing.T) {
	now := time.Date(2026, 2, 26, 6, 0, 0, 0, time.UTC)
	got := buildSystemPrompt(now)

	assert.Equal(t, true, strings.Contains(got, "🌟財經AI快報 2026-02-26"))
	assert.Equal(t, false, strings.Contains(got, "{date}"))
}

func TestBuildUserPrompt(t *testing.T) {
	items := []ReportInput{
		{Title: "Fed 按兵不動", Summary: "利率維持不變"},
		{Title: "台積電法說", Summary: "資本支出上修"},
	}

	got := buildUserPrompt(items)

	assert.Equal(t, true, strings.HasPrefix(got, "新聞：\n"))
	assert.Equal(t, true, strings.Contains(got, "Fed 按兵不動 | 利率維持不變\n"))
	assert.Equal(t, true, strings.Contains(got, "台積電法說 | 資本支出上修\n"))
}
