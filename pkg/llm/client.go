package llm

import (
	"fmt"
	"strings"
	"time"
)

const systemPrompt = `你是總體經濟分析師與台股策略研究員。
請對以下新聞做：
1) 重要性排序（列出 3-6 則最重要）
2) 市場情緒（偏風險偏好/風險趨避/中性 + 原因）
3) 台股影響（利多/中性/利空；若可能點名產業）
4) 投資觀察（3-5 點可操作觀察，避免保證獲利語氣）

輸出格式：
🌟財經AI快報 {date}

📊重大事件
🔥市場情緒
💰台股影響
📈投資觀察`

// PlaceholderReport is published when there is nothing to analyze or the
// analyst is unavailable.
const PlaceholderReport = "📰 今日無新重大財經事件"

// ReportInput is one news item handed to the analyst.
type ReportInput struct {
	Title   string
	Summary string
}

// Analyst produces the free-text ranked market report for one day's news.
type Analyst interface {
	Report(items []ReportInput) (string, error)
}

func buildSystemPrompt(now time.Time) string {
	return strings.ReplaceAll(systemPrompt, "{date}", now.Format("2006-01-02"))
}

func buildUserPrompt(items []ReportInput) string {
	var sb strings.Builder
	sb.WriteString("新聞：\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("%s | %s\n", item.Title, item.Summary))
	}
	return sb.String()
}
