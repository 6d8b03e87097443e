package board

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Lerex702/elorank/internal/tier"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var printer = message.NewPrinter(language.English)

var funcs = template.FuncMap{
	"tier":      tier.Classify,
	"tiers":     tier.All,
	"kd":        func(r float64) string { return fmt.Sprintf("%.2f", r) },
	"streak":    Streak,
	"rankBadge": RankBadge,
	"medal":     medalClass,
	"thousands": Thousands,
}

var pageTemplate = template.Must(template.New("board.html").Funcs(funcs).ParseFS(templateFS, "templates/board.html"))

// Render writes the full page.
func Render(w io.Writer, v View) error {
	return pageTemplate.ExecuteTemplate(w, "page", v)
}

// RenderFragment writes only the live section the page swaps in on refresh.
func RenderFragment(w io.Writer, v View) error {
	return pageTemplate.ExecuteTemplate(w, "board", v)
}

// RankBadge is a trophy for the podium and "#n" for everyone else.
func RankBadge(rank int) string {
	if rank >= 1 && rank <= 3 {
		return "🏆"
	}
	return fmt.Sprintf("#%d", rank)
}

func medalClass(rank int) string {
	switch rank {
	case 1:
		return "medal-gold"
	case 2:
		return "medal-silver"
	case 3:
		return "medal-bronze"
	}
	return "rank-plain"
}

// Streak renders a win streak as ▲n, a losing streak as ▼n and zero as "-".
func Streak(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("▲%d", n)
	case n < 0:
		return fmt.Sprintf("▼%d", -n)
	default:
		return "-"
	}
}

// Thousands formats n with comma grouping.
func Thousands(n int64) string {
	return printer.Sprintf("%d", n)
}
