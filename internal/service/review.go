package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/trackedge/trackedge/internal/models"
	"github.com/trackedge/trackedge/internal/telegram"
	"github.com/trackedge/trackedge/pkg/metrics"
	"github.com/valyala/fasttemplate"
)

const reviewWindow = 7 * 24 * time.Hour

// gradeSetup 周评级，只使用 A+/A/B/C/F
func gradeSetup(profitFactor, winRate float64) metrics.Grade {
	switch {
	case profitFactor >= 2 && winRate >= 0.6:
		return metrics.GradeAPlus
	case profitFactor >= 1.5 && winRate >= 0.5:
		return metrics.GradeA
	case profitFactor >= 1.2:
		return metrics.GradeB
	case profitFactor >= 1:
		return metrics.GradeC
	default:
		return metrics.GradeF
	}
}

func decisionFor(grade metrics.Grade) models.ReviewDecision {
	switch grade {
	case metrics.GradeAPlus:
		return models.DecisionIncreaseSize
	case metrics.GradeA, metrics.GradeB:
		return models.DecisionMaintain
	case metrics.GradeC:
		return models.DecisionReduceSize
	default:
		return models.DecisionEliminate
	}
}

// rankSetups 按总盈亏降序，相同时按名称排序
func rankSetups(groups map[string][]metrics.Trade, names map[string]string, opts []metrics.Option) ([]models.SetupRanking, error) {
	rankings := make([]models.SetupRanking, 0, len(groups))
	for setupID, trades := range groups {
		report, err := metrics.BuildReport(setupID, trades, opts...)
		if err != nil {
			return nil, fmt.Errorf("setup %s: %w", setupID, err)
		}

		name := names[setupID]
		if name == "" {
			name = setupID
		}

		perf := report.Performance
		grade := gradeSetup(float64(perf.ProfitFactor), perf.WinRate)
		rankings = append(rankings, models.SetupRanking{
			SetupID:      setupID,
			SetupName:    name,
			Grade:        grade,
			NumOfTrades:  perf.TotalTrades,
			WinRate:      perf.WinRate,
			TotalPnl:     perf.TotalPnL,
			ProfitFactor: perf.ProfitFactor,
			StdDeviation: report.Consistency.StdDeviation,
			Decision:     decisionFor(grade),
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].TotalPnl != rankings[j].TotalPnl {
			return rankings[i].TotalPnl > rankings[j].TotalPnl
		}
		return rankings[i].SetupName < rankings[j].SetupName
	})
	return rankings, nil
}

// reviewInsights rankings 必须已排序；previous 为上一次复盘的排名，可以为空
func reviewInsights(rankings, previous []models.SetupRanking) models.ReviewInsights {
	var insights models.ReviewInsights
	if len(rankings) == 0 {
		return insights
	}
	insights.BestPerformingSetup = rankings[0].SetupName
	insights.WorstPerformingSetup = rankings[len(rankings)-1].SetupName

	var lowest *models.SetupRanking
	for i := range rankings {
		r := &rankings[i]
		if r.NumOfTrades < 2 || r.StdDeviation == nil {
			continue
		}
		if lowest == nil || *r.StdDeviation < *lowest.StdDeviation {
			lowest = r
		}
	}
	if lowest != nil {
		insights.MostConsistentSetup = lowest.SetupName
	}

	lastWeek := make(map[string]float64, len(previous))
	for _, p := range previous {
		lastWeek[p.SetupID] = p.TotalPnl
	}
	var bestDelta float64
	for _, r := range rankings {
		pnl, ok := lastWeek[r.SetupID]
		if !ok {
			continue
		}
		if delta := r.TotalPnl - pnl; delta > bestDelta {
			bestDelta = delta
			insights.MostImprovedSetup = r.SetupName
		}
	}
	return insights
}

func reviewAdjustments(rankings []models.SetupRanking) []string {
	var adjustments []string
	for _, r := range rankings {
		switch r.Decision {
		case models.DecisionIncreaseSize:
			adjustments = append(adjustments, "Sizing up on "+r.SetupName)
		case models.DecisionReduceSize:
			adjustments = append(adjustments, "Reducing size on "+r.SetupName)
		case models.DecisionEliminate:
			adjustments = append(adjustments, "Removing "+r.SetupName)
		}
	}
	return adjustments
}

const digestTemplate = "*Weekly setup review* {{week}}\n\n{{rankings}}\n\n" +
	"Best: {{best}}\nWorst: {{worst}}\nMost consistent: {{consistent}}\nMost improved: {{improved}}"

const rankingLineTemplate = "{{grade}} *{{name}}* {{trades}} trades, win {{win_rate}}%, pnl {{pnl}}, {{decision}}"

// renderDigest 生成 Telegram MarkdownV2 周报，动态内容都已转义
func renderDigest(review models.SetupReview, loc *time.Location) string {
	line := fasttemplate.New(rankingLineTemplate, "{{", "}}")
	lines := make([]string, 0, len(review.Rankings))
	for _, r := range review.Rankings {
		lines = append(lines, line.ExecuteString(map[string]interface{}{
			"grade":    telegram.Escape(string(r.Grade)),
			"name":     telegram.Escape(r.SetupName),
			"trades":   strconv.Itoa(r.NumOfTrades),
			"win_rate": telegram.Escape(strconv.FormatFloat(r.WinRate*100, 'f', 1, 64)),
			"pnl":      telegram.Escape(strconv.FormatFloat(r.TotalPnl, 'f', 2, 64)),
			"decision": telegram.Escape(string(r.Decision)),
		}))
	}

	insights := review.Insights.Data()
	orNone := func(s string) string {
		if s == "" {
			return "none"
		}
		return telegram.Escape(s)
	}

	return fasttemplate.ExecuteString(digestTemplate, "{{", "}}", map[string]interface{}{
		"week":       telegram.Escape(review.WeekEnding.In(loc).Format("2006-01-02")),
		"rankings":   strings.Join(lines, "\n"),
		"best":       orNone(insights.BestPerformingSetup),
		"worst":      orNone(insights.WorstPerformingSetup),
		"consistent": orNone(insights.MostConsistentSetup),
		"improved":   orNone(insights.MostImprovedSetup),
	})
}
