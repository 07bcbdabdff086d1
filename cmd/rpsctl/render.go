package main

import (
	"fmt"
	"strings"

	"rps-master/internal/api"

	"github.com/charmbracelet/lipgloss"
)

var styles = struct {
	title lipgloss.Style
	label lipgloss.Style
	muted lipgloss.Style
	win   lipgloss.Style
	lose  lipgloss.Style
	draw  lipgloss.Style
	gold  lipgloss.Style
	alert lipgloss.Style
	box   lipgloss.Style
}{
	title: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B50FF")).Bold(true),
	label: lipgloss.NewStyle().Foreground(lipgloss.Color("#858392")).Width(12),
	muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#858392")),
	win:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFB2")).Bold(true),
	lose:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E94090")).Bold(true),
	draw:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD300")).Bold(true),
	gold:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD300")),
	alert: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF60FF")).Bold(true),
	box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4D4C57")).
		Padding(0, 1),
}

func outcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "win":
		return styles.win
	case "lose":
		return styles.lose
	default:
		return styles.draw
	}
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styles.label.Render(label), value)
}

func renderProfile(p *api.Profile) string {
	rec := p.Record
	lines := []string{
		styles.title.Render(p.Name) + " " + styles.muted.Render(p.PlayerID),
		"",
		row("tier", p.Tier.Name),
		row("level", fmt.Sprintf("%d  (%d/%d exp)", rec.Level, rec.Exp, p.NextLevelExp)),
		row("gold", styles.gold.Render(fmt.Sprintf("%d", rec.Gold))),
		row("record", fmt.Sprintf("%s / %s / %s",
			styles.win.Render(fmt.Sprintf("%dW", rec.Wins)),
			styles.lose.Render(fmt.Sprintf("%dL", rec.Losses)),
			styles.draw.Render(fmt.Sprintf("%dD", rec.Draws)))),
		row("win rate", fmt.Sprintf("%.1f%% of %d", p.WinRate*100, rec.TotalGames)),
		row("streak", fmt.Sprintf("%d (best %d)", rec.WinStreak, rec.MaxWinStreak)),
		row("cosmetic", rec.Selected),
		row("unlocked", strings.Join(rec.Unlocked, ", ")),
	}
	if len(p.History) > 0 {
		lines = append(lines, row("recent", strings.Join(p.History, " ")))
	}
	return styles.box.Render(strings.Join(lines, "\n"))
}

func renderRound(r *api.PlayRoundResponse) string {
	style := outcomeStyle(r.Outcome)
	lines := []string{
		fmt.Sprintf("you %s  vs  %s opponent", r.PlayerMove, r.OpponentMove),
		style.Render(strings.ToUpper(r.Outcome)),
		styles.gold.Render(fmt.Sprintf("+%d gold", r.Reward.Gold)) + styles.muted.Render(fmt.Sprintf("  +%d exp", r.Reward.Exp)),
	}
	if r.Reward.LevelsGained > 0 {
		lines = append(lines, styles.alert.Render(fmt.Sprintf("Level up! Now level %d (+%d gold)",
			r.Profile.Record.Level, r.Reward.LevelUpGold)))
	}
	for _, id := range r.Reward.Unlocked {
		lines = append(lines, styles.alert.Render("Unlocked "+id+"!"))
	}
	if r.Profile.Record.WinStreak >= 3 {
		lines = append(lines, styles.win.Render(fmt.Sprintf("%d win streak", r.Profile.Record.WinStreak)))
	}
	return strings.Join(lines, "\n")
}

func renderShop(cat *api.CatalogResponse, p *api.Profile) string {
	owned := make(map[string]bool, len(p.Record.Unlocked))
	for _, id := range p.Record.Unlocked {
		owned[id] = true
	}

	lines := []string{styles.title.Render("Cosmetics") + "  " + styles.gold.Render(fmt.Sprintf("%d gold", p.Record.Gold))}
	for _, c := range cat.Cosmetics {
		var status string
		switch {
		case c.ID == p.Record.Selected:
			status = styles.win.Render("equipped")
		case owned[c.ID]:
			status = styles.muted.Render("owned")
		case c.Price > 0:
			status = styles.gold.Render(fmt.Sprintf("%d gold", c.Price))
		default:
			status = styles.muted.Render(fmt.Sprintf("%d wins", c.WinsRequired))
		}
		lines = append(lines, fmt.Sprintf("  %-8s %-14s %-10s %s", c.ID, c.Name, c.Rarity, status))
	}

	lines = append(lines, "", styles.title.Render("Tiers"))
	for _, t := range cat.Tiers {
		marker := "  "
		if t.Name == p.Tier.Name {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-9s %d wins", marker, t.Name, t.MinWins))
	}
	return strings.Join(lines, "\n")
}

func renderRounds(list *api.ListRoundsResponse) string {
	if len(list.Rounds) == 0 {
		return styles.muted.Render("no rounds yet")
	}
	lines := make([]string, 0, len(list.Rounds))
	for _, r := range list.Rounds {
		lines = append(lines, fmt.Sprintf("%s  %-8s vs %-8s %s  %s",
			styles.muted.Render(r.PlayedAt.Local().Format("2006-01-02 15:04:05")),
			r.PlayerMove, r.OpponentMove,
			outcomeStyle(r.Outcome).Render(fmt.Sprintf("%-4s", r.Outcome)),
			styles.gold.Render(fmt.Sprintf("%+d gold", r.GoldDelta))))
	}
	return strings.Join(lines, "\n")
}
