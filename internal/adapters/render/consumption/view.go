package consumption

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 24

type RenderOptions struct {
	Now      time.Time
	BarWidth int
}

func RenderConsumption(c domain.EntitlementsConsumption, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return consumptionView(c, opts, s)
	})
}

// RenderSet renders an entitlements set. A nil set means the user has no
// entitlements.
func RenderSet(set *domain.EntitlementsSet, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return setView(set, opts, s)
	})
}

func consumptionView(c domain.EntitlementsConsumption, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Entitlements"),
		s.header.Render(fmt.Sprintf("set: %s  %s", orNone(c.Entitlements.EntitlementsSetName), userVersionLabel(c.Entitlements))),
		s.section.Render(entitlementList(c.Entitlements.Entitlements, s)),
		s.section.Render(s.title.Render("Consumption")),
	}

	if len(c.Consumption) == 0 {
		lines = append(lines, s.empty.Render("No consumption recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, item := range c.Consumption {
		lines = append(lines, consumptionLine(item, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func setView(set *domain.EntitlementsSet, opts RenderOptions, s styles) string {
	if set == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Entitlements set"),
			s.empty.Render("No entitlements assigned."),
		)
	}

	lines := []string{
		s.title.Render("Entitlements set"),
		s.header.Render(fmt.Sprintf("name: %s  version: %d", set.Name, set.Version)),
	}
	if set.Description != "" {
		lines = append(lines, s.detail.Render(set.Description))
	}
	lines = append(lines,
		s.detail.Render(fmt.Sprintf("created %s, updated %s", formatWhen(set.Created, opts.Now), formatWhen(set.Updated, opts.Now))),
		s.section.Render(entitlementList(set.Entitlements, s)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func entitlementList(entitlements []domain.Entitlement, s styles) string {
	if len(entitlements) == 0 {
		return s.empty.Render("No entitlements.")
	}

	width := 0
	for _, e := range entitlements {
		width = max(width, len(e.Name))
	}

	lines := make([]string, 0, len(entitlements))
	for _, e := range entitlements {
		line := s.name.Render(fmt.Sprintf("%-*s", width, e.Name)) + "  " + s.value.Render(strconv.FormatInt(e.Value, 10))
		if e.Description != "" {
			line += "  " + s.detail.Render(e.Description)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func consumptionLine(c domain.EntitlementConsumption, opts RenderOptions, s styles) string {
	title := s.name.Render(c.Name)
	if c.Consumer != nil {
		title += " " + s.consumer.Render(fmt.Sprintf("(%s @ %s)", c.Consumer.ID, c.Consumer.Issuer))
	}

	width := opts.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	meta := s.value.Render(fmt.Sprintf("%d of %d left", c.Available, c.Value))
	if c.Value > 0 && c.Available <= 0 {
		meta = s.exhausted.Render("exhausted")
	}

	usage := lipgloss.JoinHorizontal(lipgloss.Top,
		renderProgressBar(c.Available, c.Value, width, s),
		" ",
		meta,
		" ",
		s.detail.Render("("+lastUsed(c.LastConsumedAt, opts.Now)+")"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, usage)
}

// renderProgressBar fills the share of value still available.
func renderProgressBar(available, value int64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if value > 0 {
		fraction := float64(available) / float64(value)
		filled = int(math.Round(float64(width) * fraction))
	}
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func userVersionLabel(u domain.UserEntitlements) string {
	version := strconv.FormatFloat(u.Version, 'f', -1, 64)
	user, set, err := u.SplitVersion()
	if err != nil {
		return "version: " + version
	}

	return fmt.Sprintf("version: %s (user %d, set %d)", version, user, set)
}

func lastUsed(at *time.Time, now time.Time) string {
	if at == nil {
		return "never used"
	}
	return "last used " + formatWhen(*at, now)
}

func formatWhen(at time.Time, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() || at.After(now) {
		return at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return plural(int(elapsed.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "none"
	}
	return v
}
