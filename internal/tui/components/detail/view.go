package detail

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/justchokingaround/aniview/internal/config"
	"github.com/justchokingaround/aniview/internal/tui/styles"
	"github.com/justchokingaround/aniview/internal/tui/utils"
)

// Layout holds the sizing constants of the detail screen
type Layout struct {
	BannerRatio    float64
	ContentOverlap int
	ChipWidth      int
	ChipSeparator  int
	Margin         int
}

// LayoutFromConfig copies the layout constants out of the UI config
func LayoutFromConfig(cfg config.UIConfig) Layout {
	return Layout{
		BannerRatio:    cfg.BannerRatio,
		ContentOverlap: cfg.ContentOverlap,
		ChipWidth:      cfg.ChipWidth,
		ChipSeparator:  cfg.ChipSeparator,
		Margin:         cfg.HorizontalMargin,
	}
}

// DefaultLayout matches the default UI config
func DefaultLayout() Layout {
	return LayoutFromConfig(config.Default().UI)
}

// BannerHeight is the full banner height for a screen of the given height
func (l Layout) BannerHeight(screenHeight int) int {
	if l.BannerRatio < 1 || screenHeight <= 0 {
		return 0
	}
	return int(float64(screenHeight) / l.BannerRatio)
}

// VisibleBannerRows is how much of the banner shows above the content card
func (l Layout) VisibleBannerRows(screenHeight int) int {
	return max(l.BannerHeight(screenHeight)-l.ContentOverlap, 0)
}

// GradientRows is the height of the overlay that fades the banner out
func (l Layout) GradientRows(screenHeight int) int {
	return l.BannerHeight(screenHeight) / 6
}

// renderActions draws the back button on the left and the favorite button
// on the right
func renderActions(a Actions, width, margin int) string {
	back := styles.CircleButtonStyle.Render("(" + a.Back.Label + ")")
	fav := styles.FavoriteButtonStyle.Render("(" + a.Favorite.Label + ")")

	margin = max(margin, 0)
	gap := width - 2*margin - lipgloss.Width(back) - lipgloss.Width(fav)
	if gap < 1 {
		gap = 1
	}
	pad := strings.Repeat(" ", margin)
	return pad + back + strings.Repeat(" ", gap) + fav
}

// renderBanner draws the visible part of the banner: a flat fill standing in
// for the image, its URL in the middle and the gradient overlay at the bottom
func renderBanner(b Banner, width, rows, gradientRows int) string {
	if rows <= 0 || width <= 0 {
		return ""
	}

	fill := lipgloss.NewStyle().Width(width).Background(styles.BannerColor)
	gradient := gradientColors(min(gradientRows, rows))

	label := ""
	if b.ImageURL != "" {
		label = styles.BannerTextStyle.Render(utils.TruncateWithWidth(b.ImageURL, width-4))
	}
	labelRow := (rows - len(gradient)) / 2

	lines := make([]string, rows)
	for i := range lines {
		style := fill
		if g := i - (rows - len(gradient)); g >= 0 {
			style = style.Background(gradient[g])
		}
		text := ""
		if i == labelRow && label != "" {
			text = lipgloss.PlaceHorizontal(width, lipgloss.Center, label)
		}
		lines[i] = style.Render(text)
	}
	return strings.Join(lines, "\n")
}

// gradientColors blends the banner color into the background over n steps
func gradientColors(n int) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	from, err1 := colorful.Hex(string(styles.BannerColor))
	to, err2 := colorful.Hex(string(styles.Background))
	if err1 != nil || err2 != nil {
		return nil
	}

	colors := make([]lipgloss.Color, n)
	for i := range colors {
		t := float64(i+1) / float64(n)
		colors[i] = lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())
	}
	return colors
}

// renderContent draws the rounded card holding header, synopsis and genres
func renderContent(s Screen, l Layout, width, genreOffset int) string {
	card := styles.ContentCardStyle.Padding(1, max(l.Margin, 0))
	// Width covers padding but not the side borders.
	cardWidth := max(width-card.GetHorizontalBorderSize(), 1)
	inner := max(cardWidth-card.GetHorizontalPadding(), 1)

	sections := []string{renderHeader(s.Header, inner)}
	if s.Synopsis != "" {
		sections = append(sections, styles.SynopsisStyle.Render(strings.Join(utils.WrapText(s.Synopsis, inner), "\n")))
	}
	if s.Genres != nil {
		sections = append(sections, renderGenres(s.Genres, inner, l.ChipWidth, genreOffset))
	}

	return card.Width(cardWidth).Render(strings.Join(sections, "\n\n"))
}

// renderHeader puts title and details on the left, the play button on the
// right, vertically centered
func renderHeader(h Header, width int) string {
	play := ""
	if h.Play != nil {
		play = styles.PlayButtonStyle.Render(h.Play.Label)
	}

	leftWidth := width
	if play != "" {
		leftWidth = max(width-lipgloss.Width(play)-2, 1)
	}

	lines := []string{styles.DetailTitleStyle.Render(strings.Join(utils.WrapText(h.Title, leftWidth), "\n"))}
	for _, d := range h.Details {
		lines = append(lines, styles.DetailTextStyle.Render(utils.TruncateWithWidth(d, leftWidth)))
	}
	left := lipgloss.NewStyle().Width(leftWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	if play == "" {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, "  ", play)
}

// visibleChips returns how many chips starting at offset fit in width, with
// room kept for the scroll hints
func visibleChips(g *GenreList, width, chipWidth, offset int) int {
	avail := width - 4 // "‹ " and " ›"
	n := 0
	used := 0
	for i := offset; i < len(g.Items); i++ {
		need := chipWidth
		if n > 0 {
			need += g.SeparatorWidth
		}
		if used+need > avail {
			break
		}
		used += need
		n++
	}
	// Always show at least one chip, even if it gets clipped.
	if n == 0 && offset < len(g.Items) {
		n = 1
	}
	return n
}

// renderGenres draws the chips from offset onwards with fixed-width
// separators, plus hints when there are chips off either edge
func renderGenres(g *GenreList, width, chipWidth, offset int) string {
	offset = clampOffset(offset, len(g.Items))
	n := visibleChips(g, width, chipWidth, offset)

	sep := strings.Repeat(" ", g.SeparatorWidth)
	chips := make([]string, 0, n)
	for _, c := range g.Items[offset : offset+n] {
		chips = append(chips, styles.GenreChipStyle.Render(utils.FitCenter(c.Label, max(chipWidth-2, 1))))
	}

	left, right := "  ", "  "
	if offset > 0 {
		left = styles.ScrollHintStyle.Render("‹ ")
	}
	if offset+n < len(g.Items) {
		right = styles.ScrollHintStyle.Render(" ›")
	}

	row := left + strings.Join(chips, sep) + right
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

func clampOffset(offset, n int) int {
	if offset > n-1 {
		offset = n - 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// RenderBody renders everything that scrolls: the banner and the card
func RenderBody(s Screen, l Layout, width, screenHeight, genreOffset int) string {
	banner := renderBanner(s.Banner, width, l.VisibleBannerRows(screenHeight), l.GradientRows(screenHeight))
	content := renderContent(s, l, width, genreOffset)
	if banner == "" {
		return content
	}
	return banner + "\n" + content
}
