package styles

import "github.com/charmbracelet/lipgloss"

// Oxocarbon color scheme - IBM Carbon inspired
// Following base16 oxocarbon-dark palette
var (
	// Base colors
	OxocarbonBlack  = lipgloss.Color("#161616") // Darkest background
	OxocarbonBase00 = lipgloss.Color("#262626") // UI elements (lighter than bg)
	OxocarbonBase01 = lipgloss.Color("#393939") // Borders, secondary UI
	OxocarbonBase02 = lipgloss.Color("#525252") // Disabled/muted elements
	OxocarbonBase03 = lipgloss.Color("#767676") // Disabled/muted elements
	OxocarbonBase04 = lipgloss.Color("#dde1e6") // Secondary foreground
	OxocarbonBase05 = lipgloss.Color("#f2f4f8") // Primary foreground
	OxocarbonWhite  = lipgloss.Color("#ffffff")

	// Accent colors
	OxocarbonTeal   = lipgloss.Color("#3ddbd9") // base08
	OxocarbonBlue   = lipgloss.Color("#78a9ff") // base09
	OxocarbonPink   = lipgloss.Color("#ee5396") // base0A
	OxocarbonCyan   = lipgloss.Color("#33b1ff") // base0B
	OxocarbonGreen  = lipgloss.Color("#42be65") // base0D
	OxocarbonPurple = lipgloss.Color("#be95ff") // base0E - main accent
	OxocarbonMauve  = lipgloss.Color("#d1aaff")
)

// Background is the screen background the banner gradient fades into
var Background = OxocarbonBlack

// BannerColor is the fill used in place of the banner image
var BannerColor = OxocarbonBase01

var (
	// Title style
	TitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			Italic(true)

	// List item with oxocarbon border (mangal style)
	ListItemStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(OxocarbonBase02).
			BorderLeft(true).
			PaddingLeft(2).
			PaddingRight(2).
			MarginLeft(1)

	// Selected item with highlighted border
	ListItemSelectedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(OxocarbonPurple).
				BorderLeft(true).
				PaddingLeft(2).
				PaddingRight(2).
				MarginLeft(1)

	ListTitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Bold(true)

	ListTitleSelectedStyle = lipgloss.NewStyle().
				Foreground(OxocarbonPurple).
				Bold(true)

	// Subtitle/metadata style - slightly muted but still readable
	MetadataStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04)

	// URL/link style
	URLStyle = lipgloss.NewStyle().
			Foreground(OxocarbonCyan).
			Italic(true)

	// Big title on the detail card
	DetailTitleStyle = lipgloss.NewStyle().
				Foreground(OxocarbonBase05).
				Bold(true)

	// One line of the metadata list under the title
	DetailTextStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04)

	// Synopsis style
	SynopsisStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05)

	// Content card drawn over the bottom of the banner
	ContentCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true, true, false, true).
				BorderForeground(OxocarbonBase02).
				Background(Background)

	// Genre chip - fixed-width pill
	GenreChipStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1)

	// Scroll hints at the ends of the genre row
	ScrollHintStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03)

	// Round action buttons (back, favorite)
	CircleButtonStyle = lipgloss.NewStyle().
				Foreground(OxocarbonBase05).
				Background(OxocarbonBase00).
				Padding(0, 1)

	FavoriteButtonStyle = CircleButtonStyle.
				Foreground(OxocarbonPink)

	// Play affordance next to the title
	PlayButtonStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBlack).
			Background(OxocarbonGreen).
			Padding(0, 2).
			Bold(true)

	// Banner placeholder text
	BannerTextStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			Italic(true)

	// Footer style for status messages
	FooterStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1)
)

// StatusColor returns the footer background for a status kind
func StatusColor(kind string) lipgloss.Color {
	switch kind {
	case "success":
		return OxocarbonGreen
	case "error":
		return OxocarbonPink
	case "clipboard":
		return OxocarbonBlue
	default:
		return OxocarbonCyan
	}
}
