package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HiddenFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	CollectedFg tcell.Color
	SummaryFg   tcell.Color
	RepoFg      tcell.Color
	OnFg        tcell.Color
	OffFg       tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	SuccessBg   tcell.Color
	SuccessFg   tcell.Color
	ErrorBg     tcell.Color
	ErrorFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.ColorDefault,
		CollectedFg: tcell.Color214, // amber marker for collected files
		SummaryFg:   tcell.ColorYellow,
		RepoFg:      tcell.ColorGreen,
		OnFg:        tcell.ColorGreen,
		OffFg:       tcell.ColorRed,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		SuccessBg:   tcell.Color22,
		SuccessFg:   tcell.ColorWhite,
		ErrorBg:     tcell.Color88,
		ErrorFg:     tcell.ColorWhite,
	}
}
