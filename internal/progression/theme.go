package progression

import "github.com/osse101/NotionPet_Go/internal/domain"

// themes maps level to the pet's look. Indexed directly; entry 0 is unused.
var themes = [MaxLevel + 1]domain.LevelTheme{
	1:  {BodyFill: "rgb(251, 113, 133)", HighlightFill: "rgb(253, 164, 175)", StrokeFill: "rgb(136, 19, 55)", TongueFill: "rgb(220, 20, 60)"},
	2:  {BodyFill: "#87CEEB", HighlightFill: "#B0E0E6", StrokeFill: "#4682B4", TongueFill: "#FF6347"},
	3:  {BodyFill: "#87CEEB", HighlightFill: "#B0E0E6", StrokeFill: "#4682B4", TongueFill: "#FF6347", ShowCrown: true, CrownFill: "#FFD700"},
	4:  {BodyFill: "#90EE90", HighlightFill: "#98FB98", StrokeFill: "#2E8B57", TongueFill: "#FF7F50", ShowCrown: true, CrownFill: "#FFD700"},
	5:  {BodyFill: "#90EE90", HighlightFill: "#98FB98", StrokeFill: "#2E8B57", TongueFill: "#FF7F50", ShowCrown: true, CrownFill: "#FFD700", ShowGem: true, GemFill: "#FF4500"},
	6:  {BodyFill: "#FFD700", HighlightFill: "#FFFACD", StrokeFill: "#B8860B", TongueFill: "#E9967A", ShowCrown: true, CrownFill: "#C0C0C0", ShowGem: true, GemFill: "#FF4500", ShowWings: true},
	7:  {BodyFill: "#FFD700", HighlightFill: "#FFFACD", StrokeFill: "#B8860B", TongueFill: "#E9967A", ShowCrown: true, CrownFill: "#C0C0C0", ShowGem: true, GemFill: "#00FFFF", ShowWings: true},
	8:  {BodyFill: "#E6E6FA", HighlightFill: "#FFFFFF", StrokeFill: "#9370DB", TongueFill: "#F08080", ShowCrown: true, CrownFill: "#FFD700", ShowGem: true, GemFill: "#00FFFF", ShowWings: true},
	9:  {BodyFill: "#E6E6FA", HighlightFill: "#FFFFFF", StrokeFill: "#9370DB", TongueFill: "#F08080", ShowCrown: true, CrownFill: "#FFD700", ShowGem: true, GemFill: "#DA70D6", ShowWings: true, ShowAura: true, AuraFill: "gold"},
	10: {BodyFill: "#D3D3D3", HighlightFill: "#F5F5F5", StrokeFill: "#696969", TongueFill: "#B22222", ShowCrown: true, CrownFill: "#FFD700", ShowGem: true, GemFill: "#DA70D6", ShowWings: true, ShowAura: true, AuraFill: "url(#rainbowAura)"},
}

// ThemeFor returns the look for a level. Unknown levels get the level 1 look.
func ThemeFor(level int) domain.LevelTheme {
	if level < 1 || level > MaxLevel {
		level = 1
	}
	theme := themes[level]
	theme.Level = level
	theme.WingStyle = wingStyle(level)
	theme.MagicRuneCount = runeCount(level)
	return theme
}

func wingStyle(level int) string {
	switch {
	case level >= MaxLevel:
		return WingStyleRainbow
	case level >= AngelWingsMinLevel:
		return WingStyleAngel
	case level >= WingsMinLevel:
		return WingStyleSimple
	default:
		return ""
	}
}

// runeCount is the number of runes on the magic circle drawn with the wings
func runeCount(level int) int {
	switch {
	case level >= MaxLevel:
		return 12
	case level >= AngelWingsMinLevel:
		return 8
	case level >= WingsMinLevel:
		return 6
	default:
		return 0
	}
}
