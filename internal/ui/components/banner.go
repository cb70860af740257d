package components

import (
	"charm.land/lipgloss/v2"
)

// BannerArt is the block-letter title shared by the splash and home screens.
const BannerArt = ` ██╗     ██╗███╗   ██╗ ██████╗ ██╗   ██╗ ██████╗
 ██║     ██║████╗  ██║██╔════╝ ██║   ██║██╔═══██╗
 ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║██║   ██║
 ██║     ██║██║╚██╗██║██║   ██║██║   ██║██║   ██║
 ███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝╚██████╔╝
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝  ╚═════╝
    ██████╗ ██╗   ██╗███████╗███████╗████████╗
   ██╔═══██╗██║   ██║██╔════╝██╔════╝╚══██╔══╝
   ██║   ██║██║   ██║█████╗  ███████╗   ██║
   ██║▄▄ ██║██║   ██║██╔══╝  ╚════██║   ██║
   ╚██████╔╝╚██████╔╝███████╗███████║   ██║
    ╚══▀▀═╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝`

// BannerCompact replaces BannerArt on narrow terminals.
const BannerCompact = "L I N G U O Q U E S T"

// BannerWidth is the widest line of BannerArt.
var BannerWidth = lipgloss.Width(BannerArt)
