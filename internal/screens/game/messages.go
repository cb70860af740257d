package game

// typeTickMsg reveals one more rune of a story passage.
type typeTickMsg struct {
	seq int
}
