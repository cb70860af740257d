package engine

import (
	"math/rand/v2"
	"time"
)

// Boss is a Battle opponent.
type Boss struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

var bosses = []Boss{
	{Name: "The Exam Phantom", Title: "Phobia of Paper"},
	{Name: "Grammar Goblin", Title: "Sentence Mangler"},
	{Name: "Procrastination Prince", Title: "The Time Thief"},
	{Name: "Vocabulary Void", Title: "The Word Swallower"},
	{Name: "Deadline Dragon", Title: "The Final Countdown"},
}

// Bosses returns the Battle roster.
func Bosses() []Boss {
	return append([]Boss(nil), bosses...)
}

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

// NewPicker returns a PCG-backed picker. A zero seed uses the clock.
func NewPicker(seed uint64) Picker {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// FixedPicker always picks the same index, modulo n.
type FixedPicker int

func (p FixedPicker) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return ((int(p) % n) + n) % n
}
