package fold

func compute(p int) int {
	a := 2
	b := a * 3 // folds to 6
	ok := a < 5
	d := 0 - b
	c := b + p
	c = b - 6
	if ok {
		return c + d
	}
	return c
}
