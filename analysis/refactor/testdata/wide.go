package wide

func tooWide() int {
	x := 1 << 40
	y := 2
	y = y * 3
	return x + y
}

func wraps(p int) int {
	a := 100000
	b := a * a
	return b + p
}
