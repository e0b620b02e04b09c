package sample

type counter int

func constants() int {
	a := 1
	b := 2
	c := a + b
	return c
}

func branchy(p bool) int {
	x := 0
	if p {
		x = 1
	} else {
		x = 2
	}
	return x
}

func wide(n int64) int64 {
	m := n + 1
	return m
}

func shifty(u uint8) uint8 {
	u = u >> 1
	return u
}

func (c counter) bump(d int) int {
	e := int(c) + d
	return e
}

func add(a, b int) int {
	return a + b
}

func caller() int {
	r := add(1, 2)
	return r
}

func noBody() int
