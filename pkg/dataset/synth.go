package dataset

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal draws n samples with x ~ N(0, 1) and y = 0.5x + N(0, 0.5).
func Normal(seed uint64, n int) *Dataset {
	src := rand.NewSource(seed)
	xd := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 0.5, Src: src}

	d := &Dataset{
		Name:   "normal",
		XLabel: "X Axis",
		YLabel: "Y Axis",
		X:      make([]float64, n),
		Y:      make([]float64, n),
	}
	for i := range n {
		d.X[i] = xd.Rand()
	}
	for i := range n {
		d.Y[i] = 0.5*d.X[i] + noise.Rand()
	}
	return d
}

// StudyHours simulates n students: hours ~ N(5, 2) and
// score = 50 + 5·hours + N(0, 10).
func StudyHours(seed uint64, n int) *Dataset {
	src := rand.NewSource(seed)
	hours := distuv.Normal{Mu: 5, Sigma: 2, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 10, Src: src}

	d := &Dataset{
		Name:   "study",
		XLabel: "Study Hours",
		YLabel: "Exam Scores",
		X:      make([]float64, n),
		Y:      make([]float64, n),
	}
	for i := range n {
		d.X[i] = hours.Rand()
	}
	for i := range n {
		d.Y[i] = 50 + 5*d.X[i] + noise.Rand()
	}
	return d
}
