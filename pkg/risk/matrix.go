package risk

// Consequence labels from the most to the least severe, the column
// order of Matrix.
var ConsequenceLabels = []string{
	"Catastrophic", "Very High", "High", "Medium", "Low",
}

// Likelihood labels from the least to the most likely, the row order
// of Matrix.
var LikelihoodLabels = []string{
	"Rare", "Unlikely", "Occasional", "Likely", "Highly Likely", "Almost Certain",
}

// Matrix is the reference table planners consult. It is descriptive
// only; stored ratings come from Compute.
var Matrix = [][]Rating{
	{High, Moderate, Moderate, Low, Low},
	{High, High, Moderate, Moderate, Low},
	{High, High, High, Moderate, Moderate},
	{Extreme, High, High, High, Moderate},
	{Extreme, Extreme, High, High, Moderate},
	{Extreme, Extreme, Extreme, High, High},
}

// MatrixCell returns the descriptive rating for a likelihood and a
// consequence label, false if either label is unknown.
func MatrixCell(likelihood, consequence string) (Rating, bool) {
	row, col := -1, -1
	for i, v := range LikelihoodLabels {
		if v == likelihood {
			row = i
		}
	}
	for i, v := range ConsequenceLabels {
		if v == consequence {
			col = i
		}
	}
	if row < 0 || col < 0 {
		return "", false
	}
	return Matrix[row][col], true
}
