package risk

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/tradeinsight/analytics/internal/domain"
)

// Generator draws correlated daily return vectors for a fixed portfolio.
// The correlation matrix is assembled and Cholesky-factorized once at
// construction; each Draw then costs one lower-triangular multiply.
type Generator struct {
	symbols   []string
	dailyVols []float64
	lower     *mat.TriDense
	corr      *mat.SymDense
	rng       *rand.Rand

	z   []float64
	out []float64
}

// NewGenerator builds a generator for the given portfolio. When the
// correlation matrix is not positive definite the Cholesky factor is
// dropped and draws degrade to independent normals; the generator never
// fails to construct.
func NewGenerator(portfolio []domain.Position, profiles *ProfileStore, rng *rand.Rand) *Generator {
	n := len(portfolio)

	g := &Generator{
		symbols:   make([]string, n),
		dailyVols: make([]float64, n),
		rng:       rng,
		z:         make([]float64, n),
		out:       make([]float64, n),
	}
	for i, pos := range portfolio {
		g.symbols[i] = pos.Symbol
		g.dailyVols[i] = profiles.Volatility(pos.Symbol) / math.Sqrt(252)
	}

	g.corr = CorrelationMatrix(g.symbols, profiles)

	var chol mat.Cholesky
	if chol.Factorize(g.corr) {
		g.lower = mat.NewTriDense(n, mat.Lower, nil)
		chol.LTo(g.lower)
	}

	return g
}

// CorrelationMatrix assembles the symmetric correlation matrix for a set
// of symbols: unit diagonal, pairwise entries from the profile store.
func CorrelationMatrix(symbols []string, profiles *ProfileStore) *mat.SymDense {
	n := len(symbols)
	corr := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		corr.SetSym(i, i, 1.0)
		for j := i + 1; j < n; j++ {
			corr.SetSym(i, j, profiles.Correlation(symbols[i], symbols[j]))
		}
	}
	return corr
}

// Correlations exposes the assembled matrix, mainly for inspection.
func (g *Generator) Correlations() *mat.SymDense {
	return g.corr
}

// Correlated reports whether draws use the Cholesky factor rather than
// the independent fallback.
func (g *Generator) Correlated() bool {
	return g.lower != nil
}

// Draw produces one vector of daily returns, index-aligned with the
// portfolio the generator was built from. The returned slice is reused
// across calls.
func (g *Generator) Draw() []float64 {
	n := len(g.symbols)
	for i := 0; i < n; i++ {
		g.z[i] = g.rng.NormFloat64()
	}

	if g.lower == nil {
		for i := 0; i < n; i++ {
			g.out[i] = g.z[i] * g.dailyVols[i]
		}
		return g.out
	}

	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j <= i; j++ {
			sum += g.lower.At(i, j) * g.z[j]
		}
		g.out[i] = sum * g.dailyVols[i]
	}
	return g.out
}
