package analysis_test

import (
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/growthlab/internal/analysis"
	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/solver"
)

var savingsRates = []float64{0.05, 0.1, 0.2, 0.25, 0.4, 0.5, 0.75, 0.9}

var savingsSteadyStates = []float64{
	0.3432059, 0.9707329, 2.7456472, 3.8371586,
	7.7658631, 10.8531236, 19.9384612, 26.2097879,
}

func newSolver(v growth.Variant, m solver.Method) *solver.Solver {
	cfg := solver.DefaultConfig()
	cfg.Method = m
	s, err := solver.New(v, cfg)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Sweep", func() {
	var base growth.Params

	BeforeEach(func() {
		base = growth.Params{B: 10, S: 0.2, N: 0.02, Alpha: 1.0 / 3.0, Delta: 1, Phi: 0.4}
	})

	DescribeTable("savings sweep on the basic variant",
		func(m solver.Method, workers int) {
			points, err := analysis.Sweep(context.Background(), newSolver(growth.Basic, m), base, growth.SymS, savingsRates, workers)
			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(HaveLen(len(savingsRates)))
			for i, p := range points {
				Expect(p.Err).NotTo(HaveOccurred())
				Expect(p.Value).To(Equal(savingsRates[i]))
				Expect(p.K).To(BeNumerically("~", savingsSteadyStates[i], 1e-6))
			}
			Expect(analysis.Failed(points)).To(BeZero())
		},
		Entry("closed form, sequential", solver.ClosedForm, 1),
		Entry("numeric, sequential", solver.Numeric, 1),
		Entry("closed form, parallel", solver.ClosedForm, 4),
		Entry("numeric, parallel", solver.Numeric, 3),
	)

	It("reports a bad value without aborting the rest", func() {
		values := []float64{0.2, 0.001, 0.5}
		points, err := analysis.Sweep(context.Background(), newSolver(growth.Basic, solver.Numeric), base, growth.SymS, values, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(3))

		Expect(points[0].OK()).To(BeTrue())
		Expect(points[0].K).To(BeNumerically("~", 2.7456472, 1e-6))

		Expect(points[1].OK()).To(BeFalse())
		Expect(points[1].Err).To(MatchError(growth.ErrDomain))
		Expect(points[1].Value).To(Equal(0.001))

		Expect(points[2].OK()).To(BeTrue())
		Expect(points[2].K).To(BeNumerically("~", 10.8531236, 1e-6))
		Expect(analysis.Failed(points)).To(Equal(1))
	})

	It("marks a zero savings rate as a domain error", func() {
		points, err := analysis.Sweep(context.Background(), newSolver(growth.Externality, solver.ClosedForm), base, growth.SymS, []float64{0, 0.2}, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(points[0].Err).To(MatchError(growth.ErrDomain))
		Expect(points[1].K).To(BeNumerically("~", 5.383622007028104, 1e-9))
	})

	It("decreases the steady state as population growth rises", func() {
		ns := []float64{0, 0.01, 0.02, 0.05}
		for _, v := range []growth.Variant{growth.Basic, growth.Externality} {
			points, err := analysis.Sweep(context.Background(), newSolver(v, solver.ClosedForm), base, growth.SymN, ns, 1)
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < len(points); i++ {
				Expect(points[i].K).To(BeNumerically("<", points[i-1].K))
			}
		}
	})

	It("rejects an unknown parameter name", func() {
		_, err := analysis.Sweep(context.Background(), newSolver(growth.Basic, solver.ClosedForm), base, "gamma", []float64{1}, 1)
		Expect(err).To(MatchError(growth.ErrUnknownParam))
	})

	It("marks every point when the context is already canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		points, err := analysis.Sweep(ctx, newSolver(growth.Basic, solver.ClosedForm), base, growth.SymS, savingsRates, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(analysis.Failed(points)).To(Equal(len(savingsRates)))
		Expect(points[0].Err).To(MatchError(context.Canceled))
	})

	It("encodes failures as an error string", func() {
		points, _ := analysis.Sweep(context.Background(), newSolver(growth.Basic, solver.ClosedForm), base, growth.SymS, []float64{0, 0.2}, 1)
		data, err := json.Marshal(points)
		Expect(err).NotTo(HaveOccurred())

		var decoded []map[string]any
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded[0]).To(HaveKey("error"))
		Expect(decoded[0]).NotTo(HaveKey("k"))
		Expect(decoded[1]).To(HaveKeyWithValue("k", BeNumerically("~", 2.7456472, 1e-6)))
	})
})

var _ = Describe("Linspace", func() {
	It("includes both endpoints", func() {
		Expect(analysis.Linspace(0, 1, 5)).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
	})

	It("handles degenerate counts", func() {
		Expect(analysis.Linspace(0, 1, 0)).To(BeNil())
		Expect(analysis.Linspace(3, 9, 1)).To(Equal([]float64{3}))
	})
})
