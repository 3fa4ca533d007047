package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/growthlab/internal/analysis"
	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/solver"
)

var _ = Describe("TransitionCurve", func() {
	var model growth.Model

	BeforeEach(func() {
		var err error
		model, err = growth.New(growth.Basic, growth.Params{B: 10, S: 0.2, N: 0.02, Alpha: 1.0 / 3.0, Delta: 1})
		Expect(err).NotTo(HaveOccurred())
	})

	It("samples the default display domain", func() {
		curve, err := analysis.TransitionCurve(model, analysis.DefaultKMin, analysis.DefaultKMax, analysis.DefaultPoints)
		Expect(err).NotTo(HaveOccurred())
		Expect(curve).To(HaveLen(analysis.DefaultPoints))
		Expect(curve[0].K).To(Equal(0.0))
		Expect(curve[len(curve)-1].K).To(Equal(15.0))

		for _, p := range curve {
			next, y, _ := model.Step(p.K)
			Expect(p.Next).To(Equal(next))
			Expect(p.Y).To(Equal(y))
		}
	})

	It("crosses the 45 degree line near the steady state", func() {
		curve, err := analysis.TransitionCurve(model, 0.1, 15, 150)
		Expect(err).NotTo(HaveOccurred())

		idx := analysis.Crossings(curve)
		Expect(idx).To(HaveLen(1))
		Expect(curve[idx[0]].K).To(BeNumerically("~", 2.7456, 0.15))
	})

	It("rejects invalid domains", func() {
		_, err := analysis.TransitionCurve(model, -1, 15, 10)
		Expect(err).To(MatchError(growth.ErrDomain))

		_, err = analysis.TransitionCurve(model, 5, 5, 10)
		Expect(err).To(HaveOccurred())

		_, err = analysis.TransitionCurve(model, 0, 15, 1)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Path", func() {
	It("converges to the steady state from below and above", func() {
		for _, v := range []growth.Variant{growth.Basic, growth.Externality} {
			p := growth.Params{B: 10, S: 0.2, N: 0.02, Alpha: 1.0 / 3.0, Delta: 1, Phi: 0.4}
			model, err := growth.New(v, p)
			Expect(err).NotTo(HaveOccurred())
			ss, err := newSolver(v, solver.ClosedForm).Solve(p)
			Expect(err).NotTo(HaveOccurred())

			for _, k0 := range []float64{0.5, 20} {
				path, err := analysis.Path(model, k0, 200)
				Expect(err).NotTo(HaveOccurred())
				Expect(path).To(HaveLen(201))
				Expect(path[0].K).To(Equal(k0))
				Expect(path[200].K).To(BeNumerically("~", ss.K, 1e-8))
				Expect(analysis.PeriodsToConverge(path, ss.K, 1e-3)).To(BeNumerically(">", 0))
			}
		}
	})

	It("reports productivity", func() {
		p := growth.Params{B: 10, S: 0.2, N: 0.02, Alpha: 1.0 / 3.0, Delta: 1, Phi: 0.4}
		basic, _ := growth.New(growth.Basic, p)
		ext, _ := growth.New(growth.Externality, p)

		bp, err := analysis.Path(basic, 8, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(bp[0].A).To(Equal(10.0))

		ep, err := analysis.Path(ext, 8, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ep[0].A).To(BeNumerically(">", 10.0))
	})

	It("never converges from zero capital", func() {
		model, _ := growth.New(growth.Basic, growth.Params{B: 10, S: 0.2, N: 0.02, Alpha: 1.0 / 3.0, Delta: 1})
		path, err := analysis.Path(model, 0, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(analysis.PeriodsToConverge(path, 2.7456, 1e-3)).To(Equal(-1))
	})

	It("rejects negative capital and period counts", func() {
		model, _ := growth.New(growth.Basic, growth.Params{B: 10, S: 0.2, N: 0.02, Alpha: 1.0 / 3.0, Delta: 1})
		_, err := analysis.Path(model, -1, 10)
		Expect(err).To(MatchError(growth.ErrDomain))
		_, err = analysis.Path(model, 1, -1)
		Expect(err).To(HaveOccurred())
	})
})
