package tacgen_test

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/raymyers/ralph-tac/pkg/tac"
	"github.com/raymyers/ralph-tac/pkg/tacgen"
)

var programs = []string{
	"x = 5\ny = 10\nz = x + y * 2\nresult = (x + y) * (z - 3)",
	"while (i < n) { if (i % 2 == 0) { e = e + 1 } else { o = o + 1 }; i = i + 1 }",
	"for (i = 0; i < n; i = i + 1) { for (j = 0; j < i; j = j + 1) { s = s + i * j } }",
	"if (a) { x = 1 } else if (b) { x = 2 } else { x = -x }",
	"ok = !(a < b) && (c >= -d) || e != f",
	"for (;;) { while (k) { k = k - 1 } }",
	"if (a > b) { m = a }\nif (m < 0) { m = -m } else { m = m * 2 }",
}

var binaryOps = []string{"+", "-", "*", "/", "%", "<", ">", "<=", ">=", "==", "!=", "&&", "||"}
var unaryOps = []string{"-", "+", "!"}

// genExpr builds a random expression and returns it with its operator count.
func genExpr(r *rand.Rand, depth int) (string, int) {
	if depth == 0 || r.IntN(4) == 0 {
		if r.IntN(2) == 0 {
			return string(rune('a' + r.IntN(4))), 0
		}
		return strconv.Itoa(r.IntN(100)), 0
	}
	if r.IntN(4) == 0 {
		sub, n := genExpr(r, depth-1)
		return unaryOps[r.IntN(len(unaryOps))] + "(" + sub + ")", n + 1
	}
	l, ln := genExpr(r, depth-1)
	rt, rn := genExpr(r, depth-1)
	op := binaryOps[r.IntN(len(binaryOps))]
	return fmt.Sprintf("(%s %s %s)", l, op, rt), ln + rn + 1
}

func translate(src string) *tacgen.Translator {
	tr := tacgen.New(tacgen.DefaultOptions())
	errs := tr.TranslateSource(src)
	Expect(errs).To(BeEmpty())
	return tr
}

func numbered(name, prefix string) int {
	Expect(name).To(HavePrefix(prefix))
	n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	Expect(err).NotTo(HaveOccurred())
	return n
}

var _ = Describe("Translator properties", func() {
	var r *rand.Rand

	BeforeEach(func() {
		r = rand.New(rand.NewPCG(7, 42))
	})

	It("defines temporaries once, in increasing order, before any use", func() {
		for _, src := range programs {
			prog := translate(src).Program()
			defined := map[string]bool{}
			last := 0
			for _, inst := range prog.Code {
				for _, u := range tac.Uses(inst) {
					if u.Kind == tac.RefTemp {
						Expect(defined).To(HaveKey(u.Name), "%q used before definition in %q", u.Name, src)
					}
				}
				if d, ok := tac.Dest(inst); ok && d.Kind == tac.RefTemp {
					Expect(defined).NotTo(HaveKey(d.Name))
					n := numbered(d.Name, "t")
					Expect(n).To(Equal(last+1), "temporaries must be allocated without gaps")
					last = n
					defined[d.Name] = true
				}
			}
		}
	})

	It("emits every allocated label exactly once and only jumps to emitted labels", func() {
		for _, src := range programs {
			prog := translate(src).Program()
			labels := prog.Labels()
			seen := map[int]bool{}
			for _, l := range labels {
				n := numbered(l, "L")
				Expect(seen).NotTo(HaveKey(n), "label %s emitted twice in %q", l, src)
				seen[n] = true
			}
			for i := 1; i <= len(labels); i++ {
				Expect(seen).To(HaveKey(i), "label L%d allocated but not emitted in %q", i, src)
			}
			for _, target := range prog.ReferencedLabels() {
				Expect(labels).To(ContainElement(target), "jump to missing label in %q", src)
			}
		}
	})

	It("is deterministic across fresh translators", func() {
		for _, src := range programs {
			Expect(translate(src).Lines()).To(Equal(translate(src).Lines()))
		}
	})

	It("emits one instruction per operator", func() {
		for i := 0; i < 200; i++ {
			src, ops := genExpr(r, 4)
			tr := tacgen.New(tacgen.DefaultOptions())
			_, err := tr.TranslateExpr(src, "")
			Expect(err).NotTo(HaveOccurred(), src)
			Expect(tr.Program().Len()).To(Equal(ops), src)
		}
	})

	It("writes the last operator straight into the assignment target", func() {
		for i := 0; i < 200; i++ {
			src, ops := genExpr(r, 4)
			tr := tacgen.New(tacgen.DefaultOptions())
			Expect(tr.Translate("v = " + src)).To(Succeed(), src)

			code := tr.Program().Code
			Expect(code).To(HaveLen(max(ops, 1)), src)
			dest, ok := tac.Dest(code[len(code)-1])
			Expect(ok).To(BeTrue())
			Expect(dest).To(Equal(tac.Var("v")))
			for _, inst := range code[:len(code)-1] {
				d, _ := tac.Dest(inst)
				Expect(d.Kind).To(Equal(tac.RefTemp), src)
			}
		}
	})

	It("keeps counters running across failed statements", func() {
		tr := tacgen.New(tacgen.DefaultOptions())
		Expect(tr.Translate("while (a < b) { c = (d }")).NotTo(Succeed())
		Expect(tr.Program().Len()).To(BeZero())
		Expect(tr.Translate("while (a < b) { c = d }")).To(Succeed())
		Expect(tr.Lines()).To(Equal([]string{
			"L3:", "t2 = a < b", "ifFalse t2 goto L4", "c = d", "goto L3", "L4:",
		}))
	})
})
