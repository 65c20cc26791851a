package bubble_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bubblenav/internal/bubble"
)

type sprite struct {
	label, color string
	x, y         float64
}

type recorder struct {
	sprites []sprite
	updates int
	clears  int
}

func (r *recorder) Create(label, color string, x, y float64) bubble.Handle {
	r.sprites = append(r.sprites, sprite{label, color, x, y})
	return bubble.Handle(len(r.sprites) - 1)
}

func (r *recorder) Update(h bubble.Handle, x, y float64) {
	r.sprites[h].x, r.sprites[h].y = x, y
	r.updates++
}

func (r *recorder) Clear() {
	r.sprites = r.sprites[:0]
	r.clears++
}

var _ = Describe("World", func() {
	var (
		vp     bubble.Viewport
		params bubble.Params
		world  *bubble.World
	)

	BeforeEach(func() {
		vp = bubble.Viewport{Width: 1280, Height: 720}
		params = bubble.DefaultParams()
		var err error
		world, err = bubble.NewWorld(bubble.DefaultLabels, "music", vp, params, 42)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("setup", func() {
		It("excludes the current page from the bodies", func() {
			Expect(world.Labels()).To(Equal([]string{"contact", "info", "puzzles", "projects", "opponent", "resume"}))
			Expect(world.Len()).To(Equal(6))
			for i, b := range world.Bodies() {
				Expect(b.Label).To(Equal(world.Labels()[i]))
			}
		})

		It("starts every body moving upward inside the placement band", func() {
			for _, b := range world.Bodies() {
				Expect(b.Stopped).To(BeFalse())
				Expect(b.VX).To(BeNumerically(">=", -1))
				Expect(b.VX).To(BeNumerically("<", 1))
				Expect(b.VY).To(BeNumerically(">=", -4))
				Expect(b.VY).To(BeNumerically("<", -2))
				Expect(b.Y).To(BeNumerically(">=", vp.Height-params.Radius-params.Band))
				Expect(b.Y).To(BeNumerically("<=", vp.Height-params.Radius))
			}
		})

		It("keeps the initial bodies apart", func() {
			bodies := world.Bodies()
			for i := range bodies {
				for j := i + 1; j < len(bodies); j++ {
					Expect(bodies[i].Dist(bodies[j])).To(BeNumerically(">=", 2*params.Radius))
				}
			}
		})

		It("cycles the palette by index", func() {
			params.Palette = []string{"red", "blue"}
			w, err := bubble.NewWorld([]string{"a", "b", "c"}, "", vp, params, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Body(0).Color).To(Equal("red"))
			Expect(w.Body(1).Color).To(Equal("blue"))
			Expect(w.Body(2).Color).To(Equal("red"))
		})

		It("is reproducible for a given seed", func() {
			other, err := bubble.NewWorld(bubble.DefaultLabels, "music", vp, params, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(other.Bodies()).To(Equal(world.Bodies()))
		})

		DescribeTable("rejects bad input",
			func(labels []string, v bubble.Viewport, mutate func(*bubble.Params), want error) {
				p := bubble.DefaultParams()
				if mutate != nil {
					mutate(&p)
				}
				_, err := bubble.NewWorld(labels, "", v, p, 1)
				Expect(errors.Is(err, want)).To(BeTrue(), "got %v", err)
			},
			Entry("no labels", nil, bubble.Viewport{Width: 800, Height: 600}, nil, bubble.ErrNoLabels),
			Entry("empty viewport", []string{"a"}, bubble.Viewport{}, nil, bubble.ErrEmptyViewport),
			Entry("tiny viewport", []string{"a"}, bubble.Viewport{Width: 50, Height: 600}, nil, bubble.ErrViewportTooSmall),
			Entry("zero radius", []string{"a"}, bubble.Viewport{Width: 800, Height: 600}, func(p *bubble.Params) { p.Radius = 0 }, bubble.ErrInvalidRadius),
			Entry("empty palette", []string{"a"}, bubble.Viewport{Width: 800, Height: 600}, func(p *bubble.Params) { p.Palette = nil }, bubble.ErrInvalidParams),
		)
	})

	Describe("ticking", func() {
		It("shares one radius and stays inside the viewport while bodies are apart", func() {
			w, err := bubble.NewWorld([]string{"solo"}, "", vp, params, 9)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 1000; i++ {
				w.Tick()
				b := w.Body(0)
				Expect(w.Radius()).To(Equal(bubble.DefaultRadius))
				Expect(b.X).To(BeNumerically(">=", w.Radius()))
				Expect(b.X).To(BeNumerically("<=", vp.Width-w.Radius()))
				Expect(b.Y).To(BeNumerically(">=", w.Radius()))
				Expect(b.Y).To(BeNumerically("<=", vp.Height-w.Radius()))
			}
		})

		It("never moves a body again once it froze", func() {
			frozen := map[int]bubble.Body{}
			for tick := 0; tick < 2000; tick++ {
				world.Tick()
				for i, b := range world.Bodies() {
					if prev, ok := frozen[i]; ok {
						Expect(b).To(Equal(prev), "body %d changed after freezing at tick %d", i, tick)
						continue
					}
					if b.Stopped {
						Expect(b.Y).To(Equal(params.Radius))
						Expect(b.VX).To(BeZero())
						Expect(b.VY).To(BeZero())
						frozen[i] = b
					}
				}
			}
		})
	})

	Describe("rendering", func() {
		var r *recorder

		BeforeEach(func() {
			r = &recorder{}
			world.SetRenderer(r)
		})

		It("creates one visual per body", func() {
			Expect(r.sprites).To(HaveLen(world.Len()))
			for i, b := range world.Bodies() {
				Expect(r.sprites[b.Handle].label).To(Equal(b.Label))
				Expect(r.sprites[b.Handle].color).To(Equal(world.Body(i).Color))
			}
		})

		It("mirrors positions after each tick", func() {
			world.Tick()
			for _, b := range world.Bodies() {
				s := r.sprites[b.Handle]
				Expect(s.x).To(Equal(b.X))
				Expect(s.y).To(Equal(b.Y))
			}
			Expect(r.updates).To(Equal(world.Len()))
		})

		It("clears and recreates visuals on resize", func() {
			clears := r.clears
			world.Resize(bubble.Viewport{Width: 900, Height: 500})
			Expect(r.clears).To(Equal(clears + 1))
			Expect(r.sprites).To(HaveLen(world.Len()))
			Expect(world.Ticks()).To(BeZero())
			for _, b := range world.Bodies() {
				Expect(b.Stopped).To(BeFalse())
				Expect(b.Y).To(BeNumerically("<=", 500-params.Radius))
			}
		})

		It("rebuilds visuals when bodies are replaced", func() {
			world.SetBodies([]bubble.Body{
				{Label: "contact", Color: "red", X: 100, Y: 200},
				{Label: "info", Color: "blue", X: 300, Y: 400},
			})
			Expect(world.Len()).To(Equal(2))
			Expect(r.sprites).To(HaveLen(2))
			Expect(r.sprites[world.Body(1).Handle]).To(Equal(sprite{"info", "blue", 300, 400}))
		})
	})

	Describe("navigation", func() {
		It("rebuilds the set for the new page", func() {
			world.Navigate("contact")
			Expect(world.CurrentPage()).To(Equal("contact"))
			Expect(world.Labels()).NotTo(ContainElement("contact"))
			Expect(world.Labels()).To(ContainElement("music"))
			Expect(world.Len()).To(Equal(6))
		})

		It("finds the body under a point", func() {
			b := world.Body(2)
			Expect(world.HitTest(b.X, b.Y)).To(Equal(2))
			Expect(world.HitTest(b.X+params.Radius-1, b.Y)).To(Equal(2))
			Expect(world.HitTest(-500, -500)).To(Equal(-1))
		})
	})
})
