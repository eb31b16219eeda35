package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/crittersim/internal/config"
)

var _ = Describe("DefaultScene", func() {
	It("fills in the standard solver tuning", func() {
		s := config.DefaultScene()
		Expect(s.Physics.Dt).To(BeNumerically(">", 0))
		Expect(s.Physics.Duration).To(BeNumerically(">", 0))
		Expect(s.Physics.AirDamping).To(Equal(config.DefaultAirDamping))
		Expect(s.Physics.SolverIterations).To(Equal(config.DefaultSolverIters))
		Expect(s.Physics.CollisionPasses).To(Equal(config.DefaultPasses))
		Expect(s.Playground.Width).To(BeNumerically(">", 2*s.Playground.Margin))
		Expect(s.Playground.ImpactDamping).To(BeNumerically("~", 0.5))
	})

	It("starts with no creatures", func() {
		s := config.DefaultScene()
		Expect(s.Nodes).To(BeEmpty())
		Expect(s.Constraints).To(BeEmpty())
		Expect(s.Limbs).To(BeEmpty())
	})
})

var _ = Describe("Presets", func() {
	It("lists every built-in scene in sorted order", func() {
		names := config.ListPresets()
		Expect(names).To(Equal([]string{"drifters", "jelly", "strider", "worm"}))
	})

	It("returns nil for an unknown name", func() {
		Expect(config.Preset("nonexistent")).To(BeNil())
	})

	It("hands out independent copies", func() {
		a := config.Preset("worm")
		a.Nodes[0].Radius = 99
		b := config.Preset("worm")
		Expect(b.Nodes[0].Radius).NotTo(Equal(99.0))
	})

	It("keeps constraint references inside the node list", func() {
		for _, name := range config.ListPresets() {
			s := config.Preset(name)
			for _, c := range s.Constraints {
				Expect(c.A).To(BeNumerically("<", len(s.Nodes)), name)
				Expect(c.B).To(BeNumerically("<", len(s.Nodes)), name)
				Expect(c.A).ToNot(Equal(c.B), name)
			}
			for _, l := range s.Limbs {
				Expect(l.Body).To(BeNumerically("<", len(s.Nodes)), name)
				for _, j := range l.Joints {
					Expect(s.Nodes[j].Kind).To(Equal("limb"), name)
				}
			}
		}
	})
})

var _ = Describe("Load and Save", func() {
	It("round-trips a scene through YAML", func() {
		path := filepath.Join(GinkgoT().TempDir(), "scene.yaml")
		original := config.Preset("strider")
		Expect(config.Save(path, original)).To(Succeed())

		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Name).To(Equal("strider"))
		Expect(loaded.Nodes).To(HaveLen(len(original.Nodes)))
		Expect(loaded.Limbs).To(HaveLen(len(original.Limbs)))
		Expect(loaded.Limbs[0].Flip).To(Equal(original.Limbs[0].Flip))
	})

	It("merges a partial file over the defaults", func() {
		path := filepath.Join(GinkgoT().TempDir(), "partial.yaml")
		partial := []byte("name: tiny\nnodes:\n  - {x: 1, y: 2}\n")
		Expect(os.WriteFile(path, partial, 0644)).To(Succeed())

		s, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Name).To(Equal("tiny"))
		Expect(s.Physics.AirDamping).To(Equal(config.DefaultAirDamping))
		Expect(s.Nodes).To(HaveLen(1))
	})

	It("rejects malformed YAML", func() {
		path := filepath.Join(GinkgoT().TempDir(), "broken.yaml")
		Expect(os.WriteFile(path, []byte("nodes: {not a list"), 0644)).To(Succeed())
		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("fails on a missing file", func() {
		_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "absent.yaml"))
		Expect(err).To(HaveOccurred())
	})
})
