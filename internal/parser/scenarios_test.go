// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/disguise/internal/access"
	"github.com/holomush/disguise/internal/clone"
	"github.com/holomush/disguise/internal/parser"
)

var _ = Describe("Parsing disguise commands", func() {
	var (
		ctx     context.Context
		p       *parser.Parser
		service *access.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		p, err = parser.New(parser.Deps{Clones: clone.NewStore(4), Logger: discard})
		Expect(err).NotTo(HaveOccurred())

		policy, err := access.Compile(
			map[string][]string{
				"builder": {"disguise.*.*", "disguise.clone", "!disguise.options.*.fallingblock.oak_log"},
			},
			map[string][]string{"bob": {"builder"}},
		)
		Expect(err).NotTo(HaveOccurred())
		service = access.NewService(policy)
	})

	run := func(tokens ...string) *parser.Session {
		return p.NewSession("bob", namespace, tokens, service.View("bob", namespace))
	}

	Describe("a mob with a life stage and an option", func() {
		It("applies both options and consumes every token", func() {
			s := run("cow", "baby", "sethealth", "5")
			d, err := s.Parse(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(d.Category().Name()).To(Equal("cow"))
			Expect(d.IsAdult()).To(BeFalse())
			health, ok := d.Watcher().Properties().Get("sethealth")
			Expect(ok).To(BeTrue())
			Expect(health).To(Equal(5.0))
			Expect(s.Used()).To(Equal([]string{"setbaby", "sethealth"}))
			Expect(s.Pos()).To(Equal(4))
		})
	})

	Describe("a player without a name", func() {
		It("fails with a missing argument", func() {
			d, err := run("player").Parse(ctx)
			Expect(d).To(BeNil())
			Expect(parser.KindOf(err)).To(Equal(parser.CodeMissingArgument))
			Expect(parser.KeyOf(err)).To(Equal(parser.KeySupplyPlayer))
		})
	})

	Describe("a denied block material", func() {
		It("is forbidden and names the material", func() {
			_, err := run("falling_block", "oak_log").Parse(ctx)
			Expect(parser.KindOf(err)).To(Equal(parser.CodeForbidden))
			Expect(parser.ArgsOf(err)).To(ContainElement("oak_log"))
		})

		It("still allows other materials", func() {
			d, err := run("falling_block", "birch_log").Parse(ctx)
			Expect(err).NotTo(HaveOccurred())
			material, _ := d.Material()
			Expect(material).To(Equal("birch_log"))
		})
	})

	Describe("clone references", func() {
		It("fails for a name nothing was saved under", func() {
			_, err := run("@myclone").Parse(ctx)
			Expect(parser.KindOf(err)).To(Equal(parser.CodeNoSuchReference))
			Expect(parser.ArgsOf(err)).To(Equal([]any{"@myclone"}))
		})

		It("continues from a saved disguise", func() {
			saved, err := run("pig", "setsaddled").Parse(ctx)
			Expect(err).NotTo(HaveOccurred())
			_, err = p.Clones().Save("myclone", saved)
			Expect(err).NotTo(HaveOccurred())

			s := run("@MyClone", "setglowing")
			d, err := s.Parse(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Category().Name()).To(Equal("pig"))
			Expect(s.Used()).To(Equal([]string{"setglowing"}))
		})
	})

	Describe("an option the category does not have", func() {
		It("fails naming the option as typed", func() {
			_, err := run("cow", "flyhigh").Parse(ctx)
			Expect(parser.KindOf(err)).To(Equal(parser.CodeUnknownOption))
			Expect(parser.ArgsOf(err)).To(Equal([]any{"flyhigh"}))
		})
	})

	Describe("a role change between parses", func() {
		It("applies to the next view taken", func() {
			Expect(service.AssignRole("carol", "builder")).To(Succeed())
			d, err := p.ParseDisguise(ctx, "carol", namespace, []string{"zombie", "baby"}, service.View("carol", namespace))
			Expect(err).NotTo(HaveOccurred())
			Expect(d.IsAdult()).To(BeFalse())

			Expect(service.RevokeRole("carol")).To(Succeed())
			_, err = p.ParseDisguise(ctx, "carol", namespace, []string{"zombie"}, service.View("carol", namespace))
			Expect(parser.KindOf(err)).To(Equal(parser.CodeNoPermissionAtAll))
		})
	})
})
