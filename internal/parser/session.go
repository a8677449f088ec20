// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/holomush/disguise/internal/access"
	"github.com/holomush/disguise/internal/clone"
	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/param"
	"github.com/holomush/disguise/internal/property"
	"github.com/holomush/disguise/internal/token"
	"github.com/holomush/disguise/internal/translate"
)

// Life stage tokens of mob construction clauses, as canonical option names.
const (
	stageBaby   = "baby"
	stageAdult  = "adult"
	stageOption = "setbaby"
)

// Session is the state of one parse call. Nothing in it is shared with
// other calls.
type Session struct {
	p         *Parser
	sender    string
	namespace string
	view      *access.View
	tbl       *translate.Table
	cursor    *token.Cursor
	used      *UsedSet
	cat       disguise.Category
	table     *property.Table

	builtinsOnly bool
}

// NewSession prepares a parse. The translation table is snapshotted here
// and used for the whole call.
func (p *Parser) NewSession(sender, namespace string, tokens []string, view *access.View) *Session {
	return &Session{
		p:         p,
		sender:    sender,
		namespace: namespace,
		view:      view,
		tbl:       p.translations.Snapshot(),
		cursor:    token.New(tokens),
		used:      newUsedSet(),
	}
}

// Used returns the options applied so far, in order.
func (s *Session) Used() []string { return s.used.List() }

// Pos returns the number of tokens consumed so far.
func (s *Session) Pos() int { return s.cursor.Pos() }

// Category returns the resolved category; it is invalid until resolution succeeds.
func (s *Session) Category() disguise.Category { return s.cat }

// Parse runs the parse. On error no descriptor is returned.
func (s *Session) Parse(ctx context.Context) (d *disguise.Descriptor, err error) {
	start := time.Now()
	defer func() {
		category := ""
		if s.cat.Valid() {
			category = s.cat.Name()
		}
		RecordParse(category, err)
		RecordParseDuration(time.Since(start))
		s.log(ctx, category, err)
	}()

	if s.view == nil || !s.view.HasPermissions() {
		return nil, ErrNoPermission()
	}
	first, ok := s.cursor.Next()
	if !ok {
		return nil, ErrEmptyInput()
	}

	d, err = s.resolveCategory(first)
	if err != nil {
		return nil, err
	}
	if !s.view.AllowsCategory(s.cat) {
		return nil, ErrForbiddenCategory(s.cat.Name())
	}
	table, ok := s.p.props.Table(s.cat.Kind().Name)
	if !ok {
		return nil, ErrUnsupported(s.cat.Name())
	}
	s.table = table

	if d == nil {
		if d, err = s.construct(); err != nil {
			return nil, err
		}
	}
	if err := s.applyOptions(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Session) log(ctx context.Context, category string, err error) {
	logger := s.p.logger
	switch {
	case err == nil:
		logger.DebugContext(ctx, "disguise parsed",
			"sender", s.sender,
			"namespace", s.namespace,
			"category", category,
			"options", s.used.List())
	case KindOf(err) == CodeForbidden:
		logger.InfoContext(ctx, "disguise permission denied",
			"sender", s.sender,
			"namespace", s.namespace,
			"category", category,
			"key", KeyOf(err),
			"args", ArgsOf(err))
	default:
		logger.DebugContext(ctx, "disguise rejected",
			"sender", s.sender,
			"namespace", s.namespace,
			"code", KindOf(err),
			"key", KeyOf(err))
	}
}

// resolveCategory handles the first token. A clone reference or custom
// template yields the descriptor to continue from; builtin kinds yield nil.
func (s *Session) resolveCategory(first string) (*disguise.Descriptor, error) {
	if clone.IsRef(first) && !s.builtinsOnly {
		if !s.view.CanClone() {
			return nil, ErrForbiddenRef(first)
		}
		var d *disguise.Descriptor
		if s.p.clones != nil {
			d = s.p.clones.Get(first)
		}
		if d == nil {
			return nil, ErrNoSuchReference(first)
		}
		d.Inherit(first)
		s.cat = d.Category()
		return d, nil
	}

	cat, template, ok := s.p.resolve(s.tbl, first, !s.builtinsOnly)
	if !ok {
		return nil, ErrCategoryMissing(first)
	}
	if cat.IsUnknown() {
		return nil, ErrUnknownKind()
	}
	if !cat.Kind().Supported() {
		return nil, ErrUnsupported(cat.Name())
	}
	s.cat = cat
	return template, nil
}

// use records an option and re-checks the whole used set against the view.
func (s *Session) use(id string) error {
	s.used.Add(id)
	if !s.view.AllowsOptions(s.cat, s.used.List()) {
		return ErrForbiddenOption(s.tbl.Display(translate.DomainOptions, id))
	}
	return nil
}

// setter finds the setter of an option accepting the given type.
func (s *Session) setter(id string, typ param.Type) (property.Setter, bool) {
	for _, c := range s.table.Candidates(id) {
		if c.Type == typ {
			return c, true
		}
	}
	return property.Setter{}, false
}

func (s *Session) construct() (*disguise.Descriptor, error) {
	k := s.cat.Kind()
	switch {
	case k.Class == disguise.ClassPlayer:
		return s.constructPlayer()
	case k.Class == disguise.ClassMob:
		return s.constructMob()
	case k.Clause == disguise.ClauseMaterial:
		return s.constructMaterial()
	case k.Clause == disguise.ClauseNumericID:
		return s.constructNumericID()
	default:
		return disguise.New(s.cat)
	}
}

func (s *Session) literals() map[string]bool {
	if !s.cat.Kind().Literals {
		return nil
	}
	return s.view.Literals(s.cat)
}

func (s *Session) constructPlayer() (*disguise.Descriptor, error) {
	raw, ok := s.cursor.Next()
	if !ok {
		return nil, ErrSupplyPlayer()
	}
	if !access.HasLiteral(s.literals(), strings.ToLower(raw)) {
		return nil, ErrForbiddenName(raw)
	}
	name := disguise.TranslateColorCodes('&', disguise.UnescapeName(raw))
	return disguise.NewPlayer(s.cat, name)
}

func (s *Session) constructMob() (*disguise.Descriptor, error) {
	d, err := disguise.New(s.cat)
	if err != nil {
		return nil, err
	}
	tok, ok := s.cursor.Peek()
	if !ok {
		return d, nil
	}
	// only the active locale's words name a life stage
	baby := strings.EqualFold(tok, s.tbl.Display(translate.DomainOptions, stageBaby))
	if !baby && !strings.EqualFold(tok, s.tbl.Display(translate.DomainOptions, stageAdult)) {
		return d, nil
	}

	if err := s.use(stageOption); err != nil {
		return nil, err
	}
	s.cursor.Skip(1)
	if setter, ok := s.setter(stageOption, param.Boolean); ok {
		setter.Apply(d, baby)
	}
	return d, nil
}

// constructMaterial reads an optional material. An unresolvable token is
// left for the option loop and the default material is used.
func (s *Session) constructMaterial() (*disguise.Descriptor, error) {
	d, err := disguise.New(s.cat)
	if err != nil {
		return nil, err
	}
	k := s.cat.Kind()
	tok, ok := s.cursor.Peek()
	material, resolved := "", false
	if ok {
		material, resolved = s.p.catalog.ResolveMaterial(tok)
	}
	if !resolved {
		d.SetDefault(disguise.OwnerWatcher, k.ClauseOption, disguise.Item{Material: s.p.catalog.DefaultMaterial, Amount: 1})
		return d, nil
	}

	if !access.HasLiteral(s.literals(), material) {
		return nil, ErrForbiddenParam(material, s.cat.Readable())
	}
	if err := s.use(k.ClauseOption); err != nil {
		return nil, err
	}
	s.cursor.Skip(1)
	if setter, ok := s.setter(k.ClauseOption, param.ItemType); ok {
		setter.Apply(d, disguise.Item{Material: material, Amount: 1})
	}
	return d, nil
}

// constructNumericID reads an optional integer id.
func (s *Session) constructNumericID() (*disguise.Descriptor, error) {
	d, err := disguise.New(s.cat)
	if err != nil {
		return nil, err
	}
	k := s.cat.Kind()
	tok, ok := s.cursor.Peek()
	if !ok {
		return d, nil
	}
	id, err := strconv.Atoi(tok)
	if err != nil {
		return d, nil
	}

	if !access.HasLiteral(s.literals(), strconv.Itoa(id)) {
		return nil, ErrForbiddenParam(tok, s.cat.Readable())
	}
	if err := s.use(k.ClauseOption); err != nil {
		return nil, err
	}
	s.cursor.Skip(1)
	if setter, ok := s.setter(k.ClauseOption, param.Integer); ok {
		setter.Apply(d, id)
	}
	return d, nil
}
