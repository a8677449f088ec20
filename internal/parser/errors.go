// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser

import (
	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/param"
	"github.com/holomush/disguise/pkg/errutil"
)

// Error codes for parse failures. Every parse error carries one of these
// codes, a message key and the arguments for that message.
const (
	CodeNoPermissionAtAll    = "NO_PERMISSION_AT_ALL"
	CodeEmptyInput           = "EMPTY_INPUT"
	CodeUnrecognizedCategory = "UNRECOGNIZED_CATEGORY"
	CodeUnsupportedCategory  = "UNSUPPORTED_CATEGORY"
	CodeForbidden            = "FORBIDDEN"
	CodeMissingArgument      = param.CodeMissingArgument
	CodeTypeMismatch         = param.CodeTypeMismatch
	CodeUnknownOption        = "UNKNOWN_OPTION"
	CodeNoSuchReference      = "NO_SUCH_REFERENCE"
)

// Message keys, rendered by hosts through the messages translation domain.
const (
	KeyNoPermission        = "parse.no_permission"
	KeyNoArgs              = "parse.no_args"
	KeyCategoryMissing     = "parse.category_missing"
	KeyCantDisguiseUnknown = "parse.cant_disguise_unknown"
	KeyCantLoad            = "parse.cant_load"
	KeyNoPermDisguise      = "parse.no_perm_disguise"
	KeyNoPermOption        = "parse.no_perm_option"
	KeyNoPermName          = "parse.no_perm_name"
	KeyNoPermParam         = "parse.no_perm_param"
	KeyNoPermRef           = "parse.no_perm_ref"
	KeyNoRef               = "parse.no_ref"
	KeySupplyPlayer        = "parse.supply_player"
	KeyExpectedReceived    = "parse.expected_received"
	KeyExpectedMissing     = "parse.expected_missing"
	KeyOptionNA            = "parse.option_na"
	KeyInternal            = "error.internal"
)

const (
	ctxKey  = errutil.MessageKey
	ctxArgs = errutil.MessageArgs
)

func parseError(code, key string, args ...any) error {
	if args == nil {
		args = []any{}
	}
	return oops.In("parser").
		Code(code).
		With(ctxKey, key).
		With(ctxArgs, args).
		Errorf("%s %v", key, args)
}

// ErrNoPermission creates an error for a sender without any disguise permission.
func ErrNoPermission() error {
	return parseError(CodeNoPermissionAtAll, KeyNoPermission)
}

// ErrEmptyInput creates an error for a command without arguments.
func ErrEmptyInput() error {
	return parseError(CodeEmptyInput, KeyNoArgs)
}

// ErrCategoryMissing creates an error for a name that matches no category.
func ErrCategoryMissing(name string) error {
	return parseError(CodeUnrecognizedCategory, KeyCategoryMissing, name)
}

// ErrUnknownKind creates an error for the unknown placeholder kind.
func ErrUnknownKind() error {
	return parseError(CodeUnrecognizedCategory, KeyCantDisguiseUnknown)
}

// ErrUnsupported creates an error for a kind that cannot be built.
func ErrUnsupported(category string) error {
	return parseError(CodeUnsupportedCategory, KeyCantLoad, category)
}

// ErrForbiddenCategory creates an error for a category the sender may not use.
func ErrForbiddenCategory(category string) error {
	return parseError(CodeForbidden, KeyNoPermDisguise, category)
}

// ErrForbiddenOption creates an error for an option combination the sender may not use.
func ErrForbiddenOption(option string) error {
	return parseError(CodeForbidden, KeyNoPermOption, option)
}

// ErrForbiddenName creates an error for a player name the sender may not use.
func ErrForbiddenName(name string) error {
	return parseError(CodeForbidden, KeyNoPermName, name)
}

// ErrForbiddenParam creates an error for a construction value the sender may not use.
func ErrForbiddenParam(value, category string) error {
	return parseError(CodeForbidden, KeyNoPermParam, value, category)
}

// ErrForbiddenRef creates an error for a sender without the clone permission.
func ErrForbiddenRef(ref string) error {
	return parseError(CodeForbidden, KeyNoPermRef, ref)
}

// ErrNoSuchReference creates an error for a clone reference nothing was saved under.
func ErrNoSuchReference(ref string) error {
	return parseError(CodeNoSuchReference, KeyNoRef, ref)
}

// ErrSupplyPlayer creates an error for a player disguise without a name.
func ErrSupplyPlayer() error {
	return parseError(CodeMissingArgument, KeySupplyPlayer)
}

// ErrExpectedMissing creates an error for an option that ran out of tokens.
func ErrExpectedMissing(expected, option string) error {
	return parseError(CodeMissingArgument, KeyExpectedMissing, expected, option)
}

// ErrExpectedReceived creates an error for a value of the wrong type.
func ErrExpectedReceived(expected, received, option string) error {
	return parseError(CodeTypeMismatch, KeyExpectedReceived, expected, received, option)
}

// ErrUnknownOption creates an error for an option name no setter answers to.
func ErrUnknownOption(option string) error {
	return parseError(CodeUnknownOption, KeyOptionNA, option)
}

// KindOf returns the error code of a parse error, or "" for other errors.
func KindOf(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

// KeyOf returns the message key of a parse error. Errors that are not parse
// errors map to the generic internal error message.
func KeyOf(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return KeyInternal
	}
	if key, ok := oopsErr.Context()[ctxKey].(string); ok && key != "" {
		return key
	}
	return KeyInternal
}

// ArgsOf returns the message arguments of a parse error.
func ArgsOf(err error) []any {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}
	args, _ := oopsErr.Context()[ctxArgs].([]any)
	return args
}

// IsParseError reports whether err is one of the parse failures above.
func IsParseError(err error) bool {
	switch KindOf(err) {
	case CodeNoPermissionAtAll, CodeEmptyInput, CodeUnrecognizedCategory, CodeUnsupportedCategory,
		CodeForbidden, CodeMissingArgument, CodeTypeMismatch, CodeUnknownOption, CodeNoSuchReference:
		return true
	}
	return false
}

// conversionError turns a value parser failure into a parse error naming the
// option. Parser-coded failures keep their kind; anything else is a type mismatch.
func conversionError(err error, info param.Info, first string, hasFirst bool, option string) error {
	expected := info.Description()
	if oopsErr, ok := oops.AsOops(err); ok {
		ctx := oopsErr.Context()
		if e, ok := ctx["expected"].(string); ok && e != "" {
			expected = e
		}
		switch KindOf(err) {
		case param.CodeMissingArgument:
			return ErrExpectedMissing(expected, option)
		case param.CodeTypeMismatch:
			if received, ok := ctx["received"].(string); ok {
				return ErrExpectedReceived(expected, received, option)
			}
		}
	}
	if !hasFirst {
		return ErrExpectedMissing(expected, option)
	}
	return ErrExpectedReceived(expected, first, option)
}
