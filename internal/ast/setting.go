// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the settings a `set` directive may change and the shape
// of each one's value.
package ast

// SettingKind identifies a setting.
type SettingKind int

const (
	AllowDuplicateRecipes SettingKind = iota
	DotenvLoad
	ExportSetting
	Fallback
	PositionalArguments
	WindowsPowerShell
	IgnoreComments
	Shell
	WindowsShell
	DotenvFilename
	DotenvPath
	Tempdir
)

// SettingClass is the shape of a setting's value.
type SettingClass int

const (
	BoolClass SettingClass = iota
	ShellClass
	StringClass
)

type settingInfo struct {
	keyword string
	class   SettingClass
}

var settings = map[SettingKind]settingInfo{
	AllowDuplicateRecipes: {"allow-duplicate-recipes", BoolClass},
	DotenvLoad:            {"dotenv-load", BoolClass},
	ExportSetting:         {"export", BoolClass},
	Fallback:              {"fallback", BoolClass},
	PositionalArguments:   {"positional-arguments", BoolClass},
	WindowsPowerShell:     {"windows-powershell", BoolClass},
	IgnoreComments:        {"ignore-comments", BoolClass},
	Shell:                 {"shell", ShellClass},
	WindowsShell:          {"windows-shell", ShellClass},
	DotenvFilename:        {"dotenv-filename", StringClass},
	DotenvPath:            {"dotenv-path", StringClass},
	Tempdir:               {"tempdir", StringClass},
}

var settingsByKeyword = func() map[string]SettingKind {
	m := make(map[string]SettingKind, len(settings))
	for kind, info := range settings {
		m[info.keyword] = kind
	}
	return m
}()

// Keyword returns the setting's name as written after `set`.
func (k SettingKind) Keyword() string {
	return settings[k].keyword
}

// Class returns the shape of the setting's value.
func (k SettingKind) Class() SettingClass {
	return settings[k].class
}

// Valid reports whether k is a known setting.
func (k SettingKind) Valid() bool {
	_, ok := settings[k]
	return ok
}

func (k SettingKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return k.Keyword()
}

// LookupSetting finds a setting by its keyword.
func LookupSetting(keyword string) (SettingKind, bool) {
	kind, ok := settingsByKeyword[keyword]
	return kind, ok
}

// Setting is the value of a Set. The concrete types are *BoolSetting,
// *ShellSetting and *StringSetting; SettingKind.Class says which one a given
// kind uses.
type Setting interface {
	SettingKind() SettingKind
	setting()
}

// BoolSetting is an on/off setting such as dotenv-load.
type BoolSetting struct {
	Kind  SettingKind
	Value bool
}

// ShellSetting is the shell or windows-shell command line. Command and
// Arguments are cooked string values.
type ShellSetting struct {
	Kind      SettingKind
	Command   string
	Arguments []string
}

// StringSetting is a setting holding a single cooked string, such as tempdir.
type StringSetting struct {
	Kind  SettingKind
	Value string
}

func (s *BoolSetting) SettingKind() SettingKind   { return s.Kind }
func (s *ShellSetting) SettingKind() SettingKind  { return s.Kind }
func (s *StringSetting) SettingKind() SettingKind { return s.Kind }

func (*BoolSetting) setting()   {}
func (*ShellSetting) setting()  {}
func (*StringSetting) setting() {}
