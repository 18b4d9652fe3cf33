// Package config holds the runtime options that scripts change with the
// set command, and resolves the script, cache and log locations.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/marcus/sidetree/internal/styles"
)

// Options are the settings a script can change with "set".
type Options struct {
	ShowHidden     bool
	OpenCmd        string
	QuitOnOpen     bool
	FileIcons      bool
	IconStyle      styles.Style
	DirNameStyle   styles.Style
	FileNameStyle  styles.Style
	HighlightStyle styles.Style
}

// UnknownOptionError is returned for an option name that does not exist.
type UnknownOptionError struct {
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q", e.Name)
}

// Default returns the default options.
func Default() *Options {
	return &Options{
		OpenCmd:        Editor() + ` "$1"`,
		IconStyle:      styles.MustParse(styles.DefaultIconStyle),
		DirNameStyle:   styles.MustParse(styles.DefaultDirNameStyle),
		FileNameStyle:  styles.MustParse(styles.DefaultFileNameStyle),
		HighlightStyle: styles.MustParse(styles.DefaultHighlightStyle),
	}
}

// Editor returns the user's editor from $EDITOR or $VISUAL, or vim.
func Editor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	return "vim"
}

type option struct {
	get func(o *Options) string
	set func(o *Options, value string) error
}

func boolOption(field func(o *Options) *bool) option {
	return option{
		get: func(o *Options) string { return strconv.FormatBool(*field(o)) },
		set: func(o *Options, value string) error {
			// Exactly "true" or "false".
			switch value {
			case "true":
				*field(o) = true
			case "false":
				*field(o) = false
			default:
				return fmt.Errorf("invalid boolean %q (want true or false)", value)
			}
			return nil
		},
	}
}

func stringOption(field func(o *Options) *string) option {
	return option{
		get: func(o *Options) string { return *field(o) },
		set: func(o *Options, value string) error {
			*field(o) = value
			return nil
		},
	}
}

func styleOption(field func(o *Options) *styles.Style) option {
	return option{
		get: func(o *Options) string { return field(o).String() },
		set: func(o *Options, value string) error {
			st, err := styles.Parse(value)
			if err != nil {
				return err
			}
			*field(o) = st
			return nil
		},
	}
}

var options = map[string]option{
	"show_hidden":     boolOption(func(o *Options) *bool { return &o.ShowHidden }),
	"open_cmd":        stringOption(func(o *Options) *string { return &o.OpenCmd }),
	"quit_on_open":    boolOption(func(o *Options) *bool { return &o.QuitOnOpen }),
	"file_icons":      boolOption(func(o *Options) *bool { return &o.FileIcons }),
	"icon_style":      styleOption(func(o *Options) *styles.Style { return &o.IconStyle }),
	"dir_name_style":  styleOption(func(o *Options) *styles.Style { return &o.DirNameStyle }),
	"file_name_style": styleOption(func(o *Options) *styles.Style { return &o.FileNameStyle }),
	"highlight_style": styleOption(func(o *Options) *styles.Style { return &o.HighlightStyle }),
}

// OptionNames returns every option name in sorted order.
func OptionNames() []string {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetOpt sets the named option from its string form. On error the option
// keeps its previous value.
func (o *Options) SetOpt(name, value string) error {
	opt, ok := options[name]
	if !ok {
		return &UnknownOptionError{Name: name}
	}
	if err := opt.set(o, value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// GetOpt returns the string form of the named option.
func (o *Options) GetOpt(name string) (string, error) {
	opt, ok := options[name]
	if !ok {
		return "", &UnknownOptionError{Name: name}
	}
	return opt.get(o), nil
}
