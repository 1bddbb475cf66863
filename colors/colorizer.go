package colors

import (
	"regexp"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/vladimir-rom/chartprops/cmd/config"
)

type Colorizer struct {
	defaultColors
	Enabled         bool
	def             StrColorizer
	cfg             config.Fields
	colorBuilder    ColorBuilder
	fieldColorizers map[string]StrColorizer
}

type ColorBuilder func(value ...color.Attribute) StrColorizer

type StrColorizer func(s string) string

type defaultColors struct {
	Key       StrColorizer
	Type      StrColorizer
	Default   StrColorizer
	Highlight StrColorizer
}

func newDefaultColors(cb ColorBuilder) *defaultColors {
	return &defaultColors{
		Key:       cb(90),
		Type:      cb(color.FgCyan),
		Default:   cb(color.FgYellow),
		Highlight: cb(color.FgRed, color.Bold),
	}
}

func NewColorizer(cfg config.Fields, colorBuilder ColorBuilder) (*Colorizer, error) {
	res := &Colorizer{
		Enabled:       !color.NoColor,
		defaultColors: *newDefaultColors(colorBuilder),
		colorBuilder:  colorBuilder,
		def:           func(s string) string { return s },
		cfg:           cfg,
	}
	err := res.initFieldColorizers()
	if err != nil {
		return nil, err
	}
	return res, nil
}

func DefaultColorBuilder(value ...color.Attribute) StrColorizer {
	c := color.New(value...)
	return toStrColorizer(c.SprintFunc())
}

func toStrColorizer(cf func(a ...any) string) StrColorizer {
	return func(s string) string {
		return cf(s)
	}
}

// ForField returns the colorizer for a rendered field. Configured rules take
// precedence over the built-in colors.
func (c *Colorizer) ForField(field string) StrColorizer {
	if strCol, ok := c.fieldColorizers[field]; ok {
		return strCol
	}
	return c.defaultColorizer(field)
}

func (c *Colorizer) initFieldColorizers() error {
	c.fieldColorizers = make(map[string]StrColorizer)
	for field, conf := range c.cfg {
		if len(conf.Colors) == 0 {
			continue
		}

		fieldColorizer, err := c.fieldColorizer(conf.Colors)
		if err != nil {
			return err
		}

		fallback := c.defaultColorizer(field)
		c.fieldColorizers[field] = func(value string) string {
			strCol := fieldColorizer(value)
			if strCol == nil {
				return fallback(value)
			}
			return strCol(value)
		}
	}
	return nil
}

func (c *Colorizer) defaultColorizer(field string) StrColorizer {
	switch field {
	case "key":
		return c.Key
	case "type":
		return c.Type
	case "default":
		return c.Default
	default:
		return c.def
	}
}

func (c *Colorizer) colorizerForConfig(colorConfig config.Color) StrColorizer {
	if len(colorConfig.Color) > 0 {
		switch colorConfig.Color {
		case config.PColorBlack:
			return c.colorBuilder(color.FgBlack)
		case config.PColorBlue:
			return c.colorBuilder(color.FgBlue)
		case config.PColorCyan:
			return c.colorBuilder(color.FgCyan)
		case config.PColorGreen:
			return c.colorBuilder(color.FgGreen)
		case config.PColorMagenta:
			return c.colorBuilder(color.FgMagenta)
		case config.PColorRed:
			return c.colorBuilder(color.FgRed)
		case config.PColorWhite:
			return c.colorBuilder(color.FgWhite)
		case config.PColorYellow:
			return c.colorBuilder(color.FgYellow)
		default:
			return nil
		}
	}

	if len(colorConfig.CustomColor) > 0 {
		return c.colorBuilder(toAttributes(colorConfig.CustomColor)...)
	}

	return nil
}

func toAttributes(ints []int) []color.Attribute {
	return lo.Map(ints, func(c, _ int) color.Attribute { return color.Attribute(c) })
}

func (c *Colorizer) fieldColorizer(colConfigs config.Colors) (func(val string) StrColorizer, error) {
	var res []func(val string) StrColorizer
	for _, colConfig := range colConfigs {
		col := c.colorizerForConfig(colConfig)
		if col == nil {
			continue
		}

		if len(colConfig.Value) > 0 {
			res = append(res, func(val string) StrColorizer {
				if colConfig.Value == val {
					return col
				}
				return nil
			})
		} else if len(colConfig.Pattern) > 0 {
			r, err := regexp.Compile(colConfig.Pattern)
			if err != nil {
				return nil, err
			}
			res = append(res, func(val string) StrColorizer {
				if r.MatchString(val) {
					return col
				}
				return nil
			})
		} else {
			res = append(res, func(val string) StrColorizer { return col })
			break
		}
	}

	return func(val string) StrColorizer {
		for _, f := range res {
			if strCol := f(val); strCol != nil {
				return strCol
			}
		}
		return nil
	}, nil
}
