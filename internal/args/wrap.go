package args

// WrapOptions configure the line wrapping of encoded text
type WrapOptions struct {
	Width     int    `yaml:"width"     short:"w" long:"width"     env:"B64_WIDTH"     description:"Wrap lines at the given width, a positive multiple of 4. 0 disables wrapping" default:"0"`
	Separator string `yaml:"separator"           long:"separator" env:"B64_SEPARATOR" description:"Line separator: lf, crlf or any literal text" default:"lf"`
}

// LineSeparator returns the separator text. The names lf and crlf stand for the line breaks.
func (o *WrapOptions) LineSeparator() string {
	switch o.Separator {
	case "", "lf":
		return "\n"
	case "crlf":
		return "\r\n"
	default:
		return o.Separator
	}
}
