package flags

import (
	"fmt"
	"io"
	"os"
	"path"
	"reflect"
	"strings"
	"unsafe"

	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// YamlParser reads option values for a flags.Parser from a YAML file. Every top level key of the
// file names either a command (e.g. `encode:`) or an option group (e.g. `general:`).
type YamlParser struct {
	parser *flags.Parser
}

// NewYamlParser creates a new yaml parser for a given flags.Parser.
func NewYamlParser(p *flags.Parser) *YamlParser {
	return &YamlParser{
		parser: p,
	}
}

// ParseFile parses options from a yaml formatted file
func (y *YamlParser) ParseFile(filename string) error {
	body, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}

	defer func() {
		if err := body.Close(); err != nil {
			log.Errorf("Could not close %s: %v", filename, err)
		}
	}()

	// Anchors may reference files relative to the configuration file
	return y.Parse(body, yaml.ReferenceDirs(path.Dir(filename)), yaml.RecursiveDir(true))
}

// Parse reads YAML documents one after another. Documents are separated by triple dashes (`---`),
// later documents override the values of earlier ones.
func (y *YamlParser) Parse(config io.Reader, opts ...yaml.DecodeOption) error {
	decoder := yaml.NewDecoder(config, opts...)

	for i := 1; ; i++ {
		obj := make(map[string]interface{})
		err := decoder.Decode(&obj)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrapf(err, "Could not decode document at position %v", i)
		}

		if err = y.parseDocument(obj); err != nil {
			return err
		}
	}
}

func (y *YamlParser) parseDocument(obj map[string]interface{}) error {
	for name, val := range obj {
		group := y.findGroup(name)
		if group == nil {
			return errors.WithStack(&flags.Error{
				Type:    flags.ErrUnknownGroup,
				Message: fmt.Sprintf("could not find command or option group '%s'", name),
			})
		}

		data, err := groupData(group)
		if err != nil {
			return err
		}

		if conv, err := yaml.Marshal(val); err != nil {
			return errors.WithStack(err)
		} else if err := yaml.Unmarshal(conv, data); err != nil {
			return errors.Wrapf(err, "Invalid configuration of '%s'", name)
		}
		log.Tracef("Applied configuration of '%s'", name)
	}
	return nil
}

// findGroup looks up the commands first, then the option groups by their (case insensitive) name
func (y *YamlParser) findGroup(name string) *flags.Group {
	if command := y.parser.Find(name); command != nil {
		return command.Group
	}
	for _, g := range y.parser.Groups() {
		if strings.EqualFold(g.ShortDescription, name) {
			return g
		}
	}
	return nil
}

// groupData returns the pointer to the struct backing the group. The flags library does not expose
// it, so it is read from the unexported field.
func groupData(group *flags.Group) (interface{}, error) {
	field := reflect.Indirect(reflect.ValueOf(group)).FieldByName("data")
	if !field.IsValid() {
		return nil, errors.Errorf("Group %v does not carry any data", group.ShortDescription)
	}
	field = reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
	data := field.Elem()
	if !data.IsValid() || data.Kind() != reflect.Ptr {
		return nil, errors.Errorf("Group %v does not carry any data", group.ShortDescription)
	}
	return data.Interface(), nil
}
