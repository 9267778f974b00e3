package cgitests

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is a user-declared set of test cases, loaded from a YAML file.
// Each case describes one request to send to the target and the response
// expected back:
//
//	cases:
//	  - name: greeting
//	    method: GET
//	    query:
//	      param: 123
//	    expect:
//	      status: 200
//	      headers:
//	        content-type: text/plain
//	      content: "hello\n"
//	  - name: form upload
//	    method: POST
//	    form:
//	      param: [first, second]
//	    expect:
//	      status: 200
type Manifest struct {
	Cases []Case `yaml:"cases"`
}

// Case is one declared request/response pair.
type Case struct {
	Name   string                `yaml:"name"`
	Method string                `yaml:"method"`
	Query  map[string]StringList `yaml:"query"`
	Data   string                `yaml:"data"`
	Form   map[string]StringList `yaml:"form"`
	MIME   string                `yaml:"mime"`
	Expect Expectation           `yaml:"expect"`
}

// Expectation describes the response a case requires. Nil fields are not
// checked. A header expectation with a list value requires the header to
// have appeared multiple times with exactly those values, in order.
type Expectation struct {
	Status  *int                  `yaml:"status"`
	Headers map[string]StringList `yaml:"headers"`
	Content *string               `yaml:"content"`
}

// StringList is a YAML value that may be written either as a single scalar
// or as a sequence of scalars.
type StringList []string

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*s = StringList(list)
	return nil
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]bool)
	for i, c := range m.Cases {
		if c.Name == "" {
			return fmt.Errorf("case %d has no name", i+1)
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate case name %q", c.Name)
		}
		seen[c.Name] = true
		switch strings.ToUpper(c.Method) {
		case "", "GET":
			if c.Data != "" || len(c.Form) > 0 {
				return fmt.Errorf("case %q: GET cannot have a body", c.Name)
			}
		case "POST":
			if c.Data != "" && len(c.Form) > 0 {
				return fmt.Errorf("case %q: data and form are mutually exclusive", c.Name)
			}
			if len(c.Form) > 0 && c.MIME != "" {
				return fmt.Errorf("case %q: mime cannot be set for a form body", c.Name)
			}
		default:
			return fmt.Errorf("case %q: unsupported method %q", c.Name, c.Method)
		}
	}
	return nil
}

// queryValues converts a case's query mapping to url.Values.
func (c Case) queryValues() url.Values {
	return toValues(c.Query)
}

// formValues converts a case's form mapping to url.Values.
func (c Case) formValues() url.Values {
	return toValues(c.Form)
}

// IsPost reports whether the case issues a POST request.
func (c Case) IsPost() bool {
	return strings.EqualFold(c.Method, "POST")
}

func toValues(m map[string]StringList) url.Values {
	values := url.Values{}
	for key, list := range m {
		values[key] = append([]string(nil), list...)
	}
	return values
}
