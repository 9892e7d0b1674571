package ivfgo

import "strconv"

// IndexOptions are the build-time options of an IVFFlat index. Lists is
// fixed at index creation and read-only afterward.
type IndexOptions struct {
	// Lists is the number of inverted lists, in [MinLists, MaxLists].
	Lists int
}

// DefaultIndexOptions returns the build defaults.
func DefaultIndexOptions() IndexOptions {
	return IndexOptions{Lists: DefaultLists}
}

// Validate range-checks the options.
func (o IndexOptions) Validate() error {
	if o.Lists < MinLists || o.Lists > MaxLists {
		return &OutOfRangeError{Name: "lists", Value: o.Lists, Min: MinLists, Max: MaxLists}
	}
	return nil
}

// ParseIndexOptions parses raw option strings as supplied in CREATE INDEX
// (e.g. {"lists": "200"}). With validate set, unknown names and out-of-range
// values fail; without it they fall back to defaults, matching how the host
// re-parses stored options it has already accepted once.
func ParseIndexOptions(raw map[string]string, validate bool) (IndexOptions, error) {
	out := DefaultIndexOptions()

	for name, value := range raw {
		switch name {
		case "lists":
			n, err := strconv.Atoi(value)
			if err != nil {
				if validate {
					return DefaultIndexOptions(), &InvalidOptionValueError{Name: name, Value: value}
				}
				continue
			}
			out.Lists = n
		default:
			if validate {
				return DefaultIndexOptions(), &UnknownOptionError{Name: name}
			}
		}
	}

	if err := out.Validate(); err != nil {
		if validate {
			return DefaultIndexOptions(), err
		}
		out = DefaultIndexOptions()
	}

	return out, nil
}
