// Package field describes form fields for a wizard step.
//
// A [Field] carries everything the formatter and validator engines need:
// formatter names, validation rules, allowed options, dependent and
// visibility conditions, and the names of component presets that are
// merged into it before any other processing.
//
// Fields are kept in an ordered [Fields] list. The order is the configuration
// order and is the iteration order used everywhere else, so results that depend
// on order (for example two fields reporting into the same validator group)
// are deterministic.
//
// # YAML
//
// Fields decode from a YAML mapping, preserving document order:
//
//	fields:
//	  name:
//	    formatter: uppercase
//	    validate: required
//	  email:
//	    validate: [required, email]
//	  contact-method:
//	    options: [email, phone]
//	  phone:
//	    dependent:
//	      field: contact-method
//	      value: phone
//	    validate:
//	      - required
//	      - type: maxlength
//	        arguments: 15
//
// Scalars are accepted wherever a list is expected ("validate: required" is
// the same as "validate: [required]").
//
// # Components
//
// Components are named presets registered in a [Components] registry and
// referenced by name from a field:
//
//	components := field.Components{
//	    "postcode": {Formatter: field.Names{"uppercase"}, Validate: field.Rules{{Type: "postcode"}}},
//	}
//	fields, err := components.Apply(fields)
//
// Merge rules: string attributes set on the field win; lists are unioned
// (field entries first); object attributes are extended with component keys
// winning; the Controller hook map is unioned per method with component hooks
// first. Merging is idempotent.
package field
