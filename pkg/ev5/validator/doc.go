// Package validator checks parsed EV5 documents against a field-position
// schema and a valid code index.
//
// Validation is two-stage per field occurrence. First, when field type
// validation is enabled, the field name must be known to the code index;
// an unknown field type yields a FIELD finding and suppresses the second
// stage for that occurrence. Second, when code validation is enabled and
// the field type is known, the observed value must be a member of the
// field's allowed code set; a miss yields a CODE finding listing the
// allowed set.
//
// The validator is pure and synchronous: it never mutates its inputs,
// never performs IO, and two runs over the same inputs produce identical
// results.
package validator
