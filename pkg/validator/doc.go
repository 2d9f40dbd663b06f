// Package validator checks formatted form values against field rules.
//
// # Registry
//
// A [Registry] maps validator names to predicates. [NewRegistry] returns the
// built-in set:
//
//	required string regex minlength maxlength exactlength alphanum numeric
//	email url phonenumber ukmobilephone postcode equal
//	date date-year date-month date-day before after
//	alpha ascii uuid ip creditcard json hexcolor int
//
// Every built-in except required and string accepts the empty string, so a
// format rule never forces a field to be present; that is what required is for.
//
// Cross-field validators that need the whole submission are registered with
// [Registry.RegisterFieldFunc].
//
// # Engine
//
// [NewEngine] prepares the rules of a field set and fails fast on configuration
// errors (an unknown validator name or an unnamed custom rule). [Engine.Validate]
// then checks every field in configuration order:
//
//   - a field with a dependent condition that does not hold is skipped and its
//     value replaced by the field's empty value;
//   - rules run in order and the first failure is reported;
//   - errors are keyed by the rule group when set, otherwise by the field key.
//     When several fields of one group fail the last one wins.
//
// Failures are returned as [Errors], a map that is itself an error.
// [IsValidationError] tells such a result apart from any other error.
package validator
