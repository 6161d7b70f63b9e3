// Package validator checks input with explicit, composable rules.
//
//	err := validator.Apply(
//		validator.Required("name", in.Name),
//		validator.ValidEmail("email", in.Email),
//	)
//	if ve, ok := validator.Extract(err); ok {
//		fields := ve.Fields(translator.T)
//	}
package validator
