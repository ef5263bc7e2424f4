// Package errors provides structured, coded errors for toyreact.
//
// Every error built with New carries a code from the registry (e.g. "E201"),
// a category, a short message and a longer explanation. Errors can wrap an
// underlying cause and work with errors.Is and errors.As from the standard
// library.
//
// # Categories
//
//   - runtime: tree construction and component programming errors
//   - host: mount target problems
//   - config: configuration loading and validation
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("E202").WithSuggestion("pass the container element")
//	fmt.Println(err.Format())
package errors
